package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// NormalizeText trims surrounding whitespace from input text.
func NormalizeText(text string) string {
	return strings.TrimSpace(text)
}

// ValidateText checks input text against the serving constraints. Returns
// false with a user-facing message when the text is unusable.
func ValidateText(text string, maxLength int) (bool, string) {
	if text == "" {
		return false, "Text is required"
	}

	if !utf8.ValidString(text) {
		return false, "Text must be valid UTF-8"
	}

	if maxLength > 0 && utf8.RuneCountInString(text) > maxLength {
		return false, fmt.Sprintf("Text exceeds the maximum length of %d characters", maxLength)
	}

	return true, ""
}
