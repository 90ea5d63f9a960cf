package store

import "errors"

// Domain-level store error sentinels.
var (
	ErrPredictionNotFound = errors.New("prediction not found")
)
