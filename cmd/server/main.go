package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"sentimeter/internal/alert"
	"sentimeter/internal/config"
	"sentimeter/internal/email"
	"sentimeter/internal/jobs"
	"sentimeter/internal/metrics"
	"sentimeter/internal/predictor"
	"sentimeter/internal/server"
	"sentimeter/internal/store"
	"sentimeter/internal/tracker"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}
	cfg := config.Load()

	// Load model artifacts. A failed load keeps the process alive but
	// failing readiness: every predict answers 503 until restart.
	pred, err := predictor.Load(cfg.ModelDir)
	if err != nil {
		log.Printf("Warning: failed to load model from %s: %v", cfg.ModelDir, err)
		log.Println("Predictions will answer 503 until the model is available.")
		pred = predictor.Unloaded()
	} else {
		m := pred.Manifest()
		log.Printf("Model loaded: %s %s (trained %s)", m.Name, m.Version, m.TrainedAt.Format("2006-01-02"))
	}

	// Optional prediction log
	var st *store.Store
	if cfg.IsStoreEnabled() {
		st, err = store.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer st.Close()

		if err := st.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		log.Println("Migrations completed successfully")
	} else {
		log.Println("Prediction log disabled (DATABASE_URL not set)")
	}

	// Serving state: metrics recorder, outcome tracker, alert dispatcher
	rec := metrics.NewRecorder()
	metrics.Register(rec)

	trk := tracker.New(tracker.Config{
		WindowSize:    cfg.WindowSize,
		Threshold:     cfg.AlertThreshold,
		UseProxy:      cfg.UseConfidenceProxy,
		LowConfidence: cfg.LowConfidenceThreshold,
	})

	notifier := email.NewNotifier(cfg)
	disp := alert.New(notifier, cfg.AlertCooldown)

	// Periodic metrics digest
	if cfg.DigestInterval > 0 && notifier.IsEnabled() {
		go jobs.NewDigest(rec, notifier, cfg.DigestInterval).Start(ctx)
	}

	// HTTP server
	s := server.New(cfg)
	s.RegisterRoutes(pred, rec, trk, disp, st)

	go func() {
		if err := s.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server started on %s", cfg.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancel()
	if err := s.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
