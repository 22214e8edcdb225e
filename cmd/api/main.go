package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nattycheck/api/internal/application"
	appjobs "github.com/nattycheck/api/internal/application/jobs"
	"github.com/nattycheck/api/internal/config"
	"github.com/nattycheck/api/internal/domain/analysis"
	openaiclient "github.com/nattycheck/api/internal/infra/ai/openai"
	"github.com/nattycheck/api/internal/infra/ai/simulated"
	"github.com/nattycheck/api/internal/infra/httpserver"
	"github.com/nattycheck/api/internal/infra/storage"
	"github.com/nattycheck/api/internal/infra/store"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()
	clock := application.SystemClock{}

	// init job store (in-memory, process lifetime)
	jobStore := store.NewJobStore()

	// init analysis backend
	var analyzer analysis.Analyzer
	switch cfg.Analysis.Backend {
	case config.BackendOpenAI:
		if cfg.OpenAIKey == "" {
			log.Printf("warning: OPENAI_API_KEY not set; analyses will fail until it is")
		}
		analyzer = openaiclient.NewClient(cfg.OpenAIKey, cfg.Analysis.Model)
	default:
		analyzer = simulated.New(cfg.SimulatedDelay(), clock)
	}

	// init photo uploads (optional)
	var photos httpserver.PhotoStore
	if cfg.Uploads.Enabled {
		ps, err := storage.New(ctx,
			cfg.Uploads.Endpoint,
			cfg.Uploads.Region,
			cfg.Uploads.BucketName,
			cfg.Uploads.AccessKey,
			cfg.Uploads.SecretKey,
			cfg.Uploads.UseSSL,
		)
		if err != nil {
			log.Fatalf("uploads storage init error: %v", err)
		}
		photos = ps
	}

	// init orchestrator
	svc := appjobs.NewService(jobStore, analyzer, clock, appjobs.Options{
		Timeout:       cfg.AnalysisTimeout(),
		MaxConcurrent: cfg.Analysis.MaxConcurrent,
	})

	// init router
	mux := chi.NewRouter()
	mux.Mount("/", httpserver.NewRouter(svc, analyzer, photos, httpserver.Options{
		Mode:              cfg.Server.Mode,
		AllowedOrigins:    cfg.CORS.AllowedOrigins,
		RateLimitCapacity: cfg.RateLimit.Capacity,
		RateLimitRefill:   cfg.RateLimit.RefillRate,
	}))

	// sync mode holds the response open for the whole provider call
	writeTimeout := 15 * time.Second
	if cfg.Server.Mode == config.ModeSync {
		writeTimeout = 120 * time.Second
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s (mode=%s backend=%s)", addr, cfg.Server.Mode, cfg.Analysis.Backend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
