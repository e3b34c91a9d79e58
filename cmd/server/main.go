package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/AngelCh415/landing-insights/internal/config"
	"github.com/AngelCh415/landing-insights/internal/httpx"
	"github.com/AngelCh415/landing-insights/internal/ingest"
	"github.com/AngelCh415/landing-insights/internal/insights"
	"github.com/AngelCh415/landing-insights/internal/store"
)

func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	overrides, err := ingest.LoadSynonymFile(cfg.SynonymsFile)
	if err != nil {
		logger.Error("synonyms file", slog.String("path", cfg.SynonymsFile), slog.String("err", err.Error()))
		os.Exit(1)
	}

	cl := ingest.NewHTTPClient(cfg.HTTPTimeout)
	st := store.NewMemoryStore()
	rec := ingest.NewReconciler(ingest.WithOverrides(overrides))
	p := ingest.NewPipeline(cl, rec, st, logger, cfg)
	svc := insights.NewService(st, cfg.ConversionThreshold)

	r := httpx.NewRouter(logger, p, svc, cfg.MaxUploadBytes)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("starting server", slog.String("port", cfg.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", slog.String("err", err.Error()))
		os.Exit(1)
	}
}
