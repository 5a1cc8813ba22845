package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/angelcm/hogdash-go/internal/cache"
	"github.com/angelcm/hogdash-go/internal/config"
	"github.com/angelcm/hogdash-go/internal/dashboard"
	"github.com/angelcm/hogdash-go/internal/httpx"
	"github.com/angelcm/hogdash-go/internal/posthog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	cl := posthog.NewClient(posthog.NewHTTPClient(cfg.HTTPTimeout), cfg.APIURL, cfg.APIKey)
	c := cache.New(cfg.CacheTTL)
	svc := dashboard.NewService(cl, c, logger)

	r := httpx.NewRouter(logger, svc)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("starting server", slog.String("port", cfg.Port), slog.Duration("cache_ttl", cfg.CacheTTL))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", slog.String("err", err.Error()))
		os.Exit(1)
	}
}
