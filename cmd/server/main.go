package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"web-toolkit/internal/pace"
	"web-toolkit/internal/platform/config"
	"web-toolkit/internal/platform/logger"
	"web-toolkit/internal/platform/metrics"
	"web-toolkit/internal/transcript"

	"github.com/go-chi/chi/v5"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = config.Load()

	port := config.GetEnv("PORT", "8080")
	logLevel := config.GetEnv("LOG_LEVEL", "info")
	logFormat := config.GetEnv("LOG_FORMAT", "json")
	maxRequests := config.GetEnvInt("RATE_LIMIT_MAX", transcript.DefaultMaxRequests)
	window := config.GetEnvDuration("RATE_LIMIT_WINDOW", transcript.DefaultWindow)
	sweepInterval := config.GetEnvDuration("RATE_LIMIT_SWEEP_INTERVAL", transcript.DefaultSweepInterval)
	lang := config.GetEnv("TRANSCRIPT_LANG", "en")
	staticDir := config.GetEnv("STATIC_DIR", "web")

	log := logger.New(logLevel, logFormat)

	limiter := transcript.NewRateLimiter(maxRequests, window)
	fetcher := transcript.NewYouTubeFetcher(lang)
	audit := transcript.NewAuditLog(log)
	met := metrics.New()
	th := transcript.NewHandler(limiter, fetcher, log, audit, met)
	ph := pace.NewHandler(log)

	// Sweeper lifecycle is owned here; cancelled on shutdown.
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go limiter.Run(sweepCtx, sweepInterval, func(removed int) {
		if removed > 0 {
			log.Debug("rate limit sweep", "removed", removed)
		}
	})

	r := chi.NewRouter()
	r.Use(logger.RequestLogger(log))
	r.Use(metrics.RequestMiddleware(met))
	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		met.Handler(func() { met.SetRateLimitEntries(limiter.Len()) }).ServeHTTP(w, req)
	})
	r.Get("/api/transcript", th.GetTranscript)
	r.Get("/api/transcript/{videoID}", th.GetTranscript)
	r.Get("/api/pace", ph.Calculate)
	r.Handle("/*", http.FileServer(http.Dir(staticDir)))

	addr := ":" + port
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	log.Info("server starting",
		"port", port,
		"rate_limit_max", maxRequests,
		"rate_limit_window", window.String(),
		"log_level", logLevel,
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, draining connections")
	stopSweep()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
