package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"insurtech/internal/applicant/attachment"
	"insurtech/internal/applicant/handler"
	"insurtech/internal/applicant/models"
	"insurtech/internal/applicant/reference"
	"insurtech/internal/applicant/schema"
	"insurtech/internal/applicant/service"
	"insurtech/internal/applicant/store"
	"insurtech/internal/applicant/submission"
	"insurtech/internal/applicant/workflow"
	"insurtech/internal/platform/config"
	"insurtech/internal/platform/httpserver"
	"insurtech/internal/platform/logger"
	"insurtech/internal/platform/metrics"
	"insurtech/internal/platform/middleware"
	"insurtech/pkg/platform/circuit"
)

// maxJSONBody bounds every non-upload request body.
const maxJSONBody = 64 * 1024

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal packages.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	catalog := reference.Default()
	machine := workflow.NewMachine(schema.New(catalog))

	submitter, closeSubmitter, err := buildSubmitter(cfg, log)
	if err != nil {
		return err
	}
	defer closeSubmitter()

	svc := service.New(store.New(), machine, submitter,
		service.WithLogger(log),
		service.WithMetrics(m),
		service.WithIngestor(attachment.New(attachment.WithMaxSize(models.MaxAttachmentSize))),
	)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestContext)
	r.Use(middleware.RequestLogger(log))

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler.New(svc, log).Register(r)
	r.Group(func(r chi.Router) {
		r.Use(middleware.MaxBodySize(maxJSONBody))
		handler.NewTools(catalog, log).Register(r)
	})

	srv := httpserver.New(cfg.HTTPAddr, r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting insurtech applicant server", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		svc.RunSweeper(gctx, cfg.SessionSweepInterval, cfg.SessionIdleTTL)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// buildSubmitter picks the log sink, or Kafka guarded by a breaker that
// falls back to the log sink when brokers are configured.
func buildSubmitter(cfg *config.Config, log *slog.Logger) (submission.Submitter, func(), error) {
	logSink := submission.NewLogSink(log)
	if !cfg.KafkaEnabled() {
		return logSink, func() {}, nil
	}

	kafka, err := submission.NewKafkaSink(cfg.KafkaBrokers(), cfg.SubmissionKafkaTopic)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka submission sink: %w", err)
	}
	breaker := circuit.New("submission-kafka", circuit.WithFailureThreshold(cfg.SubmissionBreakerThreshold))
	log.Info("submissions go to kafka", "brokers", cfg.KafkaBrokers(), "topic", cfg.SubmissionKafkaTopic)
	return submission.NewFallbackSink(kafka, logSink, breaker, log), kafka.Close, nil
}
