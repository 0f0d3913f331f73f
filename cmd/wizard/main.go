package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"insurtech/internal/applicant/reference"
	"insurtech/internal/applicant/schema"
	"insurtech/internal/applicant/service"
	"insurtech/internal/applicant/store"
	"insurtech/internal/applicant/submission"
	"insurtech/internal/applicant/wizard"
	"insurtech/internal/applicant/workflow"
	"insurtech/internal/platform/config"
	"insurtech/internal/platform/logger"
)

// main runs one application session in the terminal against an in-process
// service. Submissions are written to the log on stderr.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, err := logger.NewWithWriter(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	catalog := reference.Default()
	svc := service.New(store.New(), workflow.NewMachine(schema.New(catalog)), submission.NewLogSink(log),
		service.WithLogger(log),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if _, err := wizard.New(svc, catalog, wizard.WithLogger(log)).Run(ctx); err != nil {
		if errors.Is(err, wizard.ErrAborted) {
			fmt.Fprintln(os.Stderr, "aborted")
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
