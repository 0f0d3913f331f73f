package submission

import (
	"context"
	"log/slog"

	"insurtech/pkg/platform/circuit"
)

// FallbackSink submits to a primary sink and, once the primary keeps
// failing, serves failed submissions from a fallback sink.
type FallbackSink struct {
	primary  Submitter
	fallback Submitter
	breaker  *circuit.Breaker
	logger   *slog.Logger
}

func NewFallbackSink(primary, fallback Submitter, breaker *circuit.Breaker, logger *slog.Logger) *FallbackSink {
	if logger == nil {
		logger = slog.Default()
	}
	if breaker == nil {
		breaker = circuit.New("submission")
	}
	return &FallbackSink{primary: primary, fallback: fallback, breaker: breaker, logger: logger}
}

// Submit returns the primary error unless the circuit is open.
func (s *FallbackSink) Submit(ctx context.Context, bundle Bundle) error {
	err := s.primary.Submit(ctx, bundle)
	if err == nil {
		if _, change := s.breaker.RecordSuccess(); change.Closed {
			s.logger.InfoContext(ctx, "submission sink recovered", "breaker", s.breaker.Name())
		}
		return nil
	}

	useFallback, change := s.breaker.RecordFailure()
	if change.Opened {
		s.logger.WarnContext(ctx, "submission sink circuit opened", "breaker", s.breaker.Name(), "error", err)
	}
	if !useFallback {
		return err
	}
	return s.fallback.Submit(ctx, bundle)
}
