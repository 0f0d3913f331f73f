// Package service orchestrates applicant form sessions: it applies workflow
// events inside the store's per-session critical section, runs attachment
// reads outside it and hands validated records to the submission sink.
package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"insurtech/internal/applicant/attachment"
	"insurtech/internal/applicant/models"
	"insurtech/internal/applicant/store"
	"insurtech/internal/applicant/submission"
	"insurtech/internal/applicant/workflow"
	"insurtech/internal/platform/metrics"
	id "insurtech/pkg/domain"
	dErrors "insurtech/pkg/domain-errors"
	"insurtech/pkg/platform/sentinel"
	"insurtech/pkg/requestcontext"
)

// Store persists workflow sessions.
type Store interface {
	Create(ctx context.Context, state workflow.State) (store.Session, error)
	FindByID(ctx context.Context, sessionID id.ApplicationID) (store.Session, error)
	Execute(ctx context.Context, sessionID id.ApplicationID, fn func(store.Session) (workflow.State, error)) (store.Session, error)
	DeleteIdle(ctx context.Context, cutoff time.Time) ([]id.ApplicationID, error)
	Count() int
}

// Upload is one selected file. Body is read once.
type Upload struct {
	Name     string
	MIMEType string
	Size     int64
	Body     io.Reader
}

// Service drives form sessions.
type Service struct {
	store     Store
	machine   *workflow.Machine
	submitter submission.Submitter
	builder   *submission.Builder
	ingestor  *attachment.Ingestor
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// Option configures the service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithIngestor(i *attachment.Ingestor) Option {
	return func(s *Service) {
		s.ingestor = i
	}
}

func WithBuilder(b *submission.Builder) Option {
	return func(s *Service) {
		s.builder = b
	}
}

func New(st Store, machine *workflow.Machine, submitter submission.Submitter, opts ...Option) *Service {
	s := &Service{
		store:     st,
		machine:   machine,
		submitter: submitter,
		builder:   submission.NewBuilder(),
		ingestor:  attachment.New(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start opens a new session in personal_info.
func (s *Service) Start(ctx context.Context) (*workflow.View, error) {
	sess, err := s.store.Create(ctx, workflow.NewState())
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to start application")
	}
	if s.metrics != nil {
		s.metrics.IncSessionsStarted()
		s.metrics.SetActiveSessions(s.store.Count())
	}
	s.logger.InfoContext(ctx, "application started",
		"application_id", sess.ID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return s.view(sess), nil
}

// Get renders the current view of a session.
func (s *Service) Get(ctx context.Context, appID id.ApplicationID) (*workflow.View, error) {
	sess, err := s.store.FindByID(ctx, appID)
	if err != nil {
		return nil, translate(err)
	}
	return s.view(sess), nil
}

// EditField sets one text field and re-derives its dependents.
func (s *Service) EditField(ctx context.Context, appID id.ApplicationID, field models.Field, value string) (*workflow.View, error) {
	return s.apply(ctx, appID, workflow.FieldEdited{Field: field, Value: value})
}

// ConvertNepaliName transliterates the Nepali name buffer at a word boundary.
func (s *Service) ConvertNepaliName(ctx context.Context, appID id.ApplicationID) (*workflow.View, error) {
	return s.apply(ctx, appID, workflow.WordBoundary{})
}

// Advance moves to document_info when the personal info fields pass.
func (s *Service) Advance(ctx context.Context, appID id.ApplicationID) (*workflow.View, error) {
	return s.apply(ctx, appID, workflow.AdvanceRequested{})
}

// Back returns to personal_info keeping every value.
func (s *Service) Back(ctx context.Context, appID id.ApplicationID) (*workflow.View, error) {
	return s.apply(ctx, appID, workflow.BackRequested{})
}

// AcknowledgeNotice dismisses the blocking notice.
func (s *Service) AcknowledgeNotice(ctx context.Context, appID id.ApplicationID) (*workflow.View, error) {
	return s.apply(ctx, appID, workflow.NoticeAcknowledged{})
}

// Submit validates the whole record and hands it to the sink. The session
// only becomes submitted when the handoff succeeds.
func (s *Service) Submit(ctx context.Context, appID id.ApplicationID) (*workflow.View, error) {
	var guard *workflow.GuardError
	var prev models.Phase
	sess, err := s.store.Execute(ctx, appID, func(sess store.Session) (workflow.State, error) {
		prev = sess.State.Phase
		next, err := s.machine.Reduce(sess.State, workflow.SubmitRequested{})
		if errors.As(err, &guard) {
			return next, nil
		}
		if err != nil {
			return sess.State, err
		}

		bundle, err := s.builder.Build(ctx, sess.ID, next.Fields)
		if err != nil {
			return sess.State, err
		}
		if err := s.submitter.Submit(ctx, bundle); err != nil {
			s.recordSubmission("failure")
			s.logger.ErrorContext(ctx, "submission handoff failed",
				"application_id", sess.ID,
				"submission_id", bundle.SubmissionID,
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
			return sess.State, dErrors.Wrap(err, dErrors.CodeInternal, "failed to submit application")
		}
		s.recordSubmission("success")
		s.logger.InfoContext(ctx, "application submitted",
			"application_id", sess.ID,
			"submission_id", bundle.SubmissionID,
			"request_id", requestcontext.RequestID(ctx),
		)
		return next, nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return s.finish(ctx, sess, prev, guard)
}

// UploadAttachment selects and reads a file for a slot. The read happens
// outside the session's critical section; a newer upload for the same slot
// supersedes this one.
func (s *Service) UploadAttachment(ctx context.Context, appID id.ApplicationID, slot models.Slot, upload Upload) (*workflow.View, error) {
	selected := workflow.AttachmentSelected{
		Slot:     slot,
		Name:     upload.Name,
		MIMEType: upload.MIMEType,
		Size:     upload.Size,
	}
	sess, prev, guard, err := s.reduce(ctx, appID, selected)
	if err != nil {
		return nil, translate(err)
	}
	if guard != nil {
		if aerr := models.CheckAttachment(upload.Size, upload.MIMEType); aerr != nil && s.metrics != nil {
			s.metrics.IncAttachmentRejection(string(aerr.Reason))
		}
		return s.finish(ctx, sess, prev, guard)
	}
	generation := sess.State.Slot(slot).Generation

	data, readErr := s.ingestor.Ingest(ctx, attachment.Key{Session: appID, Slot: slot}, generation, upload.Body)
	if readErr == nil {
		return s.apply(ctx, appID, workflow.AttachmentLoaded{Slot: slot, Generation: generation, Data: data})
	}

	reason := "upload failed"
	var aerr *models.AttachmentError
	if errors.Is(readErr, context.Canceled) || errors.Is(readErr, sentinel.ErrCanceled) {
		reason = "upload canceled"
	}
	if errors.As(readErr, &aerr) {
		reason = aerr.Message
		if s.metrics != nil {
			s.metrics.IncAttachmentRejection(string(aerr.Reason))
		}
	}
	s.logger.WarnContext(ctx, "attachment read failed",
		"application_id", appID,
		"slot", slot,
		"generation", generation,
		"error", readErr,
	)

	// The client may be gone; record the failure regardless.
	failView, err := s.apply(context.WithoutCancel(ctx), appID, workflow.AttachmentFailed{Slot: slot, Generation: generation, Reason: reason})
	if err != nil {
		return failView, err
	}
	return failView, translate(readErr)
}

// SweepIdle removes sessions untouched for longer than ttl and aborts their
// in-flight attachment reads.
func (s *Service) SweepIdle(ctx context.Context, ttl time.Duration) (int, error) {
	removed, err := s.store.DeleteIdle(ctx, time.Now().Add(-ttl))
	if err != nil {
		return 0, err
	}
	for _, appID := range removed {
		s.ingestor.CancelSession(appID)
	}
	if s.metrics != nil {
		s.metrics.AddSessionsExpired(len(removed))
		s.metrics.SetActiveSessions(s.store.Count())
	}
	if len(removed) > 0 {
		s.logger.InfoContext(ctx, "idle applications removed", "count", len(removed))
	}
	return len(removed), nil
}

// RunSweeper calls SweepIdle every interval until ctx is done.
func (s *Service) RunSweeper(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.SweepIdle(ctx, ttl); err != nil && !errors.Is(err, context.Canceled) {
				s.logger.ErrorContext(ctx, "idle sweep failed", "error", err)
			}
		}
	}
}

// apply reduces one event and commits the result. Guard failures commit the
// recorded errors and are reported as validation errors alongside the view.
func (s *Service) apply(ctx context.Context, appID id.ApplicationID, ev workflow.Event) (*workflow.View, error) {
	sess, prev, guard, err := s.reduce(ctx, appID, ev)
	if err != nil {
		return nil, translate(err)
	}
	return s.finish(ctx, sess, prev, guard)
}

func (s *Service) reduce(ctx context.Context, appID id.ApplicationID, ev workflow.Event) (store.Session, models.Phase, *workflow.GuardError, error) {
	var guard *workflow.GuardError
	var prev models.Phase
	sess, err := s.store.Execute(ctx, appID, func(sess store.Session) (workflow.State, error) {
		prev = sess.State.Phase
		next, err := s.machine.Reduce(sess.State, ev)
		if errors.As(err, &guard) {
			return next, nil
		}
		return next, err
	})
	return sess, prev, guard, err
}

func (s *Service) finish(ctx context.Context, sess store.Session, prev models.Phase, guard *workflow.GuardError) (*workflow.View, error) {
	if s.metrics != nil && prev != "" && prev != sess.State.Phase {
		s.metrics.IncPhaseTransition(string(prev), string(sess.State.Phase))
	}
	view := s.view(sess)
	if guard == nil {
		return view, nil
	}

	for _, issue := range guard.Issues {
		if s.metrics != nil {
			s.metrics.IncValidationFailure(string(issue.Field), string(issue.Kind))
		}
	}
	s.logger.InfoContext(ctx, "workflow guard rejected event",
		"application_id", sess.ID,
		"event", guard.Event,
		"issues", len(guard.Issues),
		"request_id", requestcontext.RequestID(ctx),
	)
	return view, dErrors.New(dErrors.CodeValidation, guard.Error())
}

func (s *Service) view(sess store.Session) *workflow.View {
	v := s.machine.View(sess.State)
	v.ID = sess.ID.String()
	return &v
}

func (s *Service) recordSubmission(outcome string) {
	if s.metrics != nil {
		s.metrics.IncSubmission(outcome)
	}
}
