// Package submission assembles validated records into transport-safe bundles
// and hands them to a sink.
package submission

import (
	"context"
	"encoding/base64"
	"time"

	"golang.org/x/sync/errgroup"

	"insurtech/internal/applicant/models"
	id "insurtech/pkg/domain"
	"insurtech/pkg/requestcontext"
)

// Bundle is the payload handed to a Submitter. Attachments travel as data
// URLs so the bundle is a single JSON document.
type Bundle struct {
	SubmissionID     string          `json:"submissionId"`
	ApplicationID    string          `json:"applicationId"`
	SubmittedAt      time.Time       `json:"submittedAt"`
	Fields           models.FieldSet `json:"fields"`
	CitizenshipFront string          `json:"citizenshipFront,omitempty"`
	CitizenshipBack  string          `json:"citizenshipBack,omitempty"`
}

// Builder turns a validated FieldSet into a Bundle. Without a clock the
// submission time is the request time carried by ctx.
type Builder struct {
	now func() time.Time
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithBuilderClock sets the submission timestamp source.
func WithBuilderClock(now func() time.Time) BuilderOption {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build encodes both attachments concurrently and waits for both.
func (b *Builder) Build(ctx context.Context, applicationID id.ApplicationID, fields models.FieldSet) (Bundle, error) {
	submittedAt := requestcontext.Now(ctx)
	if b.now != nil {
		submittedAt = b.now()
	}
	bundle := Bundle{
		SubmissionID:  id.NewSubmissionID().String(),
		ApplicationID: applicationID.String(),
		SubmittedAt:   submittedAt.UTC(),
		Fields:        fields,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		url, err := encode(gctx, fields.CitizenshipFront)
		bundle.CitizenshipFront = url
		return err
	})
	g.Go(func() error {
		url, err := encode(gctx, fields.CitizenshipBack)
		bundle.CitizenshipBack = url
		return err
	})
	if err := g.Wait(); err != nil {
		return Bundle{}, err
	}
	return bundle, nil
}

// DataURL renders an attachment as "data:<mime>;base64,<payload>". A nil
// attachment renders as the empty string.
func DataURL(a *models.Attachment) string {
	if a == nil {
		return ""
	}
	return "data:" + a.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(a.Data)
}

func encode(ctx context.Context, a *models.Attachment) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return DataURL(a), nil
}
