package submission

import (
	"context"
	"log/slog"
)

// Submitter receives bundles once the full schema has passed. Delivery is
// fire-and-forget; there is no acknowledgement beyond the returned error.
type Submitter interface {
	Submit(ctx context.Context, bundle Bundle) error
}

// LogSink writes each bundle to a structured log.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

// Submit logs the record. Attachment payloads are summarized by size.
func (s *LogSink) Submit(ctx context.Context, bundle Bundle) error {
	s.logger.InfoContext(ctx, "form submitted successfully",
		"submission_id", bundle.SubmissionID,
		"application_id", bundle.ApplicationID,
		"full_name_english", bundle.Fields.FullNameEnglish,
		"full_name_nepali", bundle.Fields.FullNameNepali,
		"gender", bundle.Fields.Gender,
		"date_of_birth_ad", bundle.Fields.DateOfBirthAD,
		"date_of_birth_bs", bundle.Fields.DateOfBirthBS,
		"issued_district", bundle.Fields.IssuedDistrict,
		"citizenship_front_bytes", len(bundle.CitizenshipFront),
		"citizenship_back_bytes", len(bundle.CitizenshipBack),
	)
	return nil
}
