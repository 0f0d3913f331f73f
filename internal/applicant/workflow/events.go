package workflow

import "insurtech/internal/applicant/models"

// Event is an input to the reducer.
type Event interface {
	eventName() string
}

// FieldEdited sets a text field. Dependent fields are re-derived.
type FieldEdited struct {
	Field models.Field
	Value string
}

// WordBoundary converts the Nepali name buffer and appends a separator.
type WordBoundary struct{}

// AdvanceRequested asks for personal_info -> document_info.
type AdvanceRequested struct{}

// BackRequested asks for document_info -> personal_info.
type BackRequested struct{}

// SubmitRequested asks for document_info -> submitted.
type SubmitRequested struct{}

// AttachmentSelected starts a new read for a slot. It supersedes any read
// still in flight for the same slot.
type AttachmentSelected struct {
	Slot     models.Slot
	Name     string
	MIMEType string
	Size     int64
}

// AttachmentLoaded delivers the bytes of a finished read.
type AttachmentLoaded struct {
	Slot       models.Slot
	Generation uint64
	Data       []byte
}

// AttachmentFailed reports a read that did not finish.
type AttachmentFailed struct {
	Slot       models.Slot
	Generation uint64
	Reason     string
}

// NoticeAcknowledged dismisses the blocking notice.
type NoticeAcknowledged struct{}

func (FieldEdited) eventName() string        { return "field_edited" }
func (WordBoundary) eventName() string       { return "word_boundary" }
func (AdvanceRequested) eventName() string   { return "advance_requested" }
func (BackRequested) eventName() string      { return "back_requested" }
func (SubmitRequested) eventName() string    { return "submit_requested" }
func (AttachmentSelected) eventName() string { return "attachment_selected" }
func (AttachmentLoaded) eventName() string   { return "attachment_loaded" }
func (AttachmentFailed) eventName() string   { return "attachment_failed" }
func (NoticeAcknowledged) eventName() string { return "notice_acknowledged" }

// EventName returns a stable label for logging and metrics.
func EventName(e Event) string {
	if e == nil {
		return "unknown"
	}
	return e.eventName()
}
