package models

import (
	dErrors "insurtech/pkg/domain-errors"
)

// MaxAttachmentSize is the largest accepted upload in bytes (2 MiB).
const MaxAttachmentSize int64 = 2 * 1024 * 1024

// Allowed attachment MIME types.
const (
	MIMETypeJPEG = "image/jpeg"
	MIMETypePNG  = "image/png"
	MIMETypePDF  = "application/pdf"
)

// AllowedMIMETypes is the accepted set of attachment types.
var AllowedMIMETypes = []string{MIMETypeJPEG, MIMETypePNG, MIMETypePDF}

// Messages reported for attachment constraint failures.
const (
	MessageAttachmentTooLarge = "File size must be less than 2MB"
	MessageAttachmentType     = "Only JPG, PNG, or PDF files allowed"
)

// Slot names one of the two document attachment inputs.
type Slot string

const (
	SlotFront Slot = "front"
	SlotBack  Slot = "back"
)

// Slots lists every slot in form order.
var Slots = []Slot{SlotFront, SlotBack}

// ParseSlot validates a slot name coming from a client.
func ParseSlot(s string) (Slot, error) {
	switch Slot(s) {
	case SlotFront, SlotBack:
		return Slot(s), nil
	default:
		return "", dErrors.New(dErrors.CodeBadRequest, "unknown attachment slot: "+s)
	}
}

// Field returns the FieldSet field backed by the slot.
func (s Slot) Field() Field {
	if s == SlotBack {
		return FieldCitizenshipBack
	}
	return FieldCitizenshipFront
}

// Attachment is an uploaded document. Data is nil until ingestion finishes.
type Attachment struct {
	Name     string `json:"name"`
	MIMEType string `json:"mimeType"`
	Size     int64  `json:"size"`
	Data     []byte `json:"-"`
}

// IsImage reports whether the attachment can be previewed as an image.
func (a Attachment) IsImage() bool {
	return a.MIMEType == MIMETypeJPEG || a.MIMEType == MIMETypePNG
}

// Reasons an attachment can be rejected.
type AttachmentReason string

const (
	AttachmentReasonTooLarge AttachmentReason = "too_large"
	AttachmentReasonType     AttachmentReason = "unsupported_type"
)

// AttachmentError reports a size or type constraint failure. The file is
// rejected as a whole; nothing of it is kept.
type AttachmentError struct {
	Reason  AttachmentReason
	Message string
}

func (e *AttachmentError) Error() string {
	return e.Message
}

// CheckAttachment enforces the size and type constraints. Size is checked
// first, so an oversized file is rejected regardless of its type.
func CheckAttachment(size int64, mimeType string) *AttachmentError {
	if size > MaxAttachmentSize {
		return &AttachmentError{Reason: AttachmentReasonTooLarge, Message: MessageAttachmentTooLarge}
	}
	if !isAllowedMIMEType(mimeType) {
		return &AttachmentError{Reason: AttachmentReasonType, Message: MessageAttachmentType}
	}
	return nil
}

// Validate applies CheckAttachment to a.
func (a Attachment) Validate() *AttachmentError {
	return CheckAttachment(a.Size, a.MIMEType)
}

func isAllowedMIMEType(mimeType string) bool {
	for _, allowed := range AllowedMIMETypes {
		if mimeType == allowed {
			return true
		}
	}
	return false
}
