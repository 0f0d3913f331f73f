// Package domain holds typed identifiers shared across packages.
package domain

import (
	"github.com/google/uuid"

	dErrors "insurtech/pkg/domain-errors"
)

// ApplicationID identifies one applicant form session.
type ApplicationID uuid.UUID

// SubmissionID identifies one handed-off submission bundle.
type SubmissionID uuid.UUID

// NewApplicationID returns a random ApplicationID.
func NewApplicationID() ApplicationID {
	return ApplicationID(uuid.New())
}

// NewSubmissionID returns a random SubmissionID.
func NewSubmissionID() SubmissionID {
	return SubmissionID(uuid.New())
}

// ParseApplicationID validates external input. Empty, malformed and nil UUIDs
// are rejected.
func ParseApplicationID(s string) (ApplicationID, error) {
	u, err := parseUUID(s, "application ID")
	return ApplicationID(u), err
}

// ParseSubmissionID validates external input.
func ParseSubmissionID(s string) (SubmissionID, error) {
	u, err := parseUUID(s, "submission ID")
	return SubmissionID(u), err
}

func (id ApplicationID) String() string { return uuid.UUID(id).String() }
func (id ApplicationID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

func (id SubmissionID) String() string { return uuid.UUID(id).String() }
func (id SubmissionID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid "+label)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be nil")
	}
	return u, nil
}
