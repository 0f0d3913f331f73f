package schema

import (
	"strings"

	"insurtech/internal/applicant/models"
	dErrors "insurtech/pkg/domain-errors"
)

// Kind distinguishes single-field failures from conditional rule failures.
type Kind string

const (
	KindField      Kind = "field"
	KindCrossField Kind = "cross_field"
)

// Issue is one recoverable validation failure attributed to a field.
type Issue struct {
	Field   models.Field `json:"field"`
	Message string       `json:"message"`
	Kind    Kind         `json:"kind"`
}

// Result holds at most one issue per field, in schema order.
type Result struct {
	issues []Issue
}

func (r *Result) add(issue Issue) {
	if r.has(issue.Field) {
		return
	}
	r.issues = append(r.issues, issue)
}

func (r Result) has(field models.Field) bool {
	for _, i := range r.issues {
		if i.Field == field {
			return true
		}
	}
	return false
}

// Valid reports whether no rule failed.
func (r Result) Valid() bool {
	return len(r.issues) == 0
}

// Issues returns the failures in schema order.
func (r Result) Issues() []Issue {
	return append([]Issue(nil), r.issues...)
}

// ErrorFor returns the message attributed to field, if any.
func (r Result) ErrorFor(field models.Field) (string, bool) {
	for _, i := range r.issues {
		if i.Field == field {
			return i.Message, true
		}
	}
	return "", false
}

// Errors returns field -> message for every failure.
func (r Result) Errors() map[models.Field]string {
	if len(r.issues) == 0 {
		return nil
	}
	out := make(map[models.Field]string, len(r.issues))
	for _, i := range r.issues {
		out[i.Field] = i.Message
	}
	return out
}

// Fields lists the failing fields in schema order.
func (r Result) Fields() []models.Field {
	out := make([]models.Field, 0, len(r.issues))
	for _, i := range r.issues {
		out = append(out, i.Field)
	}
	return out
}

// Err converts a failed result into a validation error, or nil if valid.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	parts := make([]string, 0, len(r.issues))
	for _, i := range r.issues {
		parts = append(parts, string(i.Field)+": "+i.Message)
	}
	return dErrors.New(dErrors.CodeValidation, strings.Join(parts, "; "))
}
