package workflow

import (
	"insurtech/internal/applicant/models"
	"insurtech/internal/applicant/schema"
)

// AttachmentStatus is the ingestion status of one attachment slot.
type AttachmentStatus string

const (
	AttachmentEmpty   AttachmentStatus = "empty"
	AttachmentLoading AttachmentStatus = "loading"
	AttachmentReady   AttachmentStatus = "ready"
	AttachmentError   AttachmentStatus = "error"
)

// SlotState tracks one attachment slot. Generation increases on every
// accepted selection; load results carrying an older generation are stale.
type SlotState struct {
	Status     AttachmentStatus
	Generation uint64
	Name       string
	MIMEType   string
	Size       int64
	Error      string
}

// State is one session's workflow state. Values are never mutated in place:
// Reduce returns a new State and leaves its input untouched.
//
// Invariants:
//   - Errors holds at most one issue per field
//   - a slot is ready iff the matching FieldSet attachment is non-nil
//   - once Phase is submitted no further event is accepted
type State struct {
	Phase  models.Phase
	Fields models.FieldSet
	Errors map[models.Field]schema.Issue
	Front  SlotState
	Back   SlotState
	Notice string
}

// NewState returns the initial state: personal_info, empty record.
func NewState() State {
	return State{
		Phase: models.PhasePersonalInfo,
		Front: SlotState{Status: AttachmentEmpty},
		Back:  SlotState{Status: AttachmentEmpty},
	}
}

// Slot returns the state of one attachment slot.
func (s State) Slot(slot models.Slot) SlotState {
	if slot == models.SlotBack {
		return s.Back
	}
	return s.Front
}

func (s State) withSlot(slot models.Slot, ss SlotState) State {
	if slot == models.SlotBack {
		s.Back = ss
	} else {
		s.Front = ss
	}
	return s
}

// Loading reports whether any slot has a read in flight.
func (s State) Loading() bool {
	return s.Front.Status == AttachmentLoading || s.Back.Status == AttachmentLoading
}

// Issue returns the stored issue for field, if any.
func (s State) Issue(field models.Field) (schema.Issue, bool) {
	i, ok := s.Errors[field]
	return i, ok
}

// withoutErrors returns s with the named fields' issues removed.
func (s State) withoutErrors(fields ...models.Field) State {
	if len(s.Errors) == 0 {
		return s
	}
	next := make(map[models.Field]schema.Issue, len(s.Errors))
	for f, i := range s.Errors {
		next[f] = i
	}
	for _, f := range fields {
		delete(next, f)
	}
	s.Errors = next
	return s
}

// withIssues returns s with the issues added, replacing existing ones for the
// same fields.
func (s State) withIssues(issues []schema.Issue) State {
	next := make(map[models.Field]schema.Issue, len(s.Errors)+len(issues))
	for f, i := range s.Errors {
		next[f] = i
	}
	for _, i := range issues {
		next[i.Field] = i
	}
	s.Errors = next
	return s
}
