// Package workflow implements the applicant form as a reducer over immutable
// session state.
//
// Every input (edit, navigation, attachment progress) is an Event. Reduce
// folds one event into a State and returns the next State; callers serialize
// events per session and keep the returned value.
package workflow

import (
	"fmt"
	"strings"

	"insurtech/internal/applicant/models"
	"insurtech/internal/applicant/schema"
	dErrors "insurtech/pkg/domain-errors"
	"insurtech/pkg/platform/sentinel"
	"insurtech/pkg/transliterate"
)

// GuardError reports an event whose guard failed. The State returned with it
// records the failures and is the state to keep.
type GuardError struct {
	Event  string
	Issues []schema.Issue
}

func (e *GuardError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, i := range e.Issues {
		parts = append(parts, string(i.Field)+": "+i.Message)
	}
	return fmt.Sprintf("%s rejected: %s", e.Event, strings.Join(parts, "; "))
}

// Machine applies events to states. It holds no session data and is safe for
// concurrent use.
type Machine struct {
	schema        *schema.Schema
	graph         Graph
	transliterate func(string) string
}

// Option configures a Machine.
type Option func(*Machine)

// WithGraph replaces the derivation graph.
func WithGraph(g Graph) Option {
	return func(m *Machine) {
		m.graph = g
	}
}

// WithTransliterator replaces the Nepali name converter.
func WithTransliterator(convert func(string) string) Option {
	return func(m *Machine) {
		if convert != nil {
			m.transliterate = convert
		}
	}
}

// NewMachine builds a Machine validating against s.
func NewMachine(s *schema.Schema, opts ...Option) *Machine {
	m := &Machine{
		schema:        s,
		graph:         DefaultGraph(),
		transliterate: transliterate.ConvertToNepali,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Schema returns the schema the machine validates against.
func (m *Machine) Schema() *schema.Schema {
	return m.schema
}

// Reduce applies one event. On error the returned State is still meaningful:
// for a *GuardError it carries the recorded failures; for any other error it
// equals the input.
func (m *Machine) Reduce(s State, e Event) (State, error) {
	if s.Phase.IsTerminal() {
		return s, fmt.Errorf("%s after %s: %w", EventName(e), s.Phase, sentinel.ErrInvalidState)
	}

	switch ev := e.(type) {
	case FieldEdited:
		return m.editField(s, ev)
	case WordBoundary:
		return m.wordBoundary(s), nil
	case AdvanceRequested:
		return m.advance(s)
	case BackRequested:
		return m.back(s)
	case SubmitRequested:
		return m.submit(s)
	case AttachmentSelected:
		return m.selectAttachment(s, ev)
	case AttachmentLoaded:
		return m.loadAttachment(s, ev), nil
	case AttachmentFailed:
		return m.failAttachment(s, ev), nil
	case NoticeAcknowledged:
		s.Notice = ""
		return s, nil
	default:
		return s, dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("unsupported event %T", e))
	}
}

func (m *Machine) editField(s State, ev FieldEdited) (State, error) {
	if _, err := models.ParseTextField(string(ev.Field)); err != nil {
		return s, err
	}

	s.Fields = s.Fields.WithText(ev.Field, ev.Value)
	cleared := []models.Field{ev.Field}
	for _, d := range m.graph.Dependents(ev.Field) {
		s.Fields = s.Fields.WithText(d.To, d.Derive(ev.Value))
		cleared = append(cleared, d.To)
	}
	return s.withoutErrors(cleared...), nil
}

func (m *Machine) wordBoundary(s State) State {
	s.Fields.FullNameNepali = m.transliterate(s.Fields.FullNameNepali) + " "
	return s
}

func (m *Machine) advance(s State) (State, error) {
	if !s.Phase.CanTransitionTo(models.PhaseDocumentInfo) {
		return s, fmt.Errorf("advance from %s: %w", s.Phase, sentinel.ErrInvalidState)
	}

	result := m.schema.ValidateFields(s.Fields, schema.PersonalInfoFields...)
	s = s.withoutErrors(schema.PersonalInfoFields...)
	if !result.Valid() {
		s = s.withIssues(result.Issues())
		return s, &GuardError{Event: EventName(AdvanceRequested{}), Issues: result.Issues()}
	}
	s.Phase = models.PhaseDocumentInfo
	return s, nil
}

func (m *Machine) back(s State) (State, error) {
	if !s.Phase.CanTransitionTo(models.PhasePersonalInfo) {
		return s, fmt.Errorf("back from %s: %w", s.Phase, sentinel.ErrInvalidState)
	}
	s.Phase = models.PhasePersonalInfo
	return s, nil
}

func (m *Machine) submit(s State) (State, error) {
	if !s.Phase.CanTransitionTo(models.PhaseSubmitted) {
		return s, fmt.Errorf("submit from %s: %w", s.Phase, sentinel.ErrInvalidState)
	}
	if s.Loading() {
		return s, fmt.Errorf("submit while attachment is loading: %w", sentinel.ErrPending)
	}

	result := m.schema.Validate(s.Fields)
	s.Errors = nil
	if !result.Valid() {
		s = s.withIssues(result.Issues())
		return s, &GuardError{Event: EventName(SubmitRequested{}), Issues: result.Issues()}
	}
	s.Phase = models.PhaseSubmitted
	return s, nil
}

func (m *Machine) selectAttachment(s State, ev AttachmentSelected) (State, error) {
	if _, err := models.ParseSlot(string(ev.Slot)); err != nil {
		return s, err
	}

	if aerr := models.CheckAttachment(ev.Size, ev.MIMEType); aerr != nil {
		s.Notice = aerr.Message
		issue := schema.Issue{Field: ev.Slot.Field(), Message: aerr.Message, Kind: schema.KindField}
		return s, &GuardError{Event: EventName(ev), Issues: []schema.Issue{issue}}
	}

	prev := s.Slot(ev.Slot)
	s = s.withSlot(ev.Slot, SlotState{
		Status:     AttachmentLoading,
		Generation: prev.Generation + 1,
		Name:       ev.Name,
		MIMEType:   ev.MIMEType,
		Size:       ev.Size,
	})
	s.Fields = s.Fields.WithAttachment(ev.Slot, nil)
	return s.withoutErrors(ev.Slot.Field()), nil
}

// loadAttachment discards results that belong to a superseded selection.
func (m *Machine) loadAttachment(s State, ev AttachmentLoaded) State {
	slot := s.Slot(ev.Slot)
	if slot.Status != AttachmentLoading || slot.Generation != ev.Generation {
		return s
	}

	a := &models.Attachment{
		Name:     slot.Name,
		MIMEType: slot.MIMEType,
		Size:     int64(len(ev.Data)),
		Data:     ev.Data,
	}
	if aerr := a.Validate(); aerr != nil {
		slot.Status = AttachmentError
		slot.Error = aerr.Message
		s.Notice = aerr.Message
		return s.withSlot(ev.Slot, slot)
	}

	slot.Status = AttachmentReady
	slot.Size = a.Size
	slot.Error = ""
	s = s.withSlot(ev.Slot, slot)
	s.Fields = s.Fields.WithAttachment(ev.Slot, a)
	return s
}

func (m *Machine) failAttachment(s State, ev AttachmentFailed) State {
	slot := s.Slot(ev.Slot)
	if slot.Status != AttachmentLoading || slot.Generation != ev.Generation {
		return s
	}
	slot.Status = AttachmentError
	slot.Error = ev.Reason
	s.Notice = ev.Reason
	return s.withSlot(ev.Slot, slot)
}
