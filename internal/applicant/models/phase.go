package models

// Phase is one step of the form wizard.
//
// Transitions:
//   - personal_info -> document_info (guarded by personal info validation)
//   - document_info -> personal_info (no data loss)
//   - document_info -> submitted (guarded by full schema validation)
//
// submitted is terminal.
type Phase string

const (
	PhasePersonalInfo Phase = "personal_info"
	PhaseDocumentInfo Phase = "document_info"
	PhaseSubmitted    Phase = "submitted"
)

var phaseTransitions = map[Phase][]Phase{
	PhasePersonalInfo: {PhaseDocumentInfo},
	PhaseDocumentInfo: {PhasePersonalInfo, PhaseSubmitted},
}

// CanTransitionTo reports whether the edge p -> next exists.
func (p Phase) CanTransitionTo(next Phase) bool {
	for _, allowed := range phaseTransitions[p] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves p.
func (p Phase) IsTerminal() bool {
	return len(phaseTransitions[p]) == 0
}

func (p Phase) String() string {
	return string(p)
}
