package workflow

import (
	"insurtech/internal/applicant/models"
	"insurtech/pkg/calendar"
)

// Derivation recomputes To whenever From is edited.
type Derivation struct {
	From   models.Field
	To     models.Field
	Derive func(string) string
}

// Graph is the set of field derivations. Derivations are applied one hop:
// the derived value does not trigger its own dependents, so the AD and BS
// halves of a pair never ping-pong.
type Graph []Derivation

// DefaultGraph links both halves of the birth and issue date pairs.
func DefaultGraph() Graph {
	return Graph{
		{From: models.FieldDateOfBirthAD, To: models.FieldDateOfBirthBS, Derive: calendar.AdToBs},
		{From: models.FieldDateOfBirthBS, To: models.FieldDateOfBirthAD, Derive: calendar.BsToAd},
		{From: models.FieldIssuedDateAD, To: models.FieldIssuedDateBS, Derive: calendar.AdToBs},
		{From: models.FieldIssuedDateBS, To: models.FieldIssuedDateAD, Derive: calendar.BsToAd},
	}
}

// Dependents returns the derivations triggered by an edit of field.
func (g Graph) Dependents(field models.Field) []Derivation {
	var out []Derivation
	for _, d := range g {
		if d.From == field {
			out = append(out, d)
		}
	}
	return out
}
