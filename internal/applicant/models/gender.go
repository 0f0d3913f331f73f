package models

// Gender is one of the enumerated applicant genders.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Genders lists the valid values in display order.
var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

// IsValid reports whether g is one of the enumerated values.
func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	default:
		return false
	}
}

func (g Gender) String() string {
	return string(g)
}
