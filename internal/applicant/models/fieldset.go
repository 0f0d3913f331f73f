package models

// FieldSet is the full applicant record owned by one workflow session.
//
// Invariants:
//   - the AD and BS strings of a date pair are derived from each other on
//     every edit; neither is authoritative beyond the edit that set it
//   - attachments are either nil or fully read
type FieldSet struct {
	FullNameEnglish   string      `json:"fullNameEnglish"`
	FullNameNepali    string      `json:"fullNameNepali,omitempty"`
	Gender            Gender      `json:"gender"`
	DateOfBirthAD     string      `json:"dateOfBirthAD"`
	DateOfBirthBS     string      `json:"dateOfBirthBS"`
	PhoneNumber       string      `json:"phoneNumber,omitempty"`
	CitizenshipNumber string      `json:"citizenshipNumber"`
	IssuedDistrict    string      `json:"issuedDistrict"`
	IssuedDateAD      string      `json:"issuedDateAD"`
	IssuedDateBS      string      `json:"issuedDateBS"`
	CitizenshipFront  *Attachment `json:"citizenshipFront,omitempty"`
	CitizenshipBack   *Attachment `json:"citizenshipBack,omitempty"`
}

// Text returns the string value of a text field. Unknown fields are empty.
func (f FieldSet) Text(field Field) string {
	switch field {
	case FieldFullNameEnglish:
		return f.FullNameEnglish
	case FieldFullNameNepali:
		return f.FullNameNepali
	case FieldGender:
		return string(f.Gender)
	case FieldDateOfBirthAD:
		return f.DateOfBirthAD
	case FieldDateOfBirthBS:
		return f.DateOfBirthBS
	case FieldPhoneNumber:
		return f.PhoneNumber
	case FieldCitizenshipNumber:
		return f.CitizenshipNumber
	case FieldIssuedDistrict:
		return f.IssuedDistrict
	case FieldIssuedDateAD:
		return f.IssuedDateAD
	case FieldIssuedDateBS:
		return f.IssuedDateBS
	default:
		return ""
	}
}

// WithText returns a copy of f with one text field replaced.
func (f FieldSet) WithText(field Field, value string) FieldSet {
	switch field {
	case FieldFullNameEnglish:
		f.FullNameEnglish = value
	case FieldFullNameNepali:
		f.FullNameNepali = value
	case FieldGender:
		f.Gender = Gender(value)
	case FieldDateOfBirthAD:
		f.DateOfBirthAD = value
	case FieldDateOfBirthBS:
		f.DateOfBirthBS = value
	case FieldPhoneNumber:
		f.PhoneNumber = value
	case FieldCitizenshipNumber:
		f.CitizenshipNumber = value
	case FieldIssuedDistrict:
		f.IssuedDistrict = value
	case FieldIssuedDateAD:
		f.IssuedDateAD = value
	case FieldIssuedDateBS:
		f.IssuedDateBS = value
	}
	return f
}

// Attachment returns the attachment bound to slot, or nil.
func (f FieldSet) Attachment(slot Slot) *Attachment {
	if slot == SlotBack {
		return f.CitizenshipBack
	}
	return f.CitizenshipFront
}

// WithAttachment returns a copy of f with the slot's attachment replaced.
func (f FieldSet) WithAttachment(slot Slot, a *Attachment) FieldSet {
	if slot == SlotBack {
		f.CitizenshipBack = a
	} else {
		f.CitizenshipFront = a
	}
	return f
}
