package models

import dErrors "insurtech/pkg/domain-errors"

// Field names one input of the applicant form. Values match the JSON keys of
// FieldSet.
type Field string

const (
	FieldFullNameEnglish   Field = "fullNameEnglish"
	FieldFullNameNepali    Field = "fullNameNepali"
	FieldGender            Field = "gender"
	FieldDateOfBirthAD     Field = "dateOfBirthAD"
	FieldDateOfBirthBS     Field = "dateOfBirthBS"
	FieldPhoneNumber       Field = "phoneNumber"
	FieldCitizenshipNumber Field = "citizenshipNumber"
	FieldIssuedDistrict    Field = "issuedDistrict"
	FieldIssuedDateAD      Field = "issuedDateAD"
	FieldIssuedDateBS      Field = "issuedDateBS"
	FieldCitizenshipFront  Field = "citizenshipFront"
	FieldCitizenshipBack   Field = "citizenshipBack"
)

// TextFields are the fields edited as plain strings, in form order.
var TextFields = []Field{
	FieldFullNameEnglish,
	FieldFullNameNepali,
	FieldGender,
	FieldDateOfBirthAD,
	FieldDateOfBirthBS,
	FieldPhoneNumber,
	FieldCitizenshipNumber,
	FieldIssuedDistrict,
	FieldIssuedDateAD,
	FieldIssuedDateBS,
}

var textFieldSet = func() map[Field]struct{} {
	m := make(map[Field]struct{}, len(TextFields))
	for _, f := range TextFields {
		m[f] = struct{}{}
	}
	return m
}()

// ParseTextField validates a field name coming from a client.
func ParseTextField(s string) (Field, error) {
	f := Field(s)
	if _, ok := textFieldSet[f]; !ok {
		return "", dErrors.New(dErrors.CodeBadRequest, "unknown field: "+s)
	}
	return f, nil
}

// String returns the field name.
func (f Field) String() string {
	return string(f)
}
