package schema

import (
	"regexp"

	"insurtech/internal/applicant/models"
)

// required rejects only the empty string; whitespace counts as a value.
func required(msg string) Check {
	return func(fs models.FieldSet, field models.Field) string {
		if fs.Text(field) == "" {
			return msg
		}
		return ""
	}
}

func matches(pattern *regexp.Regexp, msg string) Check {
	return func(fs models.FieldSet, field models.Field) string {
		if !pattern.MatchString(fs.Text(field)) {
			return msg
		}
		return ""
	}
}

// optional skips the wrapped check when the field is blank.
func optional(check Check) Check {
	return func(fs models.FieldSet, field models.Field) string {
		if isBlank(fs.Text(field)) {
			return ""
		}
		return check(fs, field)
	}
}

func validGender(fs models.FieldSet, _ models.Field) string {
	if !fs.Gender.IsValid() {
		return MessageGenderRequired
	}
	return ""
}

func knownDistrict(districts DistrictLookup) Check {
	return func(fs models.FieldSet, field models.Field) string {
		if districts == nil || !districts.IsDistrict(fs.Text(field)) {
			return MessageDistrictUnknown
		}
		return ""
	}
}

func attachment(slot models.Slot) Check {
	return func(fs models.FieldSet, _ models.Field) string {
		a := fs.Attachment(slot)
		if a == nil {
			return ""
		}
		if err := a.Validate(); err != nil {
			return err.Message
		}
		return ""
	}
}
