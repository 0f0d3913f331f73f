// Package schema declares the applicant form's validation rules.
//
// Field rules look at one field at a time and run on demand: for the
// personal info subset when the applicant advances, and for every field on
// submission. Cross-field rules only run as part of full validation and
// attribute their failure to a single field.
package schema

import (
	"regexp"
	"strings"
	"time"

	"insurtech/internal/applicant/models"
	"insurtech/pkg/calendar"
)

// Messages reported by the rules.
const (
	MessageNameRequired     = "Full name in English is required"
	MessageNameCharacters   = "Only alphabets and spaces allowed"
	MessageGenderRequired   = "Gender is required"
	MessageBirthDateMissing = "Date of birth is required"
	MessagePhoneFormat      = "Phone number must be 10 digits starting with 9"
	MessageCitizenshipNo    = "Citizenship number is required"
	MessageDistrictMissing  = "Issued district is required"
	MessageDistrictUnknown  = "Select a valid district"
	MessageIssuedDate       = "Issued date is required"
	MessagePhoneRequired    = "Phone number is required for males over 18"
)

// AdultAge is the age above which male applicants must give a phone number.
const AdultAge = 18

// PersonalInfoFields gate the personal_info -> document_info transition.
var PersonalInfoFields = []models.Field{
	models.FieldFullNameEnglish,
	models.FieldGender,
	models.FieldDateOfBirthAD,
	models.FieldDateOfBirthBS,
	models.FieldPhoneNumber,
}

// DocumentInfoFields must be non-blank before submission is offered.
var DocumentInfoFields = []models.Field{
	models.FieldCitizenshipNumber,
	models.FieldIssuedDistrict,
	models.FieldIssuedDateAD,
	models.FieldIssuedDateBS,
}

var (
	namePattern  = regexp.MustCompile(`^[A-Za-z\s]+$`)
	phonePattern = regexp.MustCompile(`^9\d{9}$`)
)

// DistrictLookup answers whether a district code is recognized.
type DistrictLookup interface {
	IsDistrict(code string) bool
}

// Check inspects one field of the record and returns a failure message, or
// the empty string when the field passes.
type Check func(fs models.FieldSet, field models.Field) string

// FieldRule is the ordered list of checks for one field. The first failing
// check is reported.
type FieldRule struct {
	Field  models.Field
	Checks []Check
}

// CrossRule requires Satisfied whenever Applies holds. Failures are
// attributed to Field.
type CrossRule struct {
	Field     models.Field
	Message   string
	Applies   func(fs models.FieldSet, age int) bool
	Satisfied func(fs models.FieldSet) bool
}

// Schema validates FieldSets.
type Schema struct {
	fieldRules []FieldRule
	crossRules []CrossRule
	now        func() time.Time
}

// Option configures a Schema.
type Option func(*Schema)

// WithClock sets the clock used to derive the applicant's age.
func WithClock(now func() time.Time) Option {
	return func(s *Schema) {
		if now != nil {
			s.now = now
		}
	}
}

// New builds the applicant schema against a district catalog.
func New(districts DistrictLookup, opts ...Option) *Schema {
	s := &Schema{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	s.fieldRules = []FieldRule{
		{models.FieldFullNameEnglish, []Check{required(MessageNameRequired), matches(namePattern, MessageNameCharacters)}},
		{models.FieldGender, []Check{validGender}},
		{models.FieldDateOfBirthAD, []Check{required(MessageBirthDateMissing)}},
		{models.FieldDateOfBirthBS, []Check{required(MessageBirthDateMissing)}},
		{models.FieldPhoneNumber, []Check{optional(matches(phonePattern, MessagePhoneFormat))}},
		{models.FieldCitizenshipNumber, []Check{required(MessageCitizenshipNo)}},
		{models.FieldIssuedDistrict, []Check{required(MessageDistrictMissing), knownDistrict(districts)}},
		{models.FieldIssuedDateAD, []Check{required(MessageIssuedDate)}},
		{models.FieldIssuedDateBS, []Check{required(MessageIssuedDate)}},
		{models.FieldCitizenshipFront, []Check{attachment(models.SlotFront)}},
		{models.FieldCitizenshipBack, []Check{attachment(models.SlotBack)}},
	}
	s.crossRules = []CrossRule{
		{
			Field:   models.FieldPhoneNumber,
			Message: MessagePhoneRequired,
			Applies: func(fs models.FieldSet, age int) bool {
				return age > AdultAge && fs.Gender == models.GenderMale
			},
			Satisfied: func(fs models.FieldSet) bool {
				return fs.PhoneNumber != ""
			},
		},
	}
	return s
}

// ValidateFields runs the field rules of the given fields only.
func (s *Schema) ValidateFields(fs models.FieldSet, fields ...models.Field) Result {
	want := make(map[models.Field]struct{}, len(fields))
	for _, f := range fields {
		want[f] = struct{}{}
	}

	var r Result
	for _, rule := range s.fieldRules {
		if _, ok := want[rule.Field]; !ok {
			continue
		}
		s.applyFieldRule(&r, fs, rule)
	}
	return r
}

// Validate runs every field rule followed by the cross-field rules.
func (s *Schema) Validate(fs models.FieldSet) Result {
	var r Result
	for _, rule := range s.fieldRules {
		s.applyFieldRule(&r, fs, rule)
	}

	age := s.Age(fs)
	for _, rule := range s.crossRules {
		if rule.Applies(fs, age) && !rule.Satisfied(fs) {
			r.add(Issue{Field: rule.Field, Message: rule.Message, Kind: KindCrossField})
		}
	}
	return r
}

// Age derives the applicant's age from the AD birth date.
func (s *Schema) Age(fs models.FieldSet) int {
	return calendar.CalculateAge(fs.DateOfBirthAD, s.now())
}

// PhoneRequired reports whether the conditional phone rule currently applies,
// independent of whether a phone number was given.
func (s *Schema) PhoneRequired(fs models.FieldSet) bool {
	age := s.Age(fs)
	for _, rule := range s.crossRules {
		if rule.Field == models.FieldPhoneNumber && rule.Applies(fs, age) {
			return true
		}
	}
	return false
}

// DocumentInfoComplete is the submit visibility gate: every document field is
// non-blank. It does not check formats.
func DocumentInfoComplete(fs models.FieldSet) bool {
	for _, f := range DocumentInfoFields {
		if isBlank(fs.Text(f)) {
			return false
		}
	}
	return true
}

func (s *Schema) applyFieldRule(r *Result, fs models.FieldSet, rule FieldRule) {
	for _, check := range rule.Checks {
		if msg := check(fs, rule.Field); msg != "" {
			r.add(Issue{Field: rule.Field, Message: msg, Kind: KindField})
			return
		}
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
