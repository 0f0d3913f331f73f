package handler

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	dErrors "insurtech/pkg/domain-errors"
)

const maxFieldLength = 256

// textPolicy strips all markup from free text.
var textPolicy = bluemonday.StrictPolicy()

// sanitizeText removes markup but keeps the text content and whitespace.
// Entities the user typed stay literal; only those added by the policy are
// decoded again.
func sanitizeText(s string) string {
	return html.UnescapeString(textPolicy.Sanitize(strings.ReplaceAll(s, "&", "&amp;")))
}

// EditFieldRequest is the body of PUT /applications/{id}/fields/{field}.
type EditFieldRequest struct {
	Value string `json:"value"`
}

// Normalize strips markup. Whitespace is significant for the Nepali name
// buffer, so it is left alone.
func (r *EditFieldRequest) Normalize() {
	r.Value = sanitizeText(r.Value)
}

// Validate implements httputil.Validatable.
func (r *EditFieldRequest) Validate() error {
	if utf8.RuneCountInString(r.Value) > maxFieldLength {
		return dErrors.New(dErrors.CodeValidation, "value must be at most 256 characters")
	}
	return nil
}

// TransliterateRequest is the body of POST /transliterate.
type TransliterateRequest struct {
	Text string `json:"text"`
}

func (r *TransliterateRequest) Normalize() {
	r.Text = sanitizeText(r.Text)
}

func (r *TransliterateRequest) Validate() error {
	if utf8.RuneCountInString(r.Text) > 4*maxFieldLength {
		return dErrors.New(dErrors.CodeValidation, "text must be at most 1024 characters")
	}
	return nil
}
