// Package wizard drives an application session from a terminal. It only
// turns answers into service calls and prints what the view reports.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"insurtech/internal/applicant/models"
	"insurtech/internal/applicant/reference"
	"insurtech/internal/applicant/service"
	"insurtech/internal/applicant/workflow"
	id "insurtech/pkg/domain"
	dErrors "insurtech/pkg/domain-errors"
)

// Service is the subset of the application service the wizard drives.
type Service interface {
	Start(ctx context.Context) (*workflow.View, error)
	EditField(ctx context.Context, appID id.ApplicationID, field models.Field, value string) (*workflow.View, error)
	ConvertNepaliName(ctx context.Context, appID id.ApplicationID) (*workflow.View, error)
	Advance(ctx context.Context, appID id.ApplicationID) (*workflow.View, error)
	Back(ctx context.Context, appID id.ApplicationID) (*workflow.View, error)
	Submit(ctx context.Context, appID id.ApplicationID) (*workflow.View, error)
	UploadAttachment(ctx context.Context, appID id.ApplicationID, slot models.Slot, upload service.Upload) (*workflow.View, error)
	AcknowledgeNotice(ctx context.Context, appID id.ApplicationID) (*workflow.View, error)
}

// Actions offered once the document details are filled in.
const (
	actionSubmit = iota
	actionReview
	actionBack
)

var documentActions = []string{"Submit application", "Review document details", "Back to personal details"}

var personalFields = []models.Field{
	models.FieldFullNameEnglish,
	models.FieldFullNameNepali,
	models.FieldDateOfBirthAD,
	models.FieldGender,
	models.FieldPhoneNumber,
}

var documentFields = []models.Field{
	models.FieldCitizenshipNumber,
	models.FieldIssuedDistrict,
	models.FieldIssuedDateAD,
	models.FieldCitizenshipFront,
	models.FieldCitizenshipBack,
}

// Wizard walks one applicant through the form.
type Wizard struct {
	service Service
	catalog *reference.Catalog
	driver  PromptDriver
	logger  *slog.Logger

	appID id.ApplicationID
	view  *workflow.View
}

type Option func(*Wizard)

func WithDriver(d PromptDriver) Option {
	return func(w *Wizard) {
		w.driver = d
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(w *Wizard) {
		w.logger = logger
	}
}

func New(svc Service, catalog *reference.Catalog, opts ...Option) *Wizard {
	w := &Wizard{
		service: svc,
		catalog: catalog,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.driver == nil {
		w.driver = NewSurveyDriver()
	}
	return w
}

// Run starts a session and prompts until it is submitted. The final view is
// returned even when the run ends with an error.
func (w *Wizard) Run(ctx context.Context) (*workflow.View, error) {
	view, err := w.service.Start(ctx)
	if err != nil {
		return nil, err
	}
	w.appID, err = id.ParseApplicationID(view.ID)
	if err != nil {
		return view, err
	}
	w.view = view
	w.logger.InfoContext(ctx, "wizard session started", "application_id", view.ID)

	for {
		switch w.view.Phase {
		case models.PhasePersonalInfo:
			err = w.personalInfo(ctx)
		case models.PhaseDocumentInfo:
			err = w.documentInfo(ctx)
		case models.PhaseSubmitted:
			return w.view, w.driver.Info(ctx, "Form submitted successfully.")
		default:
			return w.view, fmt.Errorf("unexpected phase %q", w.view.Phase)
		}
		if err != nil {
			return w.view, err
		}
	}
}

func (w *Wizard) personalInfo(ctx context.Context) error {
	if err := w.driver.Info(ctx, "Step 1 of 2: personal details"); err != nil {
		return err
	}
	fields := w.pending(personalFields, true)
	for {
		for _, f := range fields {
			if err := w.ask(ctx, f); err != nil {
				return err
			}
		}
		if err := w.call(ctx, w.service.Advance); err != nil {
			return err
		}
		if w.view.Phase != models.PhasePersonalInfo {
			return nil
		}
		if err := w.reportErrors(ctx); err != nil {
			return err
		}
		fields = w.pending(personalFields, false)
		if len(fields) == 0 {
			return errors.New("advance rejected without field errors")
		}
	}
}

func (w *Wizard) documentInfo(ctx context.Context) error {
	if err := w.driver.Info(ctx, "Step 2 of 2: citizenship document"); err != nil {
		return err
	}
	fields := w.pending(documentFields, true)
	for {
		for _, f := range fields {
			if err := w.ask(ctx, f); err != nil {
				return err
			}
		}

		choice, err := w.driver.Select(ctx, SelectConfig{Message: "What next?", Options: documentActions})
		if err != nil {
			return err
		}
		switch choice {
		case actionBack:
			return w.call(ctx, w.service.Back)
		case actionReview:
			fields = documentFields
			continue
		case actionSubmit:
		default:
			return fmt.Errorf("unknown action %d", choice)
		}

		if !w.view.CanSubmit {
			if err := w.driver.Info(ctx, "Fill in every document detail before submitting."); err != nil {
				return err
			}
			fields = w.pending(documentFields, true)
			continue
		}
		if err := w.call(ctx, w.service.Submit); err != nil {
			return err
		}
		if w.view.Phase == models.PhaseSubmitted {
			return nil
		}
		if err := w.reportErrors(ctx); err != nil {
			return err
		}
		if len(w.pending(personalFields, false)) > 0 {
			return w.call(ctx, w.service.Back)
		}
		fields = w.pending(documentFields, false)
	}
}

// pending returns the fields that still need an answer: those with an error,
// plus blank ones when includeBlank is set.
func (w *Wizard) pending(fields []models.Field, includeBlank bool) []models.Field {
	var out []models.Field
	for _, f := range fields {
		if w.view.Errors[f] != "" || (includeBlank && w.blank(f)) {
			out = append(out, f)
		}
	}
	return out
}

func (w *Wizard) blank(f models.Field) bool {
	switch f {
	case models.FieldCitizenshipFront:
		return w.view.Attachments[models.SlotFront].Status != workflow.AttachmentReady
	case models.FieldCitizenshipBack:
		return w.view.Attachments[models.SlotBack].Status != workflow.AttachmentReady
	case models.FieldDateOfBirthAD:
		return strings.TrimSpace(w.view.Fields.DateOfBirthAD) == "" || strings.TrimSpace(w.view.Fields.DateOfBirthBS) == ""
	case models.FieldIssuedDateAD:
		return strings.TrimSpace(w.view.Fields.IssuedDateAD) == "" || strings.TrimSpace(w.view.Fields.IssuedDateBS) == ""
	default:
		return strings.TrimSpace(w.view.Fields.Text(f)) == ""
	}
}

func (w *Wizard) ask(ctx context.Context, f models.Field) error {
	switch f {
	case models.FieldFullNameEnglish:
		return w.askText(ctx, f, "Full name (English)", "")
	case models.FieldFullNameNepali:
		if err := w.askText(ctx, f, "Full name in Nepali (type in Roman letters, optional)", ""); err != nil {
			return err
		}
		if strings.TrimSpace(w.view.Fields.FullNameNepali) == "" {
			return nil
		}
		if err := w.call(ctx, w.service.ConvertNepaliName); err != nil {
			return err
		}
		return w.driver.Info(ctx, "  Nepali name: "+strings.TrimSpace(w.view.Fields.FullNameNepali))
	case models.FieldDateOfBirthAD:
		return w.askDate(ctx, "Date of birth", models.FieldDateOfBirthAD, models.FieldDateOfBirthBS)
	case models.FieldGender:
		return w.askOption(ctx, f, "Gender", w.catalog.Genders())
	case models.FieldPhoneNumber:
		help := "Optional"
		if w.view.PhoneRequired {
			help = "Required for male applicants over 18"
		}
		return w.askText(ctx, f, "Phone number", help)
	case models.FieldCitizenshipNumber:
		return w.askText(ctx, f, "Citizenship number", "")
	case models.FieldIssuedDistrict:
		return w.askOption(ctx, f, "Issued district", districtOptions(w.catalog.Districts()))
	case models.FieldIssuedDateAD:
		return w.askDate(ctx, "Citizenship issued date", models.FieldIssuedDateAD, models.FieldIssuedDateBS)
	case models.FieldCitizenshipFront:
		return w.askAttachment(ctx, models.SlotFront, "Citizenship front image (path, blank to skip)")
	case models.FieldCitizenshipBack:
		return w.askAttachment(ctx, models.SlotBack, "Citizenship back image (path, blank to skip)")
	default:
		return w.askText(ctx, f, string(f), "")
	}
}

func (w *Wizard) askText(ctx context.Context, f models.Field, message, help string) error {
	if msg := w.view.Errors[f]; msg != "" {
		help = msg
	}
	value, err := w.driver.Input(ctx, InputConfig{Message: message, Default: w.view.Fields.Text(f), Help: help})
	if err != nil {
		return err
	}
	return w.edit(ctx, f, value)
}

// askDate accepts either calendar. An empty AD answer asks for the BS date
// instead; the other side is derived by the workflow.
func (w *Wizard) askDate(ctx context.Context, label string, ad, bs models.Field) error {
	value, err := w.driver.Input(ctx, InputConfig{
		Message: label + " (AD, YYYY-MM-DD)",
		Default: w.view.Fields.Text(ad),
		Help:    "Leave blank to enter the date in BS",
	})
	if err != nil {
		return err
	}
	if strings.TrimSpace(value) != "" {
		if err := w.edit(ctx, ad, value); err != nil {
			return err
		}
	} else {
		value, err = w.driver.Input(ctx, InputConfig{Message: label + " (BS, YYYY-MM-DD)", Default: w.view.Fields.Text(bs)})
		if err != nil {
			return err
		}
		if err := w.edit(ctx, bs, value); err != nil {
			return err
		}
	}
	return w.driver.Info(ctx, fmt.Sprintf("  AD %s / BS %s", w.view.Fields.Text(ad), w.view.Fields.Text(bs)))
}

func (w *Wizard) askOption(ctx context.Context, f models.Field, message string, options []reference.Option) error {
	names := make([]string, len(options))
	current := -1
	for i, o := range options {
		names[i] = o.Name
		if o.Code == w.view.Fields.Text(f) {
			current = i
		}
	}
	idx, err := w.driver.Select(ctx, SelectConfig{
		Message:      message,
		Options:      names,
		DefaultIndex: current,
		Help:         w.view.Errors[f],
		PageSize:     10,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(options) {
		return fmt.Errorf("%s: selection %d out of range", f, idx)
	}
	return w.edit(ctx, f, options[idx].Code)
}

func (w *Wizard) askAttachment(ctx context.Context, slot models.Slot, message string) error {
	path, err := w.driver.Input(ctx, InputConfig{Message: message, Help: w.view.Errors[slot.Field()]})
	if err != nil {
		return err
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return w.driver.Info(ctx, "  ! cannot open "+path)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return w.driver.Info(ctx, "  ! cannot read "+path)
	}

	upload := service.Upload{
		Name:     filepath.Base(path),
		MIMEType: mime.TypeByExtension(strings.ToLower(filepath.Ext(path))),
		Size:     info.Size(),
		Body:     f,
	}
	if err := w.call(ctx, func(ctx context.Context, appID id.ApplicationID) (*workflow.View, error) {
		return w.service.UploadAttachment(ctx, appID, slot, upload)
	}); err != nil {
		return err
	}
	if a := w.view.Attachments[slot]; a.Status == workflow.AttachmentReady {
		return w.driver.Info(ctx, fmt.Sprintf("  attached %s (%d bytes)", a.Name, a.Size))
	}
	return nil
}

func (w *Wizard) edit(ctx context.Context, f models.Field, value string) error {
	return w.call(ctx, func(ctx context.Context, appID id.ApplicationID) (*workflow.View, error) {
		return w.service.EditField(ctx, appID, f, value)
	})
}

// call runs one service operation and keeps the resulting view. Validation
// failures that carry a view are part of the conversation, not errors.
// A pending notice is shown and acknowledged straight away.
func (w *Wizard) call(ctx context.Context, op func(context.Context, id.ApplicationID) (*workflow.View, error)) error {
	view, err := op(ctx, w.appID)
	if err != nil && (view == nil || !dErrors.HasCode(err, dErrors.CodeValidation)) {
		return err
	}
	w.view = view
	if view.Notice == "" {
		return nil
	}
	if err := w.driver.Info(ctx, "  ! "+view.Notice); err != nil {
		return err
	}
	view, err = w.service.AcknowledgeNotice(ctx, w.appID)
	if err != nil {
		return err
	}
	w.view = view
	return nil
}

func (w *Wizard) reportErrors(ctx context.Context) error {
	for _, f := range models.TextFields {
		if msg := w.view.Errors[f]; msg != "" {
			if err := w.driver.Info(ctx, fmt.Sprintf("  ! %s: %s", f, msg)); err != nil {
				return err
			}
		}
	}
	for _, slot := range models.Slots {
		if msg := w.view.Errors[slot.Field()]; msg != "" {
			if err := w.driver.Info(ctx, fmt.Sprintf("  ! %s: %s", slot.Field(), msg)); err != nil {
				return err
			}
		}
	}
	return nil
}

func districtOptions(districts []reference.District) []reference.Option {
	out := make([]reference.Option, len(districts))
	for i, d := range districts {
		out[i] = reference.Option{Code: d.Code, Name: d.Name}
	}
	return out
}
