package workflow

import (
	"insurtech/internal/applicant/models"
	"insurtech/internal/applicant/schema"
)

// AttachmentView is the rendered state of one slot.
type AttachmentView struct {
	Status      AttachmentStatus `json:"status"`
	Name        string           `json:"name,omitempty"`
	Size        int64            `json:"size,omitempty"`
	MIMEType    string           `json:"mimeType,omitempty"`
	Previewable bool             `json:"previewable,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// View is everything a driver needs to render the form. Derived values are
// computed on every call and never stored.
type View struct {
	ID            string                         `json:"id,omitempty"`
	Phase         models.Phase                   `json:"phase"`
	Fields        models.FieldSet                `json:"fields"`
	Errors        map[models.Field]string        `json:"errors,omitempty"`
	Age           int                            `json:"age"`
	PhoneRequired bool                           `json:"phoneRequired"`
	CanSubmit     bool                           `json:"canSubmit"`
	Attachments   map[models.Slot]AttachmentView `json:"attachments"`
	Notice        string                         `json:"notice,omitempty"`
}

// View renders s.
func (m *Machine) View(s State) View {
	v := View{
		Phase:         s.Phase,
		Fields:        s.Fields,
		Age:           m.schema.Age(s.Fields),
		PhoneRequired: m.schema.PhoneRequired(s.Fields),
		CanSubmit:     s.Phase == models.PhaseDocumentInfo && schema.DocumentInfoComplete(s.Fields),
		Attachments:   make(map[models.Slot]AttachmentView, len(models.Slots)),
		Notice:        s.Notice,
	}
	if len(s.Errors) > 0 {
		v.Errors = make(map[models.Field]string, len(s.Errors))
		for f, i := range s.Errors {
			v.Errors[f] = i.Message
		}
	}
	for _, slot := range models.Slots {
		ss := s.Slot(slot)
		av := AttachmentView{
			Status:   ss.Status,
			Name:     ss.Name,
			Size:     ss.Size,
			MIMEType: ss.MIMEType,
			Error:    ss.Error,
		}
		if av.Status == "" {
			av.Status = AttachmentEmpty
		}
		if a := s.Fields.Attachment(slot); a != nil {
			av.Previewable = a.IsImage()
		}
		v.Attachments[slot] = av
	}
	return v
}
