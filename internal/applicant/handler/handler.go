package handler

import (
	"context"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"insurtech/internal/applicant/models"
	"insurtech/internal/applicant/service"
	"insurtech/internal/applicant/workflow"
	id "insurtech/pkg/domain"
	dErrors "insurtech/pkg/domain-errors"
	"insurtech/pkg/platform/httputil"
	"insurtech/pkg/requestcontext"
)

// uploadOverhead is the multipart framing allowed on top of the file itself.
const uploadOverhead = 64 * 1024

// Service defines the form session operations used by the handler.
type Service interface {
	Start(ctx context.Context) (*workflow.View, error)
	Get(ctx context.Context, appID id.ApplicationID) (*workflow.View, error)
	EditField(ctx context.Context, appID id.ApplicationID, field models.Field, value string) (*workflow.View, error)
	ConvertNepaliName(ctx context.Context, appID id.ApplicationID) (*workflow.View, error)
	Advance(ctx context.Context, appID id.ApplicationID) (*workflow.View, error)
	Back(ctx context.Context, appID id.ApplicationID) (*workflow.View, error)
	Submit(ctx context.Context, appID id.ApplicationID) (*workflow.View, error)
	UploadAttachment(ctx context.Context, appID id.ApplicationID, slot models.Slot, upload service.Upload) (*workflow.View, error)
	AcknowledgeNotice(ctx context.Context, appID id.ApplicationID) (*workflow.View, error)
}

// Handler exposes form sessions over HTTP.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Register mounts the application endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/applications", h.handleStart)
	r.Route("/applications/{id}", func(r chi.Router) {
		r.Get("/", h.handleGet)
		r.Put("/fields/{field}", h.handleEditField)
		r.Post("/nepali-name/convert", h.handleConvertNepaliName)
		r.Post("/advance", h.handleAdvance)
		r.Post("/back", h.handleBack)
		r.Post("/submit", h.handleSubmit)
		r.Put("/attachments/{slot}", h.handleUpload)
		r.Post("/notice/ack", h.handleAcknowledgeNotice)
	})
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Start(r.Context())
	h.respond(w, r, "start", view, err, http.StatusCreated)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	h.withApplication(w, r, "get", h.service.Get)
}

func (h *Handler) handleEditField(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	appID, ok := h.applicationID(w, r)
	if !ok {
		return
	}
	field, err := models.ParseTextField(chi.URLParam(r, "field"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[EditFieldRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	view, err := h.service.EditField(ctx, appID, field, req.Value)
	h.respond(w, r, "edit_field", view, err, http.StatusOK)
}

func (h *Handler) handleConvertNepaliName(w http.ResponseWriter, r *http.Request) {
	h.withApplication(w, r, "convert_nepali_name", h.service.ConvertNepaliName)
}

func (h *Handler) handleAdvance(w http.ResponseWriter, r *http.Request) {
	h.withApplication(w, r, "advance", h.service.Advance)
}

func (h *Handler) handleBack(w http.ResponseWriter, r *http.Request) {
	h.withApplication(w, r, "back", h.service.Back)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	h.withApplication(w, r, "submit", h.service.Submit)
}

func (h *Handler) handleAcknowledgeNotice(w http.ResponseWriter, r *http.Request) {
	h.withApplication(w, r, "acknowledge_notice", h.service.AcknowledgeNotice)
}

// handleUpload accepts a multipart body with a single "file" part. Bodies
// over the size limit are still reported to the workflow so the applicant
// sees the rejection notice.
func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	appID, ok := h.applicationID(w, r)
	if !ok {
		return
	}
	slot, err := models.ParseSlot(chi.URLParam(r, "slot"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, models.MaxAttachmentSize+uploadOverhead)
	file, header, err := r.FormFile("file")
	if err != nil {
		if isBodyTooLarge(err) {
			view, err := h.service.UploadAttachment(ctx, appID, slot, service.Upload{
				Size: models.MaxAttachmentSize + 1,
				Body: strings.NewReader(""),
			})
			h.respond(w, r, "upload", view, err, http.StatusOK)
			return
		}
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "multipart field \"file\" is required"))
		return
	}
	defer file.Close()

	view, err := h.service.UploadAttachment(ctx, appID, slot, service.Upload{
		Name:     sanitizeText(filepath.Base(header.Filename)),
		MIMEType: contentType(header.Header.Get("Content-Type"), header.Filename),
		Size:     header.Size,
		Body:     file,
	})
	h.respond(w, r, "upload", view, err, http.StatusOK)
}

func (h *Handler) withApplication(w http.ResponseWriter, r *http.Request, op string, fn func(context.Context, id.ApplicationID) (*workflow.View, error)) {
	appID, ok := h.applicationID(w, r)
	if !ok {
		return
	}
	view, err := fn(r.Context(), appID)
	h.respond(w, r, op, view, err, http.StatusOK)
}

func (h *Handler) applicationID(w http.ResponseWriter, r *http.Request) (id.ApplicationID, bool) {
	appID, err := id.ParseApplicationID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return id.ApplicationID{}, false
	}
	return appID, true
}

// respond writes the view. Validation failures that come with a view are
// answered with the view itself so clients can render the field errors.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, op string, view *workflow.View, err error, status int) {
	ctx := r.Context()
	if err != nil {
		if view != nil && dErrors.HasCode(err, dErrors.CodeValidation) {
			httputil.WriteJSON(w, http.StatusUnprocessableEntity, view)
			return
		}
		level := slog.LevelWarn
		if dErrors.CodeOf(err) == dErrors.CodeInternal {
			level = slog.LevelError
		}
		h.logger.Log(ctx, level, "application request failed",
			"op", op,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, status, view)
}

func isBodyTooLarge(err error) bool {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return true
	}
	// multipart does not always wrap the reader error.
	return strings.Contains(err.Error(), "request body too large")
}

// contentType prefers the part's declared type and falls back to the file
// extension.
func contentType(declared, filename string) string {
	if declared != "" && declared != "application/octet-stream" {
		if mediaType, _, err := mime.ParseMediaType(declared); err == nil {
			return mediaType
		}
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); byExt != "" {
		if mediaType, _, err := mime.ParseMediaType(byExt); err == nil {
			return mediaType
		}
	}
	return declared
}
