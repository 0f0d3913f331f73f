package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"insurtech/internal/applicant/reference"
	"insurtech/pkg/calendar"
	"insurtech/pkg/platform/httputil"
	"insurtech/pkg/requestcontext"
	"insurtech/pkg/transliterate"
)

// ToolsHandler serves the stateless surfaces: option catalogs, date
// conversion and transliteration.
type ToolsHandler struct {
	catalog       *reference.Catalog
	transliterate func(string) string
	logger        *slog.Logger
}

func NewTools(catalog *reference.Catalog, logger *slog.Logger) *ToolsHandler {
	return &ToolsHandler{
		catalog:       catalog,
		transliterate: transliterate.ConvertToNepali,
		logger:        logger,
	}
}

// Register mounts the stateless endpoints.
func (h *ToolsHandler) Register(r chi.Router) {
	r.Get("/reference/districts", h.handleDistricts)
	r.Get("/reference/genders", h.handleGenders)
	r.Get("/calendar/ad-to-bs", h.handleAdToBs)
	r.Get("/calendar/bs-to-ad", h.handleBsToAd)
	r.Get("/calendar/age", h.handleAge)
	r.Post("/transliterate", h.handleTransliterate)
}

type DistrictsResponse struct {
	Districts []reference.District `json:"districts"`
}

type GendersResponse struct {
	Genders []reference.Option `json:"genders"`
}

type ConversionResponse struct {
	AD string `json:"ad"`
	BS string `json:"bs"`
}

type AgeResponse struct {
	DateOfBirthAD string `json:"dateOfBirthAD"`
	Age           int    `json:"age"`
}

type TransliterateResponse struct {
	Text      string `json:"text"`
	Converted string `json:"converted"`
}

func (h *ToolsHandler) handleDistricts(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, DistrictsResponse{Districts: h.catalog.Districts()})
}

func (h *ToolsHandler) handleGenders(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, GendersResponse{Genders: h.catalog.Genders()})
}

func (h *ToolsHandler) handleAdToBs(w http.ResponseWriter, r *http.Request) {
	ad := r.URL.Query().Get("date")
	httputil.WriteJSON(w, http.StatusOK, ConversionResponse{AD: ad, BS: calendar.AdToBs(ad)})
}

func (h *ToolsHandler) handleBsToAd(w http.ResponseWriter, r *http.Request) {
	bs := r.URL.Query().Get("date")
	httputil.WriteJSON(w, http.StatusOK, ConversionResponse{AD: calendar.BsToAd(bs), BS: bs})
}

func (h *ToolsHandler) handleAge(w http.ResponseWriter, r *http.Request) {
	ad := r.URL.Query().Get("date")
	age := calendar.CalculateAge(ad, requestcontext.Now(r.Context()))
	httputil.WriteJSON(w, http.StatusOK, AgeResponse{DateOfBirthAD: ad, Age: age})
}

func (h *ToolsHandler) handleTransliterate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[TransliterateRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, TransliterateResponse{Text: req.Text, Converted: h.transliterate(req.Text)})
}
