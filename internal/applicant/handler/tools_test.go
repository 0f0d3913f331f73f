package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insurtech/internal/applicant/reference"
	"insurtech/pkg/requestcontext"
	"insurtech/pkg/testutil"
)

func newToolsRouter(t *testing.T) chi.Router {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	NewTools(reference.Default(), logger).Register(r)
	return r
}

func TestReferenceEndpoints(t *testing.T) {
	r := newToolsRouter(t)

	t.Run("districts", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/reference/districts", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var resp DistrictsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Districts, 77)
		codes := make([]string, 0, len(resp.Districts))
		for _, d := range resp.Districts {
			codes = append(codes, d.Code)
		}
		assert.Contains(t, codes, "kathmandu")
	})

	t.Run("genders", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/reference/genders", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var resp GendersResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Genders, 3)
	})
}

func TestCalendarEndpoints(t *testing.T) {
	r := newToolsRouter(t)

	t.Run("ad to bs", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/calendar/ad-to-bs?date=2024-01-15", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var resp ConversionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, ConversionResponse{AD: "2024-01-15", BS: "2080-09-30"}, resp)
	})

	t.Run("bs to ad", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/calendar/bs-to-ad?date=2081-01-25", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var resp ConversionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "2024-05-10", resp.AD)
	})

	t.Run("empty input converts to empty", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/calendar/ad-to-bs", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var resp ConversionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Empty(t, resp.BS)
	})

	t.Run("age uses the request time", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/calendar/age?date=2001-05-10", nil)
		now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
		req = req.WithContext(requestcontext.WithTime(req.Context(), now))
		w := serve(r, req)
		require.Equal(t, http.StatusOK, w.Code)

		var resp AgeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 25, resp.Age)
	})
}

func TestTransliterateEndpoint(t *testing.T) {
	r := newToolsRouter(t)

	testutil.Given(t, "roman text", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/transliterate", TransliterateRequest{Text: "ram"})

		testutil.When(t, "it is posted", func(t *testing.T) {
			w := testutil.DoRequest(r, req)

			testutil.Then(t, "the devanagari form is returned", func(t *testing.T) {
				require.Equal(t, http.StatusOK, w.Code)
				resp := testutil.DecodeJSON[TransliterateResponse](t, w)
				assert.Equal(t, TransliterateResponse{Text: "ram", Converted: "रम्"}, resp)
			})
		})
	})

	testutil.Given(t, "a malformed body", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodPost, "/transliterate", strings.NewReader(`{"text":`)))

		testutil.Then(t, "it is a bad request", func(t *testing.T) {
			testutil.AssertStatusAndError(t, w, http.StatusBadRequest, "bad_request")
		})
	})
}
