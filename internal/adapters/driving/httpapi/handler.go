// Package httpapi serves the guidance engine over HTTP with a chi router.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
	"github.com/custodia-labs/sahaaya/internal/core/ports/driving"
	"github.com/custodia-labs/sahaaya/internal/logger"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 64 << 10

// Handler holds the services behind the HTTP routes.
// Emergency and History are optional; their routes answer 503 without them.
type Handler struct {
	guidance  driving.GuidanceService
	emergency driving.EmergencyService
	history   driving.HistoryService
}

// NewHandler creates a handler.
func NewHandler(
	guidance driving.GuidanceService,
	emergency driving.EmergencyService,
	history driving.HistoryService,
) *Handler {
	return &Handler{guidance: guidance, emergency: emergency, history: history}
}

// EvaluateRequest is the body of POST /api/evaluate.
type EvaluateRequest struct {
	Text     string `json:"text"`
	Language string `json:"language,omitempty"`
}

// EvaluateResponse is a guidance result plus the matching protocol for emergencies.
type EvaluateResponse struct {
	*domain.GuidanceResult
	Protocol *domain.EmergencyProtocol `json:"protocol,omitempty"`
}

// VitalsRequest is the body of POST /api/vitals.
type VitalsRequest struct {
	domain.VitalSigns
	AgeGroup domain.AgeGroup `json:"age_group,omitempty"`
}

// RegisterRoutes mounts the API routes on r.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/evaluate", h.Evaluate)
	r.Get("/resources", h.Resources)
	r.Get("/contacts", h.Contacts)
	r.Get("/protocols", h.Protocols)
	r.Get("/protocols/{type}", h.Protocol)
	r.Get("/hotlines", h.Hotlines)
	r.Post("/vitals", h.Vitals)
	r.Get("/history", h.History)
}

// Evaluate handles POST /api/evaluate.
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	result, err := h.guidance.Evaluate(r.Context(), req.Text, req.Language)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrConfiguration) {
			status = http.StatusServiceUnavailable
		}
		logger.Error("evaluate: %v", err)
		writeError(w, status, err.Error())
		return
	}

	resp := EvaluateResponse{GuidanceResult: result}
	if result.IsEmergency && h.emergency != nil {
		protocol := h.emergency.ProtocolFor(r.Context(), result.EmergencyTypes)
		resp.Protocol = &protocol
	}
	writeJSON(w, http.StatusOK, resp)
}

// Resources handles GET /api/resources?region=&emergency=&limit=.
func (h *Handler) Resources(w http.ResponseWriter, r *http.Request) {
	if h.emergency == nil {
		writeError(w, http.StatusServiceUnavailable, "emergency service not configured")
		return
	}

	q := r.URL.Query()
	query := domain.ResourceQuery{Region: q.Get("region")}
	if v := q.Get("emergency"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "emergency must be a boolean")
			return
		}
		query.EmergencyOnly = b
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		query.Limit = n
	}

	resources, err := h.emergency.Resources(r.Context(), query)
	if err != nil {
		logger.Warn("resources: %v", err)
		writeError(w, http.StatusServiceUnavailable, "resource lookup unavailable")
		return
	}
	writeJSON(w, http.StatusOK, resources)
}

// Contacts handles GET /api/contacts?region=.
func (h *Handler) Contacts(w http.ResponseWriter, r *http.Request) {
	if h.emergency == nil {
		writeJSON(w, http.StatusOK, domain.HotlineContacts())
		return
	}
	writeJSON(w, http.StatusOK, h.emergency.Contacts(r.Context(), r.URL.Query().Get("region")))
}

// Protocol handles GET /api/protocols/{type}.
func (h *Handler) Protocol(w http.ResponseWriter, r *http.Request) {
	if h.emergency == nil {
		writeJSON(w, http.StatusOK, domain.GenericProtocol())
		return
	}
	writeJSON(w, http.StatusOK, h.emergency.Protocol(r.Context(), chi.URLParam(r, "type")))
}

// Protocols handles GET /api/protocols.
func (h *Handler) Protocols(w http.ResponseWriter, r *http.Request) {
	if h.emergency == nil {
		writeJSON(w, http.StatusOK, []domain.EmergencyProtocol{})
		return
	}
	protocols, err := h.emergency.Protocols(r.Context())
	if err != nil {
		logger.Warn("protocols: %v", err)
		writeError(w, http.StatusServiceUnavailable, "protocol lookup unavailable")
		return
	}
	writeJSON(w, http.StatusOK, protocols)
}

// Hotlines handles GET /api/hotlines.
func (h *Handler) Hotlines(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, domain.Hotlines())
}

// Vitals handles POST /api/vitals.
func (h *Handler) Vitals(w http.ResponseWriter, r *http.Request) {
	if h.emergency == nil {
		writeError(w, http.StatusServiceUnavailable, "emergency service not configured")
		return
	}
	var req VitalsRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	writeJSON(w, http.StatusOK, h.emergency.AssessVitals(req.VitalSigns, req.AgeGroup))
}

// History handles GET /api/history?limit=.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		writeError(w, http.StatusServiceUnavailable, "history not configured")
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}
	entries, err := h.history.Recent(r.Context(), limit)
	if err != nil {
		logger.Warn("history: %v", err)
		writeError(w, http.StatusServiceUnavailable, "history unavailable")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
