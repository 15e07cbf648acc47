package triage

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lucylow/medical-triage-ai-vision/internal/resources"
	"github.com/lucylow/medical-triage-ai-vision/internal/session"
)

type Handler struct {
	engine  *Engine
	memory  session.Store
	matcher *resources.Matcher
}

func NewHandler(engine *Engine, memory session.Store, matcher *resources.Matcher) *Handler {
	return &Handler{engine: engine, memory: memory, matcher: matcher}
}

type triageResponse struct {
	Status              string               `json:"status"`
	TriageResult        *Result              `json:"triage_result"`
	HealthcareResources []resources.Resource `json:"healthcare_resources"`
	SessionID           string               `json:"session_id"`
	Timestamp           string               `json:"timestamp"`
}

func (h *Handler) HandleTriage(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if req.SessionID == "" {
		req.SessionID = uuid.New().String()
	}
	if req.UserID == "" {
		req.UserID = "user_" + uuid.New().String()[:8]
	}
	if req.Timestamp == "" {
		req.Timestamp = time.Now().Format(time.RFC3339)
	}

	result, err := h.engine.Analyze(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmptyInput) {
			writeError(w, http.StatusBadRequest, "Text input is required")
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	matched := []resources.Resource{}
	if req.Location != nil {
		origin := resources.Coordinates{Lat: req.Location.Lat, Lng: req.Location.Lng}
		matched = h.matcher.Find(r.Context(), origin, string(result.Level), resources.DefaultMaxDistance)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(triageResponse{
		Status:              "success",
		TriageResult:        result,
		HealthcareResources: matched,
		SessionID:           req.SessionID,
		Timestamp:           req.Timestamp,
	})
}

func (h *Handler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	history, err := h.memory.History(r.Context(), sessionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load session history")
		return
	}
	if history == nil {
		history = []session.Turn{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":     "success",
		"session_id": sessionID,
		"history":    history,
	})
}

func (h *Handler) HandleClearSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if err := h.memory.Clear(r.Context(), sessionID); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to clear session")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "success",
		"message": "Session cleared",
	})
}

func (h *Handler) HandleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":    "healthy",
		"service":   "TRIAGE A.I. API",
		"version":   "1.0.0",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error":  message,
		"status": "error",
	})
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/triage", h.HandleTriage)
	r.Get("/sessions/{sessionID}", h.HandleGetSession)
	r.Delete("/sessions/{sessionID}", h.HandleClearSession)
}
