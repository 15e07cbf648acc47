package report

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lucylow/medical-triage-ai-vision/internal/triage"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type renderRequest struct {
	SessionID    string        `json:"session_id"`
	TriageResult triage.Result `json:"triage_result"`
}

// HandleRenderReport renders a previously returned triage result as a PDF.
func (h *Handler) HandleRenderReport(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := req.TriageResult.Validate(); err != nil {
		http.Error(w, "Invalid triage result: "+err.Error(), http.StatusBadRequest)
		return
	}

	pdfData, err := h.svc.RenderTriagePDF(req.TriageResult, req.SessionID)
	if err != nil {
		http.Error(w, "Report generation failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Write(pdfData)
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/triage/report", h.HandleRenderReport)
}
