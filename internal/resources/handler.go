package resources

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	matcher *Matcher
}

func NewHandler(matcher *Matcher) *Handler {
	return &Handler{matcher: matcher}
}

// HandleFindResources serves facility search by location and triage level.
func (h *Handler) HandleFindResources(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat, latErr := strconv.ParseFloat(q.Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(q.Get("lng"), 64)
	if latErr != nil || lngErr != nil {
		writeError(w, http.StatusBadRequest, "Latitude and longitude are required")
		return
	}

	level := q.Get("level")
	if level == "" {
		level = "routine"
	}

	maxDistance := DefaultMaxDistance
	if raw := q.Get("distance"); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
			maxDistance = parsed
		}
	}

	origin := Coordinates{Lat: lat, Lng: lng}
	matched := h.matcher.Find(r.Context(), origin, level, maxDistance)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":       "success",
		"resources":    matched,
		"count":        len(matched),
		"location":     origin,
		"triage_level": level,
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
	r.Get("/resources", h.HandleFindResources)
}
