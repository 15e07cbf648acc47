package triage

import (
	"errors"
	"fmt"
	"strings"
)

// Level is the urgency classification assigned to a symptom report.
type Level string

const (
	LevelEmergency Level = "emergency"
	LevelUrgent    Level = "urgent"
	LevelRoutine   Level = "routine"
	LevelSelfCare  Level = "self_care"
)

// ErrEmptyInput is returned when the symptom text is empty after trimming.
// It is the only engine error callers are expected to correct.
var ErrEmptyInput = errors.New("text input is required")

// Valid reports whether l is one of the four recognized levels.
func (l Level) Valid() bool {
	switch l {
	case LevelEmergency, LevelUrgent, LevelRoutine, LevelSelfCare:
		return true
	}
	return false
}

// ParseLevel converts a wire string into a Level.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", fmt.Errorf("unknown triage level %q", s)
	}
	return l, nil
}

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Request is a symptom report submitted for assessment.
type Request struct {
	UserID    string    `json:"user_id"`
	SessionID string    `json:"session_id"`
	TextInput string    `json:"text_input"`
	ImageData string    `json:"image_data,omitempty"` // base64, optionally a data URL
	Location  *Location `json:"location,omitempty"`
	Timestamp string    `json:"timestamp,omitempty"`
}

func (r *Request) Validate() error {
	if strings.TrimSpace(r.TextInput) == "" {
		return ErrEmptyInput
	}
	return nil
}

// Result is the normalized outcome of a triage assessment. The engine always
// produces one: level is always a valid Level and confidence is always set.
type Result struct {
	Level           Level    `json:"level"`
	Confidence      float64  `json:"confidence"`
	Summary         string   `json:"summary"`
	Recommendations []string `json:"recommendations"`
	NextSteps       []string `json:"next_steps"`
	ImageAnalysis   string   `json:"image_analysis,omitempty"`
	RiskFactors     []string `json:"risk_factors"`
	ProcessingTime  float64  `json:"processing_time"`
}

func (r *Result) Validate() error {
	if !r.Level.Valid() {
		return fmt.Errorf("unknown triage level %q", r.Level)
	}
	if r.Confidence < 0.0 || r.Confidence > 1.0 {
		return fmt.Errorf("confidence %v out of range [0,1]", r.Confidence)
	}
	return nil
}

// SafeDefaultResult is the defined fallback when assessment cannot complete.
func SafeDefaultResult() *Result {
	return &Result{
		Level:           LevelRoutine,
		Confidence:      0.5,
		Summary:         "Unable to complete analysis. Please consult a healthcare provider.",
		Recommendations: []string{"Seek professional medical advice"},
		NextSteps:       []string{"Contact your primary care physician"},
		RiskFactors:     []string{},
	}
}
