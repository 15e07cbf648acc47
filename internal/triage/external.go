package triage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lucylow/medical-triage-ai-vision/internal/session"
)

// Assessor is an external AI assessment capability. It takes a system
// instruction and a user prompt and returns the raw model output, expected to
// be a JSON assessment payload.
type Assessor interface {
	Assess(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

const triageSystemPrompt = `You are a medical triage assistant. Your role is to:
1. Assess the urgency level of medical symptoms
2. Provide clear, actionable recommendations
3. NEVER give definitive diagnoses
4. Always err on the side of caution
5. Direct users to appropriate care levels

Respond with a JSON object containing:
- level: one of "emergency", "urgent", "routine", "self_care"
- confidence: float between 0.0 and 1.0
- summary: brief assessment summary
- recommendations: list of immediate actions
- next_steps: list of follow-up actions
- risk_factors: list of concerning factors`

// contextTurns is how many trailing conversation turns are included in the
// prompt sent to the external assessor.
const contextTurns = 5

type assessmentPayload struct {
	Level           string   `json:"level"`
	Confidence      float64  `json:"confidence"`
	Summary         string   `json:"summary"`
	Recommendations []string `json:"recommendations"`
	NextSteps       []string `json:"next_steps"`
	RiskFactors     []string `json:"risk_factors"`
}

// ExternalAITier delegates assessment to a hosted AI capability. The assessor
// handle is decided once at startup: a nil handle marks the capability absent
// and yields ErrTierUnavailable on every attempt. Any transport error,
// timeout, or malformed payload yields ErrTierFailed without retry.
type ExternalAITier struct {
	assessor  Assessor
	sanitizer *Sanitizer
}

func NewExternalAITier(assessor Assessor, sanitizer *Sanitizer) *ExternalAITier {
	if sanitizer == nil {
		sanitizer = NewSanitizer()
	}
	return &ExternalAITier{assessor: assessor, sanitizer: sanitizer}
}

func (t *ExternalAITier) Name() string { return "external_ai" }

func (t *ExternalAITier) Assess(ctx context.Context, symptoms string, history []session.Turn) (*Result, error) {
	if t.assessor == nil {
		return nil, ErrTierUnavailable
	}

	content, err := t.assessor.Assess(ctx, triageSystemPrompt, buildUserPrompt(symptoms, history))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrTierFailed, err)
	}

	var payload assessmentPayload
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &payload); err != nil {
		return nil, fmt.Errorf("%w: malformed assessment payload: %v", ErrTierFailed, err)
	}

	result := &Result{
		Level:           Level(payload.Level),
		Confidence:      payload.Confidence,
		Summary:         t.sanitizer.Sanitize(payload.Summary),
		Recommendations: payload.Recommendations,
		NextSteps:       payload.NextSteps,
		RiskFactors:     payload.RiskFactors,
	}
	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTierFailed, err)
	}
	if result.RiskFactors == nil {
		result.RiskFactors = []string{}
	}
	return result, nil
}

func buildUserPrompt(symptoms string, history []session.Turn) string {
	var b strings.Builder

	if len(history) > contextTurns {
		history = history[len(history)-contextTurns:]
	}
	for _, turn := range history {
		label := "Patient"
		if turn.Role == session.RoleAssistant {
			label = "Assistant"
		}
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(turn.Content)
		b.WriteString("\n")
	}

	b.WriteString("Analyze these symptoms for triage assessment: ")
	b.WriteString(symptoms)
	return b.String()
}
