package triage

import (
	"context"
	"strings"

	"github.com/lucylow/medical-triage-ai-vision/internal/session"
)

// RuleBasedTier wraps the ScoringModel with fixed per-level response
// templates. It is total: it can never signal unavailability or failure,
// which guarantees the escalation chain always terminates. Its templates
// already direct the patient to professional care, so no sanitizer runs here.
type RuleBasedTier struct {
	model *ScoringModel
}

func NewRuleBasedTier(model *ScoringModel) *RuleBasedTier {
	if model == nil {
		model = NewScoringModel()
	}
	return &RuleBasedTier{model: model}
}

func (t *RuleBasedTier) Name() string { return "rule_based" }

func (t *RuleBasedTier) Assess(_ context.Context, symptoms string, _ []session.Turn) (*Result, error) {
	level, confidence := t.model.Score(symptoms)

	parts := []string{levelTemplate(level)}
	if guidance := specificGuidance(symptoms); guidance != "" {
		parts = append(parts, guidance)
	}
	parts = append(parts, followUpQuestions(symptoms))

	return &Result{
		Level:           level,
		Confidence:      confidence,
		Summary:         strings.Join(parts, " "),
		Recommendations: levelRecommendations(level),
		NextSteps:       levelNextSteps(level),
		RiskFactors:     levelRiskFactors(level),
	}, nil
}

func levelTemplate(level Level) string {
	switch level {
	case LevelEmergency:
		return "Based on your symptoms, this appears to be a medical emergency. Please seek immediate care at the nearest emergency room or call 911."
	case LevelUrgent:
		return "Your symptoms suggest you should visit an urgent care center within the next 24 hours."
	case LevelRoutine:
		return "Based on your symptoms, you should schedule an appointment with your primary care provider."
	default:
		return "Based on your symptoms, I recommend consulting with a healthcare professional."
	}
}

func levelRecommendations(level Level) []string {
	switch level {
	case LevelEmergency:
		return []string{"Call 911 immediately", "Go to nearest emergency room"}
	case LevelUrgent:
		return []string{"Seek medical attention today", "Avoid delaying care"}
	case LevelRoutine:
		return []string{"Schedule appointment with healthcare provider"}
	default:
		return []string{"Consult with healthcare provider"}
	}
}

func levelNextSteps(level Level) []string {
	switch level {
	case LevelEmergency:
		return []string{"Follow emergency personnel instructions", "Bring medical history if possible"}
	case LevelUrgent:
		return []string{"Contact urgent care or emergency department", "Monitor symptoms closely"}
	case LevelRoutine:
		return []string{"Monitor symptoms", "Follow up if symptoms worsen"}
	default:
		return []string{"Schedule appointment", "Monitor symptoms"}
	}
}

func levelRiskFactors(level Level) []string {
	switch level {
	case LevelEmergency:
		return []string{"Life-threatening symptoms detected"}
	case LevelUrgent:
		return []string{"Moderate to severe symptoms"}
	case LevelRoutine:
		return []string{"Mild symptoms"}
	default:
		return []string{"Symptoms unclear"}
	}
}

// specificGuidance adds domain guidance when a recognized symptom term is
// present; empty otherwise.
func specificGuidance(symptoms string) string {
	lower := strings.ToLower(symptoms)

	switch {
	case strings.Contains(lower, "chest pain"):
		return "Chest pain can be serious, especially if it radiates to your arm, neck, or jaw, or is accompanied by shortness of breath, nausea, or sweating."
	case strings.Contains(lower, "abdominal pain"):
		return "Abdominal pain can indicate various conditions. Severe, sudden pain or pain with fever requires immediate attention."
	case strings.Contains(lower, "headache"):
		return "Most headaches are not serious, but sudden severe headaches or headaches with confusion require immediate medical attention."
	case strings.Contains(lower, "difficulty breathing"):
		return "Difficulty breathing is a medical emergency. Please seek immediate care."
	}
	return ""
}

func followUpQuestions(symptoms string) string {
	lower := strings.ToLower(symptoms)

	switch {
	case strings.Contains(lower, "pain"):
		return "Can you rate your pain on a scale of 1-10? When did the pain start? Is it constant or intermittent?"
	case strings.Contains(lower, "fever"):
		return "What is your temperature? How long have you had the fever? Are you experiencing any other symptoms?"
	case strings.Contains(lower, "nausea"):
		return "Are you vomiting? When did the nausea start? Are you able to keep fluids down?"
	}
	return "Can you tell me more about your symptoms? How long have you been experiencing them?"
}
