package triage

import (
	"context"
	"fmt"
	"strings"

	"github.com/lucylow/medical-triage-ai-vision/internal/session"
)

// LocalClassifier is a locally hosted inference capability that maps symptom
// text to a triage level and confidence.
type LocalClassifier interface {
	Classify(ctx context.Context, text string) (level string, confidence float64, err error)
}

// LocalClassifierTier delegates to a local inference service when one is
// configured. The classifier only yields a level; the response text comes
// from the level templates and is sanitized like any generated output. On
// absence or any error the tier escalates.
type LocalClassifierTier struct {
	classifier LocalClassifier
	sanitizer  *Sanitizer
}

func NewLocalClassifierTier(classifier LocalClassifier, sanitizer *Sanitizer) *LocalClassifierTier {
	if sanitizer == nil {
		sanitizer = NewSanitizer()
	}
	return &LocalClassifierTier{classifier: classifier, sanitizer: sanitizer}
}

func (t *LocalClassifierTier) Name() string { return "local_classifier" }

func (t *LocalClassifierTier) Assess(ctx context.Context, symptoms string, _ []session.Turn) (*Result, error) {
	if t.classifier == nil {
		return nil, ErrTierUnavailable
	}

	rawLevel, confidence, err := t.classifier.Classify(ctx, symptoms)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrTierFailed, err)
	}

	level, err := ParseLevel(rawLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTierFailed, err)
	}
	if confidence < 0.0 || confidence > 1.0 {
		return nil, fmt.Errorf("%w: confidence %v out of range [0,1]", ErrTierFailed, confidence)
	}

	parts := []string{levelTemplate(level)}
	if guidance := specificGuidance(symptoms); guidance != "" {
		parts = append(parts, guidance)
	}

	return &Result{
		Level:           level,
		Confidence:      confidence,
		Summary:         t.sanitizer.Sanitize(strings.Join(parts, " ")),
		Recommendations: levelRecommendations(level),
		NextSteps:       levelNextSteps(level),
		RiskFactors:     levelRiskFactors(level),
	}, nil
}
