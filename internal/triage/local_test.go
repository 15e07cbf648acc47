package triage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type classifierFunc func(ctx context.Context, text string) (string, float64, error)

func (f classifierFunc) Classify(ctx context.Context, text string) (string, float64, error) {
	return f(ctx, text)
}

func TestLocalTierAbsentCapability(t *testing.T) {
	tier := NewLocalClassifierTier(nil, NewSanitizer())

	_, err := tier.Assess(context.Background(), "chest pain", nil)

	assert.ErrorIs(t, err, ErrTierUnavailable)
}

func TestLocalTierClassifierError(t *testing.T) {
	tier := NewLocalClassifierTier(classifierFunc(func(_ context.Context, _ string) (string, float64, error) {
		return "", 0, errors.New("sidecar unreachable")
	}), NewSanitizer())

	_, err := tier.Assess(context.Background(), "chest pain", nil)

	assert.ErrorIs(t, err, ErrTierFailed)
}

func TestLocalTierRejectsUnknownLevel(t *testing.T) {
	tier := NewLocalClassifierTier(classifierFunc(func(_ context.Context, _ string) (string, float64, error) {
		return "severe", 0.9, nil
	}), NewSanitizer())

	_, err := tier.Assess(context.Background(), "chest pain", nil)

	assert.ErrorIs(t, err, ErrTierFailed)
}

func TestLocalTierRejectsOutOfRangeConfidence(t *testing.T) {
	tier := NewLocalClassifierTier(classifierFunc(func(_ context.Context, _ string) (string, float64, error) {
		return "urgent", 1.2, nil
	}), NewSanitizer())

	_, err := tier.Assess(context.Background(), "chest pain", nil)

	assert.ErrorIs(t, err, ErrTierFailed)
}

func TestLocalTierBuildsTemplatedResponse(t *testing.T) {
	tier := NewLocalClassifierTier(classifierFunc(func(_ context.Context, _ string) (string, float64, error) {
		return "URGENT", 0.77, nil
	}), NewSanitizer())

	result, err := tier.Assess(context.Background(), "sharp chest pain since this morning", nil)

	require.NoError(t, err)
	assert.Equal(t, LevelUrgent, result.Level)
	assert.Equal(t, 0.77, result.Confidence)
	assert.NoError(t, result.Validate())
	assert.NotEmpty(t, result.Summary)
	assert.NotEmpty(t, result.Recommendations)
	assert.NotEmpty(t, result.NextSteps)
}
