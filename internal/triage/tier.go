package triage

import (
	"context"
	"errors"

	"github.com/lucylow/medical-triage-ai-vision/internal/session"
)

// Standard errors for assessment tiers.
var (
	// ErrTierUnavailable means the capability is not configured or reachable;
	// the engine escalates without treating the request as degraded.
	ErrTierUnavailable = errors.New("assessment capability not configured")

	// ErrTierFailed means a configured capability errored or returned a
	// malformed payload; the engine escalates and may log it.
	ErrTierFailed = errors.New("assessment capability failed")
)

// Tier is one assessment capability in the escalation chain. A tier either
// returns a fully normalized Result or signals unavailability/failure through
// ErrTierUnavailable/ErrTierFailed. A tier is never retried within a request.
type Tier interface {
	Name() string
	Assess(ctx context.Context, symptoms string, history []session.Turn) (*Result, error)
}
