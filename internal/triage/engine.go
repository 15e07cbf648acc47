package triage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lucylow/medical-triage-ai-vision/internal/session"
)

// ImageAnalyzer derives a textual observation from an uploaded image. It is
// total: decode problems come back as guidance text, never as an error.
type ImageAnalyzer interface {
	Analyze(imageData string) string
}

// Engine orchestrates the assessment tiers in priority order and merges the
// outcome with per-session conversation memory. Its contract is "always
// return a usable result": apart from input validation, no failure below it
// surfaces to the caller.
type Engine struct {
	tiers  []Tier
	memory session.Store
	vision ImageAnalyzer
	log    zerolog.Logger
}

func NewEngine(tiers []Tier, memory session.Store, vision ImageAnalyzer, log zerolog.Logger) *Engine {
	return &Engine{
		tiers:  tiers,
		memory: memory,
		vision: vision,
		log:    log,
	}
}

// Analyze runs a triage assessment for one request. Concurrent requests are
// independent; the only shared state is the session memory, which serializes
// per session.
func (e *Engine) Analyze(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	symptoms := strings.TrimSpace(req.TextInput)

	var imageAnalysis string
	if req.ImageData != "" && e.vision != nil {
		imageAnalysis = e.vision.Analyze(req.ImageData)
		symptoms += "\n\nImage Analysis: " + imageAnalysis
	}

	history := e.history(ctx, req.SessionID)
	result := e.assess(ctx, symptoms, history)
	result.ImageAnalysis = imageAnalysis
	result.ProcessingTime = time.Since(start).Seconds()

	e.remember(ctx, req.SessionID, symptoms, result.Summary)

	e.log.Info().
		Str("session_id", req.SessionID).
		Str("level", string(result.Level)).
		Float64("confidence", result.Confidence).
		Float64("processing_time", result.ProcessingTime).
		Msg("triage analysis completed")

	return result, nil
}

// assess walks the tier chain and stops at the first success. The last tier
// is total, so a walk that still produces nothing indicates a programming
// error; the safe default result covers that case.
func (e *Engine) assess(ctx context.Context, symptoms string, history []session.Turn) *Result {
	for _, tier := range e.tiers {
		result, err := e.attempt(ctx, tier, symptoms, history)
		if err == nil {
			return result
		}

		if errors.Is(err, ErrTierUnavailable) {
			e.log.Debug().Str("tier", tier.Name()).Msg("tier unavailable, escalating")
		} else {
			e.log.Warn().Str("tier", tier.Name()).Err(err).Msg("tier failed, escalating")
		}
	}

	e.log.Error().Msg("no assessment tier produced a result, using safe default")
	return SafeDefaultResult()
}

// attempt isolates a single tier call. A panicking tier is treated as failed
// rather than taking down the request.
func (e *Engine) attempt(ctx context.Context, tier Tier, symptoms string, history []session.Turn) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: panic in tier %s: %v", ErrTierFailed, tier.Name(), r)
		}
	}()
	return tier.Assess(ctx, symptoms, history)
}

func (e *Engine) history(ctx context.Context, sessionID string) []session.Turn {
	if e.memory == nil || sessionID == "" {
		return nil
	}
	turns, err := e.memory.History(ctx, sessionID)
	if err != nil {
		e.log.Warn().Err(err).Str("session_id", sessionID).Msg("failed to load conversation history")
		return nil
	}
	return turns
}

// remember appends the patient turn and then the assistant turn. Appends are
// skipped entirely once the request context is done, so an abandoned call
// never leaves a partial history.
func (e *Engine) remember(ctx context.Context, sessionID, patientText, assistantText string) {
	if e.memory == nil || sessionID == "" || ctx.Err() != nil {
		return
	}

	if err := e.memory.Append(ctx, sessionID, session.Turn{Role: session.RolePatient, Content: patientText}); err != nil {
		e.log.Warn().Err(err).Str("session_id", sessionID).Msg("failed to record patient turn")
		return
	}
	if err := e.memory.Append(ctx, sessionID, session.Turn{Role: session.RoleAssistant, Content: assistantText}); err != nil {
		e.log.Warn().Err(err).Str("session_id", sessionID).Msg("failed to record assistant turn")
	}
}
