package triage

import (
	"regexp"
	"strings"
)

var (
	apostrophes = regexp.MustCompile(`'`)
	nonWord     = regexp.MustCompile(`[^a-z0-9\s]`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// NormalizeSymptoms lower-cases the text, drops apostrophes, replaces any
// other punctuation with spaces and collapses whitespace.
func NormalizeSymptoms(text string) string {
	t := strings.ToLower(text)
	t = apostrophes.ReplaceAllString(t, "")
	t = nonWord.ReplaceAllString(t, " ")
	return strings.TrimSpace(whitespace.ReplaceAllString(t, " "))
}

// ScoringModel classifies symptom text by weighted keyword matching. The
// keyword sets and weights are heuristic policy, not a validated clinical
// rule, and are exposed as fields so they can be tuned.
type ScoringModel struct {
	EmergencyKeywords []string
	UrgentKeywords    []string
	RoutineKeywords   []string

	EmergencyWeight int
	UrgentWeight    int
	RoutineWeight   int

	// Phrase bonuses apply once each, on top of keyword scores.
	BreathingPhrases []string
	SeverePhrases    []string
	BreathingBonus   int
	SevereBonus      int
}

func NewScoringModel() *ScoringModel {
	return &ScoringModel{
		EmergencyKeywords: []string{
			"chest pain", "difficulty breathing", "severe bleeding",
			"stroke", "unconscious", "severe head injury", "heart attack",
			"suicidal", "choking", "severe burn", "poisoning",
			"severe allergic reaction", "anaphylaxis", "seizure",
		},
		UrgentKeywords: []string{
			"fever with rash", "broken bone", "deep cut", "high fever",
			"severe pain", "vomiting blood", "dehydration", "abdominal pain",
			"asthma attack", "urinary tract infection", "migraine",
		},
		RoutineKeywords: []string{
			"cold symptoms", "mild fever", "rash", "headache", "back pain",
			"sprain", "cough", "sore throat", "allergies", "ear pain",
		},
		EmergencyWeight: 3,
		UrgentWeight:    2,
		RoutineWeight:   1,

		BreathingPhrases: []string{"cant breathe", "difficulty breathing", "choking"},
		SeverePhrases:    []string{"sharp pain", "severe pain", "unbearable pain"},
		BreathingBonus:   5,
		SevereBonus:      3,
	}
}

// Score is total and deterministic: every input yields a level and a
// confidence in [0,1]. All three keyword sets are scanned independently; a
// match in one set does not suppress matches in another. Ties at a non-zero
// score break by priority order emergency > urgent > routine. When no keyword
// matches at all the result is routine with confidence 0.5.
func (m *ScoringModel) Score(text string) (Level, float64) {
	t := NormalizeSymptoms(text)

	emergency := countMatches(t, m.EmergencyKeywords) * m.EmergencyWeight
	urgent := countMatches(t, m.UrgentKeywords) * m.UrgentWeight
	routine := countMatches(t, m.RoutineKeywords) * m.RoutineWeight

	if containsAny(t, m.BreathingPhrases) {
		emergency += m.BreathingBonus
	}
	if containsAny(t, m.SeverePhrases) {
		emergency += m.SevereBonus
	}

	total := emergency + urgent + routine
	if total == 0 {
		return LevelRoutine, 0.5
	}

	level, best := LevelEmergency, emergency
	if urgent > best {
		level, best = LevelUrgent, urgent
	}
	if routine > best {
		level, best = LevelRoutine, routine
	}

	return level, float64(best) / float64(total)
}

func countMatches(text string, keywords []string) int {
	matches := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			matches++
		}
	}
	return matches
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}
