package triage

import (
	"regexp"
	"strings"
)

const (
	deflectionSentence = "I recommend consulting with a healthcare professional for an accurate assessment."
	monitoringSentence = "I recommend monitoring your symptoms and seeking medical attention if they worsen"
	disclaimerMarker   = "consult a healthcare professional"
	disclaimerSentence = " Please consult with a healthcare professional for proper medical advice."
)

// Sanitizer normalizes AI-generated text for medical safety: diagnostic
// assertions and false reassurance are replaced, and a consultation
// disclaimer is guaranteed to be present.
type Sanitizer struct {
	diagnostic  *regexp.Regexp
	reassurance *regexp.Regexp
}

func NewSanitizer() *Sanitizer {
	return &Sanitizer{
		diagnostic:  regexp.MustCompile(`(?i)\b(I diagnose|you have|you've got|it's definitely)\b.*?\.`),
		reassurance: regexp.MustCompile(`(?i)\b(don't worry|it's nothing|you'll be fine)\b`),
	}
}

// Sanitize is total and deterministic. The output never contains a
// diagnostic-assertion or false-reassurance phrase and always carries a
// professional-consultation disclaimer.
func (s *Sanitizer) Sanitize(text string) string {
	out := s.diagnostic.ReplaceAllString(text, deflectionSentence)
	out = s.reassurance.ReplaceAllString(out, monitoringSentence)

	if !strings.Contains(strings.ToLower(out), disclaimerMarker) {
		out += disclaimerSentence
	}
	return out
}
