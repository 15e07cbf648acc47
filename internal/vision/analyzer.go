package vision

import (
	"bytes"
	"encoding/base64"
	"image"
	"math"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

const (
	unreadableMessage  = "Unable to analyze image. Please provide a clear photo of the affected area."
	darkMessage        = "Image appears dark. Please ensure proper lighting for accurate assessment."
	lowContrastMessage = "Image has low contrast. Please take photo in better lighting conditions."
	suitableMessage    = "Image quality appears suitable for analysis. Visible area shows clear focus on symptoms."

	minBrightness = 100.0
	minContrast   = 30.0
)

// Analyzer screens uploaded symptom photos for basic quality before they are
// folded into the assessment input. It is total: any decode problem yields
// guidance text instead of an error.
type Analyzer struct{}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze accepts base64 image data, with or without a data-URL prefix, and
// returns an observation about the image.
func (a *Analyzer) Analyze(imageData string) string {
	payload := imageData
	if i := strings.Index(payload, ","); i >= 0 {
		payload = payload[i+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return unreadableMessage
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return unreadableMessage
	}

	brightness, contrast := luminanceStats(img)
	switch {
	case brightness < minBrightness:
		return darkMessage
	case contrast < minContrast:
		return lowContrastMessage
	default:
		return suitableMessage
	}
}

// luminanceStats returns mean and standard deviation of per-pixel luminance
// on the 0-255 scale.
func luminanceStats(img image.Image) (mean, stddev float64) {
	bounds := img.Bounds()
	count := float64(bounds.Dx() * bounds.Dy())
	if count == 0 {
		return 0, 0
	}

	var sum, sumSquares float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			lum := (float64(r) + float64(g) + float64(b)) / 3 / 257
			sum += lum
			sumSquares += lum * lum
		}
	}

	mean = sum / count
	variance := sumSquares/count - mean*mean
	if variance < 0 {
		variance = 0
	}
	return mean, math.Sqrt(variance)
}
