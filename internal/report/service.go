package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/signintech/gopdf"

	"github.com/lucylow/medical-triage-ai-vision/internal/triage"
)

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// RenderTriagePDF produces a printable summary of a triage assessment.
func (s *Service) RenderTriagePDF(result triage.Result, sessionID string) ([]byte, error) {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	// Try multiple common font paths for Alpine/Debian images
	fontPaths := []string{
		"/usr/share/fonts/ttf-dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	}

	var fontErr error
	fontLoaded := false
	for _, path := range fontPaths {
		if err := pdf.AddTTFFont("DejaVu", path); err == nil {
			fontLoaded = true
			break
		} else {
			fontErr = err
		}
	}
	if !fontLoaded {
		return nil, fmt.Errorf("failed to load font for PDF. Please ensure ttf-dejavu is installed. Last error: %w", fontErr)
	}

	if err := pdf.SetFont("DejaVu", "", 20); err != nil {
		return nil, err
	}

	// Header
	pdf.Cell(nil, "Triage Assessment Summary")
	pdf.Br(30)

	if err := pdf.SetFont("DejaVu", "", 12); err != nil {
		return nil, err
	}
	pdf.Cell(nil, fmt.Sprintf("Date: %s", time.Now().Format("01/02/2006 15:04")))
	pdf.Br(15)
	pdf.Cell(nil, fmt.Sprintf("Session: %s", sessionID))
	pdf.Br(15)
	pdf.Cell(nil, fmt.Sprintf("Urgency level: %s", strings.ToUpper(string(result.Level))))
	pdf.Br(15)
	pdf.Cell(nil, fmt.Sprintf("Confidence: %.0f%%", result.Confidence*100))
	pdf.Br(25)

	if err := s.writeSection(&pdf, "Assessment", []string{result.Summary}); err != nil {
		return nil, err
	}
	if err := s.writeSection(&pdf, "Recommendations", result.Recommendations); err != nil {
		return nil, err
	}
	if err := s.writeSection(&pdf, "Next steps", result.NextSteps); err != nil {
		return nil, err
	}
	if len(result.RiskFactors) > 0 {
		if err := s.writeSection(&pdf, "Risk factors", result.RiskFactors); err != nil {
			return nil, err
		}
	}
	if result.ImageAnalysis != "" {
		if err := s.writeSection(&pdf, "Image analysis", []string{result.ImageAnalysis}); err != nil {
			return nil, err
		}
	}

	// Footer
	pdf.SetY(270)
	if err := pdf.SetFont("DejaVu", "", 9); err != nil {
		return nil, err
	}
	pdf.Cell(nil, "This summary is not a diagnosis. Consult a healthcare professional for medical advice.")

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Service) writeSection(pdf *gopdf.GoPdf, title string, items []string) error {
	if err := pdf.SetFont("DejaVu", "", 14); err != nil {
		return err
	}
	pdf.Cell(nil, title+":")
	pdf.Br(15)

	if err := pdf.SetFont("DejaVu", "", 11); err != nil {
		return err
	}
	if len(items) == 0 {
		pdf.Cell(nil, "- None recorded.")
		pdf.Br(15)
		return nil
	}
	for _, item := range items {
		lines, _ := pdf.SplitText("- "+item, 500)
		for _, l := range lines {
			pdf.Cell(nil, l)
			pdf.Br(12)
		}
		pdf.Br(5)
	}
	pdf.Br(10)
	return nil
}
