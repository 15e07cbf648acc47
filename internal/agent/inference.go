package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// InferenceClient talks to a locally hosted classifier service over HTTP.
// The service exposes a single classify endpoint returning a triage level
// and confidence for the given text.
type InferenceClient struct {
	url        string
	httpClient *http.Client
}

func NewInferenceClient(url string, timeout time.Duration) *InferenceClient {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &InferenceClient{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type classifyRequest struct {
	Text string `json:"text"`
}

type classifyResponse struct {
	Level      string  `json:"level"`
	Confidence float64 `json:"confidence"`
}

func (c *InferenceClient) Classify(ctx context.Context, text string) (string, float64, error) {
	jsonBody, err := json.Marshal(classifyRequest{Text: text})
	if err != nil {
		return "", 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("failed to call inference service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", 0, fmt.Errorf("inference service error: %s - %s", resp.Status, string(respBody))
	}

	var result classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", 0, err
	}

	return result.Level, result.Confidence, nil
}
