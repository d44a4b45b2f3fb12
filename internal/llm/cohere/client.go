package cohere

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ats-backend/internal/llm"
	"ats-backend/internal/shared/telemetry"
)

const apiURL = "https://api.cohere.ai/v1/generate"

// Client implements llm.Client using the Cohere generate API.
type Client struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

// NewClient constructs a new Cohere client. The timeout bounds the whole
// round-trip; there is no retry here, callers decide whether to try again.
func NewClient(apiKey, model string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("COHERE_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("COHERE_MODEL is required")
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		apiKey:   apiKey,
		model:    model,
		endpoint: apiURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type generateRequest struct {
	Model             string   `json:"model"`
	Prompt            string   `json:"prompt"`
	MaxTokens         int      `json:"max_tokens"`
	Temperature       float32  `json:"temperature"`
	K                 int      `json:"k"`
	StopSequences     []string `json:"stop_sequences"`
	ReturnLikelihoods string   `json:"return_likelihoods"`
}

type generateResponse struct {
	ID          string `json:"id"`
	Generations []struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"generations"`
	Message string `json:"message,omitempty"`
}

// Generate sends a single prompt and returns the raw completion text.
func (c *Client) Generate(ctx context.Context, prompt string, params llm.GenerateParams) (string, error) {
	maxTokens := params.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1000
	}
	stops := params.StopSequences
	if stops == nil {
		stops = []string{}
	}

	reqBody := generateRequest{
		Model:             c.model,
		Prompt:            prompt,
		MaxTokens:         maxTokens,
		Temperature:       params.Temperature,
		K:                 0,
		StopSequences:     stops,
		ReturnLikelihoods: "NONE",
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return "", fmt.Errorf("cohere request timeout: %w", err)
		}
		return "", fmt.Errorf("cohere request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("cohere response parse: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := parsed.Message
		if msg == "" {
			msg = strings.TrimSpace(string(body))
		}
		return "", fmt.Errorf("cohere error: http status %d: %s", resp.StatusCode, msg)
	}
	if len(parsed.Generations) == 0 {
		return "", fmt.Errorf("cohere response missing generations")
	}

	text := strings.TrimSpace(parsed.Generations[0].Text)
	if text == "" {
		return "", fmt.Errorf("cohere response empty text")
	}

	telemetry.Info("llm.response", map[string]any{
		"model":       c.model,
		"duration_ms": float64(time.Since(start).Microseconds()) / 1000.0,
		"chars":       len(text),
	})
	return text, nil
}
