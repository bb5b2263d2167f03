package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"invex/internal/config"
	"invex/internal/domain"
	"invex/internal/port"
)

const (
	apiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"
)

// Client implements port.Extractor using Google's Gemini API.
type Client struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewClient creates a Gemini-based extractor.
func NewClient(cfg *config.ExtractorConfig) *Client {
	return newClient(cfg, "")
}

// NewClientWithEndpoint creates a client pointing at a custom API endpoint (for testing).
func NewClientWithEndpoint(cfg *config.ExtractorConfig, endpoint string) *Client {
	return newClient(cfg, endpoint)
}

func newClient(cfg *config.ExtractorConfig, endpoint string) *Client {
	model := cfg.DefaultModel
	if model == "" {
		model = "gemini-1.5-flash"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	if endpoint == "" {
		endpoint = fmt.Sprintf("%s/%s:generateContent", apiBaseURL, model)
	}
	return &Client{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Extract sends the prompt followed by all page images to the Gemini API in a
// single call and returns the raw text with usage counters.
func (c *Client) Extract(ctx context.Context, input port.ExtractInput) (*port.ExtractOutput, error) {
	parts := make([]map[string]interface{}, 0, len(input.Pages)+1)
	parts = append(parts, map[string]interface{}{
		"text": input.Prompt,
	})
	for _, page := range input.Pages {
		parts = append(parts, map[string]interface{}{
			"inline_data": map[string]interface{}{
				"mime_type": page.MediaType,
				"data":      base64.StdEncoding.EncodeToString(page.Data),
			},
		})
	}

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"role":  "user",
				"parts": parts,
			},
		},
		"generationConfig": map[string]interface{}{
			"maxOutputTokens": 16384,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: calling gemini API: %v", domain.ErrExtractionService, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", domain.ErrExtractionService, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: gemini API error (status %d): %s", domain.ErrExtractionService, resp.StatusCode, string(respBody))
	}

	return parseResponse(respBody, c.model)
}

// geminiResponse models the Gemini API response.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

func parseResponse(body []byte, model string) (*port.ExtractOutput, error) {
	var resp geminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: unmarshaling response: %v", domain.ErrExtractionService, err)
	}

	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("%w: empty response from API: no candidates", domain.ErrExtractionService)
	}

	if len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: empty response from API: no parts", domain.ErrExtractionService)
	}

	return &port.ExtractOutput{
		Text:  resp.Candidates[0].Content.Parts[0].Text,
		Model: model,
		Usage: domain.Usage{
			PromptTokens:     resp.UsageMetadata.PromptTokenCount,
			CompletionTokens: resp.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      resp.UsageMetadata.TotalTokenCount,
		},
	}, nil
}

var _ port.Extractor = (*Client)(nil)
