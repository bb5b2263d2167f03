package openai

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
	apiURL = "https://api.openai.com/v1/chat/completions"
)

// Client implements port.Extractor using the OpenAI Chat Completions API.
type Client struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewClient creates an OpenAI-based extractor.
func NewClient(cfg *config.ExtractorConfig) *Client {
	return newClient(cfg, apiURL)
}

// NewClientWithEndpoint creates a client pointing at a custom API endpoint (for testing).
func NewClientWithEndpoint(cfg *config.ExtractorConfig, endpoint string) *Client {
	return newClient(cfg, endpoint)
}

func newClient(cfg *config.ExtractorConfig, endpoint string) *Client {
	model := cfg.DefaultModel
	if model == "" {
		model = "gpt-4o"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Extract sends the prompt followed by all page images in a single chat
// completion call and returns the raw text with usage counters.
func (c *Client) Extract(ctx context.Context, input port.ExtractInput) (*port.ExtractOutput, error) {
	blocks := make([]map[string]interface{}, 0, len(input.Pages)+1)
	blocks = append(blocks, map[string]interface{}{
		"type": "text",
		"text": input.Prompt,
	})
	for _, page := range input.Pages {
		dataURI := fmt.Sprintf("data:%s;base64,%s", page.MediaType, base64.StdEncoding.EncodeToString(page.Data))
		blocks = append(blocks, map[string]interface{}{
			"type": "image_url",
			"image_url": map[string]interface{}{
				"url": dataURI,
			},
		})
	}

	reqBody := map[string]interface{}{
		"model":                 c.model,
		"max_completion_tokens": 16384,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": blocks,
			},
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
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: calling openai API: %v", domain.ErrExtractionService, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", domain.ErrExtractionService, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: openai API error (status %d): %s", domain.ErrExtractionService, resp.StatusCode, string(respBody))
	}

	return parseResponse(respBody, c.model)
}

// apiResponse models the Chat Completions API response.
type apiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

func parseResponse(body []byte, model string) (*port.ExtractOutput, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: unmarshaling response: %v", domain.ErrExtractionService, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty response from API: no choices", domain.ErrExtractionService)
	}

	return &port.ExtractOutput{
		Text:  resp.Choices[0].Message.Content,
		Model: model,
		Usage: domain.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

var _ port.Extractor = (*Client)(nil)
