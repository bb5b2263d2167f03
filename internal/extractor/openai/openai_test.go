package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invex/internal/config"
	"invex/internal/domain"
	"invex/internal/extractor/openai"
	"invex/internal/port"
)

func newTestClient(serverURL string) *openai.Client {
	cfg := &config.ExtractorConfig{
		Provider:     "openai",
		APIKey:       "test-openai-key",
		DefaultModel: "gpt-4o",
		TimeoutSecs:  30,
	}
	return openai.NewClientWithEndpoint(cfg, serverURL)
}

func TestExtract_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-openai-key", r.Header.Get("Authorization"))

		var reqBody map[string]interface{}
		err := json.NewDecoder(r.Body).Decode(&reqBody)
		assert.NoError(t, err)
		assert.Equal(t, "gpt-4o", reqBody["model"])

		messages := reqBody["messages"].([]interface{})
		assert.Len(t, messages, 1)
		content := messages[0].(map[string]interface{})["content"].([]interface{})
		assert.Len(t, content, 3)

		textBlock := content[0].(map[string]interface{})
		assert.Equal(t, "text", textBlock["type"])
		assert.Equal(t, "extract this invoice", textBlock["text"])

		imageBlock := content[1].(map[string]interface{})
		assert.Equal(t, "image_url", imageBlock["type"])
		url := imageBlock["image_url"].(map[string]interface{})["url"].(string)
		assert.True(t, strings.HasPrefix(url, "data:image/jpeg;base64,"))

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{
					"message":       map[string]interface{}{"content": `{"invoice_id": "INV-1"}`},
					"finish_reason": "stop",
				},
			},
			"usage": map[string]interface{}{
				"prompt_tokens":     900,
				"completion_tokens": 120,
				"total_tokens":      1020,
			},
		})
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	out, err := c.Extract(context.Background(), port.ExtractInput{
		Prompt: "extract this invoice",
		Pages: []domain.PageImage{
			{PageNumber: 1, MediaType: "image/jpeg", Data: []byte("page-one")},
			{PageNumber: 2, MediaType: "image/jpeg", Data: []byte("page-two")},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, `{"invoice_id": "INV-1"}`, out.Text)
	assert.Equal(t, "gpt-4o", out.Model)
	assert.Equal(t, domain.Usage{PromptTokens: 900, CompletionTokens: 120, TotalTokens: 1020}, out.Usage)
}

func TestExtract_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "rate limit exceeded"}}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	out, err := c.Extract(context.Background(), port.ExtractInput{
		Prompt: "p",
		Pages:  []domain.PageImage{{PageNumber: 1, MediaType: "image/jpeg", Data: []byte("x")}},
	})

	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrExtractionService)
}

func TestExtract_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	out, err := c.Extract(context.Background(), port.ExtractInput{
		Prompt: "p",
		Pages:  []domain.PageImage{{PageNumber: 1, MediaType: "image/jpeg", Data: []byte("x")}},
	})

	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrExtractionService)
}
