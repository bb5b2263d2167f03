package extractor_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"invex/internal/extractor"
)

func TestBuildInvoicePrompt_DefaultPolicy(t *testing.T) {
	prompt := extractor.BuildInvoicePrompt(extractor.DefaultPromptPolicy())

	// All ten scalar keys and the line-item keys appear in the schema block
	for _, key := range []string{
		"invoice_id", "invoice_date", "due_date",
		"seller_name", "seller_address",
		"customer_name", "customer_address",
		"subtotal", "total_tax", "total_amount",
		"line_items", "description", "quantity", "unit_price", "line_total",
	} {
		assert.Contains(t, prompt, `"`+key+`"`)
	}

	assert.Contains(t, prompt, `"N/A"`)
	assert.Contains(t, prompt, "Never invent or guess a value")
	assert.Contains(t, prompt, "English")
	assert.Contains(t, prompt, "Do NOT translate numeric values")
	assert.Contains(t, prompt, "YYYY-MM-DD")
}

func TestBuildInvoicePrompt_TranslateEverything(t *testing.T) {
	prompt := extractor.BuildInvoicePrompt(extractor.PromptPolicy{
		TargetLanguage:   "German",
		PreserveNumerics: false,
	})

	assert.Contains(t, prompt, "German")
	assert.NotContains(t, prompt, "Do NOT translate numeric values")
	assert.Contains(t, prompt, "Translate and normalize every field")
}

func TestBuildInvoicePrompt_EmptyLanguageDefaultsToEnglish(t *testing.T) {
	prompt := extractor.BuildInvoicePrompt(extractor.PromptPolicy{PreserveNumerics: true})
	assert.Contains(t, prompt, "English")
}

func TestBuildInvoicePrompt_IsStable(t *testing.T) {
	policy := extractor.DefaultPromptPolicy()
	first := extractor.BuildInvoicePrompt(policy)
	second := extractor.BuildInvoicePrompt(policy)
	assert.Equal(t, first, second)
	assert.False(t, strings.Contains(first, "%"), "no unexpanded format verbs")
}
