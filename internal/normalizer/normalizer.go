// Package normalizer turns raw model output into a validated invoice record.
// The model is instructed to return bare JSON but commonly wraps it in
// markdown fencing, so cleaning happens as a textual pre-step before parsing.
package normalizer

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"invex/internal/domain"
)

// StripCodeFence removes an optional leading code-fence marker (with optional
// language tag) and an optional trailing fence marker, trimming surrounding
// whitespace. Pure and total: already-clean input comes back unchanged apart
// from trimming.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = s[3:]
		// Drop the language tag directly after the opening fence, if any
		i := 0
		for i < len(s) && isTagChar(s[i]) {
			i++
		}
		s = s[i:]
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func isTagChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// Normalize cleans and parses raw model text into an InvoiceRecord. All ten
// scalar keys are present in the result (missing ones become "N/A") and
// LineItems is always non-nil. Text that is not a JSON object after cleaning
// yields a *domain.MalformedResponseError carrying the raw input.
func Normalize(text string) (*domain.InvoiceRecord, error) {
	cleaned := StripCodeFence(text)

	dec := json.NewDecoder(strings.NewReader(cleaned))
	dec.UseNumber()

	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, &domain.MalformedResponseError{
			RawText: text,
			Err:     fmt.Errorf("parsing model output as JSON object: %w", err),
		}
	}
	// Decode accepts the literal null without error, leaving the map nil
	if raw == nil {
		return nil, &domain.MalformedResponseError{
			RawText: text,
			Err:     fmt.Errorf("model output is JSON null, not an object"),
		}
	}
	// Decode stops after the first value; anything left over means the model
	// appended commentary around the object
	if dec.More() {
		return nil, &domain.MalformedResponseError{
			RawText: text,
			Err:     fmt.Errorf("unexpected trailing data after JSON object"),
		}
	}

	record := &domain.InvoiceRecord{
		InvoiceID:       scalar(raw, "invoice_id"),
		InvoiceDate:     scalar(raw, "invoice_date"),
		DueDate:         scalar(raw, "due_date"),
		SellerName:      scalar(raw, "seller_name"),
		SellerAddress:   scalar(raw, "seller_address"),
		CustomerName:    scalar(raw, "customer_name"),
		CustomerAddress: scalar(raw, "customer_address"),
		Subtotal:        scalar(raw, "subtotal"),
		TotalTax:        scalar(raw, "total_tax"),
		TotalAmount:     scalar(raw, "total_amount"),
		LineItems:       lineItems(raw["line_items"]),
	}

	return record, nil
}

// scalar coerces a top-level field to its string form. Missing keys, nulls,
// and unrepresentable values become the "N/A" sentinel, never an invented
// value.
func scalar(m map[string]interface{}, key string) string {
	v, ok := m[key]
	if !ok {
		return domain.NotAvailable
	}
	return coerce(v)
}

func coerce(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return domain.NotAvailable
	}
}

// lineItems coerces the line_items value into a non-nil slice. Missing, null,
// or non-array values yield an empty slice; entries that are not objects get
// all four keys set to "N/A".
func lineItems(v interface{}) []domain.LineItem {
	entries, ok := v.([]interface{})
	if !ok {
		return []domain.LineItem{}
	}

	items := make([]domain.LineItem, 0, len(entries))
	for _, entry := range entries {
		obj, _ := entry.(map[string]interface{})
		items = append(items, domain.LineItem{
			Description: scalar(obj, "description"),
			Quantity:    scalar(obj, "quantity"),
			UnitPrice:   scalar(obj, "unit_price"),
			LineTotal:   scalar(obj, "line_total"),
		})
	}
	return items
}
