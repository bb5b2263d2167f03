package extractor

import "fmt"

// PromptPolicy selects between the two historical prompt behaviors: later
// deployments keep numeric values and dates untranslated, earlier ones
// translated every field.
type PromptPolicy struct {
	TargetLanguage   string
	PreserveNumerics bool
}

// DefaultPromptPolicy matches the current deployment: translate text to
// English, leave numbers alone, normalize dates.
func DefaultPromptPolicy() PromptPolicy {
	return PromptPolicy{TargetLanguage: "English", PreserveNumerics: true}
}

// BuildInvoicePrompt returns the fixed instruction text sent with every
// extraction. Static per deployment; the only variation is the policy.
func BuildInvoicePrompt(policy PromptPolicy) string {
	lang := policy.TargetLanguage
	if lang == "" {
		lang = "English"
	}

	numericRule := "Do NOT translate numeric values, amounts, or currency symbols. Dates must not be translated either; normalize them to YYYY-MM-DD format where the source date is unambiguous, otherwise keep them as written."
	if !policy.PreserveNumerics {
		numericRule = fmt.Sprintf("Translate and normalize every field, including dates, into %s conventions.", lang)
	}

	return fmt.Sprintf(`You are an expert multilingual data processor specializing in invoices. Your task is to extract key information from the provided invoice pages and render ALL textual output in %[1]s.

The translation requirement is strict: names, addresses, and item descriptions must never be returned in their original language. For example, if the invoice shows a customer address in Chinese, the JSON output for "customer_address" must be the translated and formatted %[1]s version. %[2]s

Extract the following 10 fields:
1.  Invoice ID
2.  Invoice Date
3.  Due Date
4.  Seller Name (the biller, vendor, or company issuing the invoice)
5.  Seller Address
6.  Customer Name
7.  Customer Address
8.  Subtotal
9.  Total Tax
10. Total Amount

In addition, extract every line item. For each line item extract:
- Description (translated to %[1]s)
- Quantity
- Unit Price
- Line Total

If a field is not found in the document, return the literal string "N/A" for its value. Never invent or guess a value.

Return a single JSON object and nothing else, in exactly this structure:
{
  "invoice_id": "value",
  "invoice_date": "value",
  "due_date": "value",
  "seller_name": "value",
  "seller_address": "value",
  "customer_name": "value",
  "customer_address": "value",
  "subtotal": "value",
  "total_tax": "value",
  "total_amount": "value",
  "line_items": [
    {"description": "value", "quantity": "value", "unit_price": "value", "line_total": "value"}
  ]
}`, lang, numericRule)
}
