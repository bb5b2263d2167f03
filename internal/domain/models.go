package domain

// UploadedDocument is the raw upload: bytes plus the declared media type.
// It lives for the duration of one extraction request.
type UploadedDocument struct {
	Filename    string
	ContentType string
	Data        []byte
}

// PageImage is one document page rendered as a bitmap. A PDF yields one
// PageImage per page in document order; a plain image yields exactly one.
type PageImage struct {
	PageNumber int    `json:"page_number"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	MediaType  string `json:"media_type"`
	Data       []byte `json:"-"`
}

// Usage holds the token counters reported by the extraction model for a
// single call. Values are passed through unchanged from the provider.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// NotAvailable is the placeholder for any field the model could not find.
// The prompt forbids fabricated values; this string is the only allowed
// stand-in for missing data.
const NotAvailable = "N/A"

// LineItem is one invoice line. All values are strings as extracted,
// or NotAvailable.
type LineItem struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	LineTotal   string `json:"line_total"`
}

// InvoiceRecord is the normalized extraction result: ten scalar fields plus
// the line items. After normalization every scalar is non-empty (NotAvailable
// at minimum) and LineItems is non-nil. Immutable once built.
type InvoiceRecord struct {
	InvoiceID       string     `json:"invoice_id"`
	InvoiceDate     string     `json:"invoice_date"`
	DueDate         string     `json:"due_date"`
	SellerName      string     `json:"seller_name"`
	SellerAddress   string     `json:"seller_address"`
	CustomerName    string     `json:"customer_name"`
	CustomerAddress string     `json:"customer_address"`
	Subtotal        string     `json:"subtotal"`
	TotalTax        string     `json:"total_tax"`
	TotalAmount     string     `json:"total_amount"`
	LineItems       []LineItem `json:"line_items"`
}

// ScalarField pairs a scalar field's JSON key and display label with its value.
type ScalarField struct {
	Key   string
	Label string
	Value string
}

// ScalarFields returns the ten scalar fields in schema order. Used by the
// export writer and the verification UI.
func (r *InvoiceRecord) ScalarFields() []ScalarField {
	return []ScalarField{
		{"invoice_id", "Invoice ID", r.InvoiceID},
		{"invoice_date", "Invoice Date", r.InvoiceDate},
		{"due_date", "Due Date", r.DueDate},
		{"seller_name", "Seller Name", r.SellerName},
		{"seller_address", "Seller Address", r.SellerAddress},
		{"customer_name", "Customer Name", r.CustomerName},
		{"customer_address", "Customer Address", r.CustomerAddress},
		{"subtotal", "Subtotal", r.Subtotal},
		{"total_tax", "Total Tax", r.TotalTax},
		{"total_amount", "Total Amount", r.TotalAmount},
	}
}
