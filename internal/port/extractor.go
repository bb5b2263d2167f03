package port

import (
	"context"

	"invex/internal/domain"
)

// ExtractInput carries the fixed prompt and the ordered page images for one
// model call.
type ExtractInput struct {
	Prompt string
	Pages  []domain.PageImage
}

// ExtractOutput is the unprocessed model result: the raw generated text plus
// the usage counters as reported by the provider.
type ExtractOutput struct {
	Text  string
	Usage domain.Usage
	Model string
}

// Extractor abstracts the external multimodal extraction model. One call per
// user-initiated extraction; implementations do not retry.
type Extractor interface {
	Extract(ctx context.Context, input ExtractInput) (*ExtractOutput, error)
}
