package port

import (
	"context"

	"invex/internal/domain"
)

// DocumentLoader turns an uploaded document into an ordered sequence of page
// images. A PDF produces one image per page; a plain image produces exactly
// one. Loading failures abort the pipeline before any model call.
type DocumentLoader interface {
	Load(ctx context.Context, doc domain.UploadedDocument) ([]domain.PageImage, error)
}
