package loader

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/go-fitz"

	"invex/internal/config"
	"invex/internal/domain"
	"invex/internal/port"
)

// Loader implements port.DocumentLoader. PDFs are rasterized page by page via
// MuPDF; plain images are decoded and passed through. Pages larger than the
// configured max dimension are downscaled before submission to keep request
// payloads bounded.
type Loader struct {
	maxPages    int
	maxDim      int
	jpegQuality int
}

// New creates a Loader from the loader config section.
func New(cfg *config.LoaderConfig) *Loader {
	quality := cfg.JPEGQuality
	if quality <= 0 || quality > 100 {
		quality = 90
	}
	return &Loader{
		maxPages:    cfg.MaxPages,
		maxDim:      cfg.MaxDimensionPx,
		jpegQuality: quality,
	}
}

// Load converts an uploaded document into ordered page images.
func (l *Loader) Load(ctx context.Context, doc domain.UploadedDocument) ([]domain.PageImage, error) {
	switch doc.ContentType {
	case "application/pdf":
		return l.loadPDF(ctx, doc.Data)
	case "image/jpeg", "image/png":
		return l.loadImage(doc)
	default:
		return nil, domain.ErrUnsupportedFileType
	}
}

func (l *Loader) loadPDF(ctx context.Context, data []byte) ([]domain.PageImage, error) {
	fdoc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("%w: opening PDF: %v", domain.ErrDocumentDecode, err)
	}
	defer fdoc.Close()

	pageCount := fdoc.NumPage()
	if pageCount == 0 {
		return nil, fmt.Errorf("%w: PDF has no pages", domain.ErrDocumentDecode)
	}
	if l.maxPages > 0 && pageCount > l.maxPages {
		return nil, fmt.Errorf("%w: PDF has %d pages, limit is %d", domain.ErrDocumentDecode, pageCount, l.maxPages)
	}

	pages := make([]domain.PageImage, 0, pageCount)
	for pageNum := 0; pageNum < pageCount; pageNum++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		img, err := fdoc.Image(pageNum)
		if err != nil {
			return nil, fmt.Errorf("%w: rendering page %d: %v", domain.ErrDocumentDecode, pageNum+1, err)
		}

		page, err := l.encodePage(img, pageNum+1)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}

	return pages, nil
}

func (l *Loader) loadImage(doc domain.UploadedDocument) ([]domain.PageImage, error) {
	img, err := imaging.Decode(bytes.NewReader(doc.Data))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding image: %v", domain.ErrDocumentDecode, err)
	}

	bounds := img.Bounds()
	if l.maxDim > 0 && (bounds.Dx() > l.maxDim || bounds.Dy() > l.maxDim) {
		page, err := l.encodePage(img, 1)
		if err != nil {
			return nil, err
		}
		return []domain.PageImage{page}, nil
	}

	// Small enough: keep the original bytes and media type untouched
	return []domain.PageImage{{
		PageNumber: 1,
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		MediaType:  doc.ContentType,
		Data:       doc.Data,
	}}, nil
}

// encodePage downscales an image to the max dimension if needed and encodes
// it as JPEG.
func (l *Loader) encodePage(img image.Image, pageNumber int) (domain.PageImage, error) {
	bounds := img.Bounds()
	if l.maxDim > 0 && (bounds.Dx() > l.maxDim || bounds.Dy() > l.maxDim) {
		img = imaging.Fit(img, l.maxDim, l.maxDim, imaging.Lanczos)
		bounds = img.Bounds()
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: l.jpegQuality}); err != nil {
		return domain.PageImage{}, fmt.Errorf("%w: encoding page %d: %v", domain.ErrDocumentDecode, pageNumber, err)
	}

	return domain.PageImage{
		PageNumber: pageNumber,
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		MediaType:  "image/jpeg",
		Data:       buf.Bytes(),
	}, nil
}

var _ port.DocumentLoader = (*Loader)(nil)
