package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"invex/internal/config"
	"invex/internal/domain"
	"invex/internal/extractor"
	"invex/internal/normalizer"
	"invex/internal/port"
)

// ExtractRequest is the DTO for one extraction action.
type ExtractRequest struct {
	File   multipart.File
	Header *multipart.FileHeader
}

// ExtractionResult is everything the presentation layer consumes: the page
// previews, the normalized record, the raw pre-normalization text, and the
// usage counters.
type ExtractionResult struct {
	Pages   []domain.PageImage
	Record  *domain.InvoiceRecord
	RawText string
	Usage   domain.Usage
	Model   string
}

// ExtractionService defines the extraction pipeline contract.
type ExtractionService interface {
	Extract(ctx context.Context, req ExtractRequest) (*ExtractionResult, error)
}

type extractionService struct {
	loader    port.DocumentLoader
	extractor port.Extractor
	prompt    string
	maxBytes  int64
}

// NewExtractionService creates the extraction pipeline. The prompt is built
// once from the deployment policy and reused for every request.
func NewExtractionService(
	docLoader port.DocumentLoader,
	ext port.Extractor,
	cfg *config.Config,
) ExtractionService {
	return &extractionService{
		loader:    docLoader,
		extractor: ext,
		prompt: extractor.BuildInvoicePrompt(extractor.PromptPolicy{
			TargetLanguage:   cfg.Prompt.TargetLanguage,
			PreserveNumerics: cfg.Prompt.PreserveNumerics,
		}),
		maxBytes: cfg.Upload.MaxFileSizeMB * 1024 * 1024,
	}
}

func (s *extractionService) Extract(ctx context.Context, req ExtractRequest) (*ExtractionResult, error) {
	doc, err := s.readUpload(req)
	if err != nil {
		return nil, err
	}

	pages, err := s.loader.Load(ctx, *doc)
	if err != nil {
		return nil, err
	}

	out, err := s.extractor.Extract(ctx, port.ExtractInput{
		Prompt: s.prompt,
		Pages:  pages,
	})
	if err != nil {
		return nil, err
	}

	log.Printf("extraction complete: file=%s pages=%d model=%s tokens=%d",
		doc.Filename, len(pages), out.Model, out.Usage.TotalTokens)

	record, err := normalizer.Normalize(out.Text)
	if err != nil {
		return nil, err
	}

	return &ExtractionResult{
		Pages:   pages,
		Record:  record,
		RawText: out.Text,
		Usage:   out.Usage,
		Model:   out.Model,
	}, nil
}

// readUpload validates the upload boundary (extension, size, magic bytes) and
// reads the file into an UploadedDocument.
func (s *extractionService) readUpload(req ExtractRequest) (*domain.UploadedDocument, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(req.Header.Filename), "."))
	if _, ok := domain.AllowedExtensions[ext]; !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	if s.maxBytes > 0 && req.Header.Size > s.maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	data, err := io.ReadAll(req.File)
	if err != nil {
		return nil, fmt.Errorf("reading uploaded file: %w", err)
	}

	sniffLen := len(data)
	if sniffLen > 512 {
		sniffLen = 512
	}
	detectedType := http.DetectContentType(data[:sniffLen])
	if _, ok := domain.AllowedContentTypes[detectedType]; !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	return &domain.UploadedDocument{
		Filename:    req.Header.Filename,
		ContentType: detectedType,
		Data:        data,
	}, nil
}
