package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrDocumentDecode      = errors.New("document could not be decoded into page images")
	ErrExtractionService   = errors.New("extraction model call failed")
	ErrMalformedResponse   = errors.New("model response is not a valid JSON object")
)

// MalformedResponseError reports a model response that could not be parsed
// into an invoice record. It keeps the raw text so the caller can show it for
// manual inspection instead of discarding it.
type MalformedResponseError struct {
	RawText string
	Err     error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed model response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return ErrMalformedResponse }
