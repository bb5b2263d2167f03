package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"invex/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response. RawText carries the
// unparseable model output so it can be inspected manually; it is only set
// for malformed-response errors.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	RawText string `json:"raw_text,omitempty"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: pdf, jpg, png"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrDocumentDecode):
		return http.StatusUnprocessableEntity, "DOCUMENT_DECODE_FAILED", "document could not be decoded into page images"
	case errors.Is(err, domain.ErrExtractionService):
		return http.StatusBadGateway, "EXTRACTION_SERVICE_ERROR", "extraction model call failed"
	case errors.Is(err, domain.ErrMalformedResponse):
		return http.StatusBadGateway, "MALFORMED_MODEL_RESPONSE", "model returned a response that could not be parsed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
// Malformed model responses keep their raw text attached so the caller can
// inspect what came back.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] request failed: %v", requestID, err)
	}

	apiErr := &APIError{Code: code, Message: msg}
	var malformed *domain.MalformedResponseError
	if errors.As(err, &malformed) {
		apiErr.RawText = malformed.RawText
	}

	c.JSON(status, APIResponse{Success: false, Error: apiErr})
}
