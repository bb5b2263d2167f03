package handler

import (
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"invex/internal/domain"
	"invex/internal/export"
	"invex/internal/service"
)

// ExtractionHandler handles invoice extraction endpoints.
type ExtractionHandler struct {
	extractionService service.ExtractionService
}

// NewExtractionHandler creates a new ExtractionHandler.
func NewExtractionHandler(extractionService service.ExtractionService) *ExtractionHandler {
	return &ExtractionHandler{extractionService: extractionService}
}

// pagePreview is the wire form of one rendered page, image inlined as base64.
type pagePreview struct {
	PageNumber int    `json:"page_number"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	MediaType  string `json:"media_type"`
	Image      string `json:"image"`
}

// extractionResponse is the wire form of a completed extraction.
type extractionResponse struct {
	Record  *domain.InvoiceRecord `json:"record"`
	Pages   []pagePreview         `json:"pages"`
	RawText string                `json:"raw_text"`
	Usage   domain.Usage          `json:"usage"`
	Model   string                `json:"model"`
}

// Extract handles POST /api/v1/extractions. One multipart upload, one model
// call, one normalized record back.
func (h *ExtractionHandler) Extract(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.extractionService.Extract(c.Request.Context(), service.ExtractRequest{
		File:   file,
		Header: header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	pages := make([]pagePreview, 0, len(result.Pages))
	for _, p := range result.Pages {
		pages = append(pages, pagePreview{
			PageNumber: p.PageNumber,
			Width:      p.Width,
			Height:     p.Height,
			MediaType:  p.MediaType,
			Image:      base64.StdEncoding.EncodeToString(p.Data),
		})
	}

	RespondCreated(c, extractionResponse{
		Record:  result.Record,
		Pages:   pages,
		RawText: result.RawText,
		Usage:   result.Usage,
		Model:   result.Model,
	})
}

// Export handles POST /api/v1/extractions/export. Accepts a previously
// extracted record as JSON and returns it as an .xlsx workbook.
func (h *ExtractionHandler) Export(c *gin.Context) {
	var record domain.InvoiceRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_RECORD", "request body is not a valid invoice record")
		return
	}

	filename := fmt.Sprintf("invoice-extraction-%s.xlsx", time.Now().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Status(http.StatusOK)

	if err := export.WriteWorkbook(c.Writer, &record); err != nil {
		requestID, _ := c.Get("request_id")
		log.Printf("[%v] writing export workbook: %v", requestID, err)
	}
}
