// Package export writes an extracted invoice record as an Excel workbook for
// the human-verification workflow.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"invex/internal/domain"
)

const (
	fieldsSheet    = "Invoice"
	lineItemsSheet = "Line Items"
)

// lineItemColumns defines the line-item sheet header row.
var lineItemColumns = []string{"Description", "Quantity", "Unit Price", "Line Total"}

// WriteWorkbook writes a two-sheet workbook (scalar fields, line items) for
// the given record to w.
func WriteWorkbook(w io.Writer, record *domain.InvoiceRecord) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", fieldsSheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	if err := writeFields(f, record); err != nil {
		return err
	}
	if err := writeLineItems(f, record.LineItems); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeFields(f *excelize.File, record *domain.InvoiceRecord) error {
	if err := setRow(f, fieldsSheet, 1, "Field", "Value"); err != nil {
		return err
	}
	for i, field := range record.ScalarFields() {
		if err := setRow(f, fieldsSheet, i+2, field.Label, field.Value); err != nil {
			return err
		}
	}
	return nil
}

func writeLineItems(f *excelize.File, items []domain.LineItem) error {
	if _, err := f.NewSheet(lineItemsSheet); err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	if err := setRow(f, lineItemsSheet, 1, lineItemColumns[0], lineItemColumns[1], lineItemColumns[2], lineItemColumns[3]); err != nil {
		return err
	}
	for i, item := range items {
		if err := setRow(f, lineItemsSheet, i+2, item.Description, item.Quantity, item.UnitPrice, item.LineTotal); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values ...string) error {
	for col, val := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("computing cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, val); err != nil {
			return fmt.Errorf("setting cell %s: %w", cell, err)
		}
	}
	return nil
}
