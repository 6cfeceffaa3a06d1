package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/poultry-stock/internal/domain/models"
)

// SheetName is the name of the worksheet holding the report.
const SheetName = "Stock Report"

// FileName returns the attachment name used for a report export.
func FileName(report models.DailyStockReport) string {
	return fmt.Sprintf("stock-report-%s.xlsx", report.Date.Format(models.DateLayout))
}

// WriteXLSX writes the report as a two-column (label, value) workbook.
func WriteXLSX(w io.Writer, report models.DailyStockReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	header := []interface{}{"Particulars", report.Date.Format(models.DateLayout)}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "B1", bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, r := range Rows(report.Reconciliation) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{r.Label, r.Value.InexactFloat64()}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(SheetName, "A", "A", 40); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if err := f.SetColWidth(SheetName, "B", "B", 18); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
