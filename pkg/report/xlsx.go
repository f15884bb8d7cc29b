package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"aneeq-retention/pkg/models"
)

// WriteWorkbook écrit les deux tables dans un classeur XLSX, une feuille par
// table, en-têtes en gras. Export optionnel à côté des CSV.
func WriteWorkbook(retention []models.RetentionRow, ltv []models.LTVRow, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}

	retRecords := make([][]string, 0, len(retention))
	for _, r := range retention {
		retRecords = append(retRecords, retentionRecord(r))
	}
	ltvRecords := make([][]string, 0, len(ltv))
	for _, r := range ltv {
		ltvRecords = append(ltvRecords, ltvRecord(r))
	}

	retSheet := "Retention"
	f.SetSheetName("Sheet1", retSheet)
	if err := writeSheet(f, retSheet, headerStyle, retentionHeader, retRecords); err != nil {
		return err
	}

	ltvSheet := "LTV"
	if _, err := f.NewSheet(ltvSheet); err != nil {
		return err
	}
	if err := writeSheet(f, ltvSheet, headerStyle, ltvHeader, ltvRecords); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, headerStyle int, header []string, records [][]string) error {
	for i, h := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return err
	}

	for rowIdx, rec := range records {
		for i, v := range rec {
			cell, err := excelize.CoordinatesToCellName(i+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
