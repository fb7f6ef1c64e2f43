// Package xlsx reads master tables from and writes tables to Excel
// workbooks.
package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Sheet is one named table; the first row is the header.
type Sheet struct {
	Name string
	Rows [][]string
}

// ReadRecords returns the rows of the first sheet of the workbook at path.
func ReadRecords(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	return firstSheet(f)
}

// ReadFrom is ReadRecords for an uploaded workbook.
func ReadFrom(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return firstSheet(f)
}

func firstSheet(f *excelize.File) ([][]string, error) {
	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	return rows, nil
}

// NewWorkbook builds a workbook with one sheet per table. Header cells are
// bold on a tinted fill and columns are sized to their widest cell.
func NewWorkbook(sheets ...Sheet) (*excelize.File, error) {
	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				f.Close()
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			f.Close()
			return nil, fmt.Errorf("create sheet %s: %w", sheet.Name, err)
		}
		if err := writeSheet(f, sheet, headerStyle); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

func writeSheet(f *excelize.File, sheet Sheet, headerStyle int) error {
	var widths []int
	for r, row := range sheet.Rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet.Name, cell, value); err != nil {
				return fmt.Errorf("write %s!%s: %w", sheet.Name, cell, err)
			}
			if c >= len(widths) {
				widths = append(widths, make([]int, c-len(widths)+1)...)
			}
			if len(value) > widths[c] {
				widths[c] = len(value)
			}
		}
		if r == 0 && len(row) > 0 {
			last, _ := excelize.CoordinatesToCellName(len(row), 1)
			if err := f.SetCellStyle(sheet.Name, "A1", last, headerStyle); err != nil {
				return fmt.Errorf("style %s header: %w", sheet.Name, err)
			}
		}
	}
	for c, w := range widths {
		col, _ := excelize.ColumnNumberToName(c + 1)
		_ = f.SetColWidth(sheet.Name, col, col, float64(min(w+2, 60)))
	}
	return nil
}

// WriteFile saves sheets as a workbook at path.
func WriteFile(path string, sheets ...Sheet) error {
	f, err := NewWorkbook(sheets...)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

// Write streams sheets as a workbook to w.
func Write(w io.Writer, sheets ...Sheet) error {
	f, err := NewWorkbook(sheets...)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
