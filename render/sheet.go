package render

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// A Sheet is one worksheet of numeric output: a header row followed by
// one row per record.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]float64
}

// WriteWorkbook writes the sheets, in order, to an xlsx workbook at
// path.
func WriteWorkbook(path string, sheets []Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("I need at least one sheet to write a workbook.")
	}
	f := excelize.NewFile()
	defer f.Close()
	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sh.Name); err != nil {
				return err
			}
		} else {
			if _, err := f.NewSheet(sh.Name); err != nil {
				return err
			}
		}
		for c, name := range sh.Header {
			cell, err := excelize.CoordinatesToCellName(c+1, 1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sh.Name, cell, name); err != nil {
				return err
			}
		}
		for r, row := range sh.Rows {
			for c, v := range row {
				cell, err := excelize.CoordinatesToCellName(c+1, r+2)
				if err != nil {
					return err
				}
				if err := f.SetCellValue(sh.Name, cell, v); err != nil {
					return err
				}
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("I couldn't write the workbook '%s': %v", path, err)
	}
	return nil
}
