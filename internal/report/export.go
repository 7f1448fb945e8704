package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// WriteCSV writes header, one line per row, then the TOTALS line.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := cw.WriteAll(t.Records); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	if err := cw.Write(t.Footer); err != nil {
		return fmt.Errorf("write csv totals: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the same table as WriteCSV into a single-sheet workbook.
func WriteXLSX(w io.Writer, t *Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := t.Entity
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	lines := make([][]string, 0, len(t.Records)+2)
	lines = append(lines, t.Header)
	lines = append(lines, t.Records...)
	lines = append(lines, t.Footer)

	for i, line := range lines {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := make([]any, len(line))
		for j, v := range line {
			row[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	// 设置列宽
	last, err := excelize.ColumnNumberToName(len(t.Header))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", last, 16); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
