package render

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/disaster-atlas/internal/domain"
)

const pivotSheet = "Frequency"

// HeatmapXLSX exports the pivot as a workbook: subregions down column A,
// disaster types across row 1, and a Total column and row.
func HeatmapXLSX(p domain.Pivot, threshold int) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", pivotSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	set := func(col, row int, v any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(pivotSheet, cell, v)
	}

	if err := set(1, 1, fmt.Sprintf("Subregion (threshold %d)", threshold)); err != nil {
		return nil, err
	}
	for c, name := range p.Columns {
		if err := set(c+2, 1, name); err != nil {
			return nil, err
		}
	}
	totalCol := len(p.Columns) + 2
	if err := set(totalCol, 1, "Total"); err != nil {
		return nil, err
	}

	rowTotals := p.RowTotals()
	for r, name := range p.Rows {
		if err := set(1, r+2, name); err != nil {
			return nil, err
		}
		for c := range p.Columns {
			if err := set(c+2, r+2, p.Counts[r][c]); err != nil {
				return nil, err
			}
		}
		if err := set(totalCol, r+2, rowTotals[r]); err != nil {
			return nil, err
		}
	}

	totalRow := len(p.Rows) + 2
	if err := set(1, totalRow, "Total"); err != nil {
		return nil, err
	}
	grand := 0
	for c, t := range p.ColumnTotals() {
		grand += t
		if err := set(c+2, totalRow, t); err != nil {
			return nil, err
		}
	}
	if err := set(totalCol, totalRow, grand); err != nil {
		return nil, err
	}

	if err := f.SetColWidth(pivotSheet, "A", "A", 28); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}
	if err := f.SetPanes(pivotSheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		YSplit:      1,
		TopLeftCell: "B2",
		ActivePane:  "bottomRight",
	}); err != nil {
		return nil, fmt.Errorf("freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
