package domain

import "sort"

// DefaultPivotThreshold is the minimum occurrence count used by the heatmap.
const DefaultPivotThreshold = 15

// Pivot is a count table: Counts[i][j] is the number of records in Rows[i]
// (subregion) with disaster type Columns[j].
type Pivot struct {
	Rows    []string `json:"rows"`
	Columns []string `json:"columns"`
	Counts  [][]int  `json:"counts"`
}

// Count returns the cell for (row, column), or 0 when either label is absent.
func (p Pivot) Count(row, column string) int {
	ri, ci := indexOf(p.Rows, row), indexOf(p.Columns, column)
	if ri < 0 || ci < 0 {
		return 0
	}
	return p.Counts[ri][ci]
}

// RowTotals sums each row.
func (p Pivot) RowTotals() []int {
	out := make([]int, len(p.Rows))
	for i, row := range p.Counts {
		for _, c := range row {
			out[i] += c
		}
	}
	return out
}

// ColumnTotals sums each column.
func (p Pivot) ColumnTotals() []int {
	out := make([]int, len(p.Columns))
	for _, row := range p.Counts {
		for j, c := range row {
			out[j] += c
		}
	}
	return out
}

// Empty reports whether the table has no cells.
func (p Pivot) Empty() bool {
	return len(p.Rows) == 0 || len(p.Columns) == 0
}

// CountPivot cross-tabulates subregion by disaster type. Labels are sorted;
// records missing either label are not counted.
func CountPivot(records []DisasterRecord) Pivot {
	counts := make(map[string]map[string]int)
	colSet := make(map[string]struct{})
	for _, r := range records {
		if r.Subregion == "" || r.DisasterType == "" {
			continue
		}
		row, ok := counts[r.Subregion]
		if !ok {
			row = make(map[string]int)
			counts[r.Subregion] = row
		}
		row[r.DisasterType]++
		colSet[r.DisasterType] = struct{}{}
	}

	p := Pivot{
		Rows:    sortedKeys(counts),
		Columns: sortedKeys(colSet),
	}
	p.Counts = make([][]int, len(p.Rows))
	for i, row := range p.Rows {
		p.Counts[i] = make([]int, len(p.Columns))
		for j, col := range p.Columns {
			p.Counts[i][j] = counts[row][col]
		}
	}
	return p
}

// FrequencyPivot builds the count pivot, drops subregions whose total is
// below threshold, then drops disaster types whose total over the remaining
// subregions is not strictly greater than threshold.
func FrequencyPivot(records []DisasterRecord, threshold int) Pivot {
	p := CountPivot(records)

	var keepRows []int
	for i, total := range p.RowTotals() {
		if total >= threshold {
			keepRows = append(keepRows, i)
		}
	}
	rowFiltered := p.selectRows(keepRows)

	var keepCols []int
	for j, total := range rowFiltered.ColumnTotals() {
		if total > threshold {
			keepCols = append(keepCols, j)
		}
	}
	return rowFiltered.selectColumns(keepCols)
}

func (p Pivot) selectRows(idx []int) Pivot {
	out := Pivot{
		Rows:    make([]string, 0, len(idx)),
		Columns: p.Columns,
		Counts:  make([][]int, 0, len(idx)),
	}
	for _, i := range idx {
		out.Rows = append(out.Rows, p.Rows[i])
		out.Counts = append(out.Counts, p.Counts[i])
	}
	return out
}

func (p Pivot) selectColumns(idx []int) Pivot {
	out := Pivot{
		Rows:    p.Rows,
		Columns: make([]string, 0, len(idx)),
		Counts:  make([][]int, len(p.Rows)),
	}
	for _, j := range idx {
		out.Columns = append(out.Columns, p.Columns[j])
	}
	for i, row := range p.Counts {
		out.Counts[i] = make([]int, 0, len(idx))
		for _, j := range idx {
			out.Counts[i] = append(out.Counts[i], row[j])
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}
