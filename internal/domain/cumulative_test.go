package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCumulativeDeathsByRegion(t *testing.T) {
	rows := CumulativeDeathsByRegion(sampleRecords())
	require.Len(t, rows, 6)

	// Date order, ties (rows 0 and 5 on 2005-07-26) keep file order.
	order := make([]int, 0, len(rows))
	for _, r := range rows {
		order = append(order, r.Row)
	}
	assert.Equal(t, []int{0, 5, 2, 4, 1, 3}, order)

	byRow := make(map[int]int)
	for _, r := range rows {
		byRow[r.Row] = r.CumulativeDeaths
	}
	assert.Equal(t, 1200, byRow[0])
	assert.Equal(t, 1200, byRow[5], "absent deaths carry the running total")
	assert.Equal(t, 1200+19846, byRow[1])
	assert.Equal(t, 1833, byRow[2])
	assert.Equal(t, 1833+222570, byRow[4])
	assert.Equal(t, 196, byRow[3])
}

func TestCumulativeDeathsByRegion_Invariants(t *testing.T) {
	records := sampleRecords()
	rows := CumulativeDeathsByRegion(records)

	sums := make(map[string]int)
	for _, r := range records {
		sums[r.Region] += r.Deaths()
	}

	last := make(map[string]CumulativeRecord)
	for _, r := range rows {
		if prev, ok := last[r.Region]; ok {
			assert.GreaterOrEqual(t, r.CumulativeDeaths, prev.CumulativeDeaths, "region %s decreased", r.Region)
			assert.False(t, r.StartDate.Before(prev.StartDate), "region %s out of date order", r.Region)
		}
		last[r.Region] = r
	}
	for region, sum := range sums {
		assert.Equal(t, sum, last[region].CumulativeDeaths, "final value for %s", region)
	}
}

func TestCumulativeDeathsByRegion_DoesNotMutateInput(t *testing.T) {
	records := sampleRecords()
	before := records[0].Row

	_ = CumulativeDeathsByRegion(records)

	assert.Equal(t, before, records[0].Row)
	assert.Equal(t, 1, records[1].Row)
}

func TestCumulativeDeathsByRegion_Empty(t *testing.T) {
	assert.Empty(t, CumulativeDeathsByRegion(nil))
}

func TestCumulativeSeries(t *testing.T) {
	series := CumulativeSeries(CumulativeDeathsByRegion(sampleRecords()))
	require.Len(t, series, 3)

	assert.Equal(t, "Asia", series[0].Name)
	assert.Equal(t, "Americas", series[1].Name)
	assert.Equal(t, "Europe", series[2].Name)

	asia := series[0].Points
	require.Len(t, asia, 3)
	assert.Equal(t, float64(1200+19846), asia[2].Value)
	assert.Equal(t, day(2011, 3, 11), asia[2].Date)
}
