package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deathsRecords(values ...int) []DisasterRecord {
	out := make([]DisasterRecord, len(values))
	for i, v := range values {
		out[i] = DisasterRecord{Row: i, DisasterType: "Earthquake", TotalDeaths: intPtr(v)}
	}
	return out
}

func TestQuantile(t *testing.T) {
	values := []float64{1, 2, 2, 3, 3, 3, 4, 4, 5, 100}

	tests := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{0.25, 2.25},
		{0.5, 3},
		{0.75, 4},
		{1, 100},
	}
	for _, tt := range tests {
		got, err := Quantile(values, tt.p)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, got, 1e-9, "p=%v", tt.p)
	}
}

func TestQuantile_Unsorted(t *testing.T) {
	got, err := Quantile([]float64{4, 1, 3, 2}, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, got, 1e-9)
}

func TestQuantile_Errors(t *testing.T) {
	_, err := Quantile(nil, 0.5)
	assert.ErrorIs(t, err, ErrNoData)

	_, err = Quantile([]float64{1}, 1.5)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoData))
}

func TestIQRBounds(t *testing.T) {
	b, err := IQRBounds([]float64{1, 2, 2, 3, 3, 3, 4, 4, 5, 100})
	require.NoError(t, err)

	assert.InDelta(t, 2.25, b.Q1, 1e-9)
	assert.InDelta(t, 4.0, b.Q3, 1e-9)
	assert.InDelta(t, 1.75, b.IQR, 1e-9)
	assert.InDelta(t, -0.375, b.Lower, 1e-9)
	assert.InDelta(t, 6.625, b.Upper, 1e-9)
}

func TestTrimOutliers_ExcludesOutlier(t *testing.T) {
	records := deathsRecords(1, 2, 2, 3, 3, 3, 4, 4, 5, 100)

	got, _, err := TrimOutliers(records, ColumnTotalDeaths)
	require.NoError(t, err)
	require.Len(t, got, 9)
	for _, r := range got {
		assert.NotEqual(t, 100, *r.TotalDeaths)
	}
}

func TestTrimOutliers_BoundsInclusive(t *testing.T) {
	// Q1=1, Q3=3, IQR=2 -> fences [-2, 6]; 6 sits exactly on the upper fence.
	records := deathsRecords(1, 1, 3, 3, 6)
	b, err := IQRBounds(ColumnValues(records[:4], ColumnTotalDeaths))
	require.NoError(t, err)
	assert.InDelta(t, 6.0, b.Upper, 1e-9)

	got, _, err := TrimOutliers(records[:4], ColumnTotalDeaths)
	require.NoError(t, err)
	assert.Len(t, got, 4)

	assert.True(t, b.Contains(6))
	assert.False(t, b.Contains(6.0001))
}

func TestTrimOutliers_NullsExcludedNotZero(t *testing.T) {
	records := []DisasterRecord{
		{Row: 0, Magnitude: floatPtr(6.0)},
		{Row: 1, Magnitude: floatPtr(6.2)},
		{Row: 2, Magnitude: floatPtr(6.4)},
		{Row: 3, Magnitude: floatPtr(6.6)},
		{Row: 4},
		{Row: 5},
		{Row: 6},
	}

	got, b, err := TrimOutliers(records, ColumnMagnitude)
	require.NoError(t, err)

	// Treating nulls as zero would drag Q1 to 0.
	assert.InDelta(t, 6.15, b.Q1, 1e-9)
	assert.Len(t, got, 4)
}

func TestTrimOutliers_NoData(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		_, _, err := TrimOutliers(nil, ColumnMagnitude)
		assert.ErrorIs(t, err, ErrNoData)
	})

	t.Run("all null column", func(t *testing.T) {
		records := []DisasterRecord{{Row: 0}, {Row: 1}}
		_, _, err := TrimOutliers(records, ColumnMagnitude)
		assert.ErrorIs(t, err, ErrNoData)
	})
}

func TestMagnitudeVsDeaths(t *testing.T) {
	var records []DisasterRecord
	mags := []float64{5.0, 5.5, 6.0, 6.1, 6.3, 6.5, 7.0, 9.9}
	deaths := []int{10, 20, 30, 40, 50, 60, 5000, 70}
	for i := range mags {
		records = append(records, DisasterRecord{
			Row:          i,
			DisasterType: "Earthquake",
			Magnitude:    floatPtr(mags[i]),
			TotalDeaths:  intPtr(deaths[i]),
		})
	}
	records = append(records,
		DisasterRecord{Row: 8, DisasterType: "Earthquake", TotalDeaths: intPtr(15)},
		DisasterRecord{Row: 9, DisasterType: "Flood", Magnitude: floatPtr(6.0), TotalDeaths: intPtr(25)},
	)

	cmp, err := MagnitudeVsDeaths(records, "Earthquake")
	require.NoError(t, err)

	rows := make([]int, 0, len(cmp.Records))
	for _, r := range cmp.Records {
		assert.Equal(t, "Earthquake", r.DisasterType)
		rows = append(rows, r.Row)
	}
	// Magnitude pass drops 9.9 and the null-magnitude row; deaths pass then drops 5000.
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, rows)

	assert.Equal(t, 0.0, cmp.MagnitudeAxis.Min)
	assert.InDelta(t, 6.5+1, cmp.MagnitudeAxis.Max, 1e-9)
	assert.Equal(t, 0.0, cmp.DeathsAxis.Min)
	assert.InDelta(t, 60*1.1, cmp.DeathsAxis.Max, 1e-9)
}

func TestMagnitudeVsDeaths_NoData(t *testing.T) {
	t.Run("unknown type", func(t *testing.T) {
		_, err := MagnitudeVsDeaths(sampleRecords(), "Wildfire")
		assert.ErrorIs(t, err, ErrNoData)
	})

	t.Run("type without magnitudes", func(t *testing.T) {
		records := []DisasterRecord{{DisasterType: "Drought", TotalDeaths: intPtr(3)}}
		_, err := MagnitudeVsDeaths(records, "Drought")
		assert.ErrorIs(t, err, ErrNoData)
	})

	t.Run("magnitudes but no deaths", func(t *testing.T) {
		records := []DisasterRecord{{DisasterType: "Storm", Magnitude: floatPtr(150)}}
		_, err := MagnitudeVsDeaths(records, "Storm")
		assert.ErrorIs(t, err, ErrNoData)
	})
}

func TestMagnitudeVsDeaths_Deterministic(t *testing.T) {
	records := sampleRecords()
	a, errA := MagnitudeVsDeaths(records, "Earthquake")
	b, errB := MagnitudeVsDeaths(records, "Earthquake")
	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t, a, b)
}
