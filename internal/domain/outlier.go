package domain

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// ErrNoData means a statistic was requested over an empty or all-null
// selection. It is distinct from a valid result that happens to be empty.
var ErrNoData = errors.New("no data for this selection")

// IQRMultiplier scales the interquartile range into outlier fences.
const IQRMultiplier = 1.5

// Bounds are the inclusive fences produced by the IQR rule.
type Bounds struct {
	Q1    float64 `json:"q1"`
	Q3    float64 `json:"q3"`
	IQR   float64 `json:"iqr"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Contains reports whether v lies within [Lower, Upper].
func (b Bounds) Contains(v float64) bool {
	return v >= b.Lower && v <= b.Upper
}

// Quantile returns the p-quantile (0 <= p <= 1) of values using linear
// interpolation between the closest ranks at position (n-1)*p.
func Quantile(values []float64, p float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrNoData
	}
	if p < 0 || p > 1 || math.IsNaN(p) {
		return 0, fmt.Errorf("quantile %v out of range [0,1]", p)
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return quantileSorted(sorted, p), nil
}

func quantileSorted(sorted []float64, p float64) float64 {
	pos := float64(len(sorted)-1) * p
	lo := math.Floor(pos)
	i := int(lo)
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (pos-lo)*(sorted[i+1]-sorted[i])
}

// IQRBounds computes Q1, Q3 and the outlier fences for values.
func IQRBounds(values []float64) (Bounds, error) {
	if len(values) == 0 {
		return Bounds{}, ErrNoData
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	q1 := quantileSorted(sorted, 0.25)
	q3 := quantileSorted(sorted, 0.75)
	iqr := q3 - q1
	return Bounds{
		Q1:    q1,
		Q3:    q3,
		IQR:   iqr,
		Lower: q1 - IQRMultiplier*iqr,
		Upper: q3 + IQRMultiplier*iqr,
	}, nil
}

// ColumnValues collects the non-null values of col.
func ColumnValues(records []DisasterRecord, col Column) []float64 {
	out := make([]float64, 0, len(records))
	for _, r := range records {
		if v, ok := col.Value(r); ok {
			out = append(out, v)
		}
	}
	return out
}

// TrimOutliers keeps the records whose col value is present and inside the
// IQR fences computed over the non-null values. Rows with a null value are
// dropped. Returns ErrNoData when there is nothing to compute quartiles from.
func TrimOutliers(records []DisasterRecord, col Column) ([]DisasterRecord, Bounds, error) {
	b, err := IQRBounds(ColumnValues(records, col))
	if err != nil {
		return nil, Bounds{}, fmt.Errorf("trim %s: %w", col, err)
	}
	out := make([]DisasterRecord, 0, len(records))
	for _, r := range records {
		if v, ok := col.Value(r); ok && b.Contains(v) {
			out = append(out, r)
		}
	}
	return out, b, nil
}

// AxisRange is a closed plotting interval.
type AxisRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Comparison is the magnitude-vs-deaths view for one disaster type.
type Comparison struct {
	DisasterType    string           `json:"disaster_type"`
	Records         []DisasterRecord `json:"records"`
	MagnitudeBounds Bounds           `json:"magnitude_bounds"`
	DeathsBounds    Bounds           `json:"deaths_bounds"`
	MagnitudeAxis   AxisRange        `json:"magnitude_axis"`
	DeathsAxis      AxisRange        `json:"deaths_axis"`
}

// MagnitudeVsDeaths filters records to disasterType, then trims outliers on
// magnitude and afterwards on total deaths. A row survives only if it passes
// both passes. The axes span the trimmed maxima: magnitude padded by +1,
// deaths by 10%.
func MagnitudeVsDeaths(records []DisasterRecord, disasterType string) (Comparison, error) {
	subset := FilterByType(records, disasterType)

	byMagnitude, magBounds, err := TrimOutliers(subset, ColumnMagnitude)
	if err != nil {
		return Comparison{}, err
	}
	trimmed, deathBounds, err := TrimOutliers(byMagnitude, ColumnTotalDeaths)
	if err != nil {
		return Comparison{}, err
	}
	if len(trimmed) == 0 {
		return Comparison{}, fmt.Errorf("trim %s: %w", ColumnTotalDeaths, ErrNoData)
	}

	maxMag := floats.Max(ColumnValues(trimmed, ColumnMagnitude))
	maxDeaths := floats.Max(ColumnValues(trimmed, ColumnTotalDeaths))

	return Comparison{
		DisasterType:    disasterType,
		Records:         trimmed,
		MagnitudeBounds: magBounds,
		DeathsBounds:    deathBounds,
		MagnitudeAxis:   AxisRange{Min: 0, Max: maxMag + 1},
		DeathsAxis:      AxisRange{Min: 0, Max: maxDeaths + 0.1*maxDeaths},
	}, nil
}
