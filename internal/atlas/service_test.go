package atlas_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/disaster-atlas/internal/atlas"
	"github.com/couchcryptid/disaster-atlas/internal/atlas/atlastest"
	"github.com/couchcryptid/disaster-atlas/internal/domain"
	"github.com/couchcryptid/disaster-atlas/internal/observability"
)

func newService(t *testing.T) (*atlas.Service, *observability.Metrics) {
	t.Helper()
	metrics := observability.NewMetricsForTesting()
	svc := atlas.New(atlastest.Dataset(), atlas.Options{
		OutlierTypes:   []string{"Earthquake", "Flood", "Storm"},
		PivotThreshold: 2,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)), metrics)
	return svc, metrics
}

func TestService_Meta(t *testing.T) {
	svc, metrics := newService(t)

	meta := svc.Meta()

	assert.Equal(t, 12, meta.Rows)
	assert.Equal(t, []string{"Flood", "Earthquake", "Storm"}, meta.DisasterTypes)
	assert.Len(t, meta.Countries, 12)
	assert.Equal(t, 2, meta.PivotThreshold)
	assert.Equal(t, 12.0, testutil.ToFloat64(metrics.DatasetRows))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ViewRequests.WithLabelValues(atlas.ViewMeta)))
}

func TestService_CheckReadiness(t *testing.T) {
	svc, _ := newService(t)
	require.NoError(t, svc.CheckReadiness(context.Background()))

	empty := atlas.New(domain.NewDataset("empty.csv", nil), atlas.Options{}, slog.Default(), observability.NewMetricsForTesting())
	assert.Error(t, empty.CheckReadiness(context.Background()))
}

func TestService_Locations(t *testing.T) {
	svc, _ := newService(t)

	all := svc.Locations(domain.Criteria{})
	assert.Len(t, all, 11, "row without coordinates is omitted")

	storms := svc.Locations(domain.Criteria{Type: "Storm"})
	require.Len(t, storms, 2)
	assert.Equal(t, 8, storms[0].Row)
	assert.Equal(t, 10, storms[1].Row)
}

func TestService_CumulativeDeaths(t *testing.T) {
	svc, _ := newService(t)

	series := svc.CumulativeDeaths(domain.Criteria{})

	require.Len(t, series, 3)
	assert.Equal(t, "Asia", series[0].Name)
	assert.Equal(t, "Americas", series[1].Name)
	assert.Equal(t, "Europe", series[2].Name)
	americas := series[1].Points
	assert.Equal(t, float64(1833+222570), americas[len(americas)-1].Value)
}

func TestService_MagnitudeDeaths(t *testing.T) {
	svc, metrics := newService(t)

	cmp, err := svc.MagnitudeDeaths("Earthquake")
	require.NoError(t, err)

	rows := make([]int, 0, len(cmp.Records))
	for _, r := range cmp.Records {
		rows = append(rows, r.Row)
	}
	// 9.1 lies above Q3 + 1.5*IQR (7.8 + 1.2).
	assert.Equal(t, []int{4, 5, 6, 7}, rows)
	assert.InDelta(t, 8.8, cmp.MagnitudeAxis.Max, 1e-9)
	assert.InDelta(t, 222570*1.1, cmp.DeathsAxis.Max, 1e-6)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ViewRequests.WithLabelValues(atlas.ViewMagnitudeDeaths)))
}

func TestService_MagnitudeDeaths_UnsupportedType(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.MagnitudeDeaths("Wildfire")
	assert.ErrorIs(t, err, atlas.ErrUnsupportedType)
	assert.False(t, errors.Is(err, domain.ErrNoData))
}

func TestService_MagnitudeDeaths_NoData(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	svc := atlas.New(atlastest.Dataset(), atlas.Options{OutlierTypes: []string{"Drought"}}, slog.Default(), metrics)

	_, err := svc.MagnitudeDeaths("Drought")
	assert.ErrorIs(t, err, domain.ErrNoData)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ViewNoData.WithLabelValues(atlas.ViewMagnitudeDeaths)))
}

func TestService_Heatmap(t *testing.T) {
	svc, _ := newService(t)

	p := svc.Heatmap(-1) // configured default of 2
	assert.Equal(t, []string{"Eastern Asia", "South-eastern Asia", "Southern Asia"}, p.Rows)
	assert.Equal(t, []string{"Flood"}, p.Columns)
	assert.Equal(t, [][]int{{1}, {0}, {2}}, p.Counts)

	all := svc.Heatmap(0)
	assert.Len(t, all.Rows, 8)
	assert.Equal(t, []string{"Earthquake", "Flood", "Storm"}, all.Columns)

	assert.True(t, svc.Heatmap(domain.DefaultPivotThreshold).Empty())
}

func TestService_SupplementalViews(t *testing.T) {
	svc, _ := newService(t)

	assert.Len(t, svc.Preview(domain.DefaultPreviewRows), 5)
	assert.Len(t, svc.DamageOverTime(domain.Criteria{}), 3)
	assert.Len(t, svc.DeathsByTypeAndCountry(domain.Criteria{Country: "India"}), 1)
	assert.Len(t, svc.DamageVsDeaths(domain.Criteria{}), 10)
}

func TestService_DefaultLocationType(t *testing.T) {
	svc, _ := newService(t)
	assert.Equal(t, "Flood", svc.DefaultLocationType())

	empty := atlas.New(domain.NewDataset("empty.csv", nil), atlas.Options{}, slog.Default(), observability.NewMetricsForTesting())
	assert.Empty(t, empty.DefaultLocationType())
}
