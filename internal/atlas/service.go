// Package atlas serves the dashboard views over a loaded dataset.
package atlas

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/couchcryptid/disaster-atlas/internal/domain"
	"github.com/couchcryptid/disaster-atlas/internal/observability"
)

// ErrUnsupportedType is returned when an outlier comparison is requested for
// a disaster type outside the curated list.
var ErrUnsupportedType = errors.New("disaster type not supported for outlier comparison")

// View names used as metric labels and chart names.
const (
	ViewMeta                = "meta"
	ViewPreview             = "preview"
	ViewLocations           = "locations"
	ViewCumulativeDeaths    = "cumulative_deaths"
	ViewDamageOverTime      = "damage_over_time"
	ViewDeathsByTypeCountry = "deaths_by_type_country"
	ViewDamageVsDeaths      = "damage_vs_deaths"
	ViewMagnitudeDeaths     = "magnitude_deaths"
	ViewHeatmap             = "heatmap"
)

// Options tunes the views.
type Options struct {
	OutlierTypes   []string
	PivotThreshold int
}

// Service computes views over an immutable dataset. It is safe for concurrent use.
type Service struct {
	dataset *domain.Dataset
	opts    Options
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Service over ds.
func New(ds *domain.Dataset, opts Options, logger *slog.Logger, metrics *observability.Metrics) *Service {
	metrics.DatasetRows.Set(float64(ds.Len()))
	return &Service{
		dataset: ds,
		opts:    opts,
		logger:  logger,
		metrics: metrics,
	}
}

// Meta describes the loaded dataset.
type Meta struct {
	Source         string    `json:"source"`
	Rows           int       `json:"rows"`
	LoadedAt       time.Time `json:"loaded_at"`
	DisasterTypes  []string  `json:"disaster_types"`
	Countries      []string  `json:"countries"`
	OutlierTypes   []string  `json:"outlier_types"`
	PivotThreshold int       `json:"pivot_threshold"`
}

// CheckReadiness reports ready once a non-empty dataset is held.
func (s *Service) CheckReadiness(_ context.Context) error {
	if s.dataset == nil || s.dataset.Len() == 0 {
		return errors.New("dataset is empty")
	}
	return nil
}

// Dataset returns the underlying dataset.
func (s *Service) Dataset() *domain.Dataset { return s.dataset }

// PivotThreshold is the configured default heatmap threshold.
func (s *Service) PivotThreshold() int { return s.opts.PivotThreshold }

// OutlierTypes returns the curated disaster types offered for the outlier comparison.
func (s *Service) OutlierTypes() []string { return slices.Clone(s.opts.OutlierTypes) }

// DefaultLocationType is the type the location map shows when none is
// chosen: the first distinct type in file order, or "" for an empty dataset.
func (s *Service) DefaultLocationType() string {
	if types := s.dataset.DisasterTypes(); len(types) > 0 {
		return types[0]
	}
	return ""
}

func (s *Service) Meta() Meta {
	done := s.observe(ViewMeta)
	defer done(nil)

	return Meta{
		Source:         s.dataset.Source(),
		Rows:           s.dataset.Len(),
		LoadedAt:       s.dataset.LoadedAt(),
		DisasterTypes:  s.dataset.DisasterTypes(),
		Countries:      s.dataset.Countries(),
		OutlierTypes:   s.OutlierTypes(),
		PivotThreshold: s.opts.PivotThreshold,
	}
}

func (s *Service) Preview(n int) []domain.DisasterRecord {
	done := s.observe(ViewPreview)
	defer done(nil)
	return domain.Preview(s.dataset.Records(), n)
}

// Locations returns the selected records that have coordinates.
func (s *Service) Locations(c domain.Criteria) []domain.DisasterRecord {
	done := s.observe(ViewLocations)
	defer done(nil)

	selected := domain.Select(s.dataset.Records(), c)
	out := selected[:0]
	for _, r := range selected {
		if r.HasCoordinates() {
			out = append(out, r)
		}
	}
	return out
}

// CumulativeDeaths returns one running-total series per region.
func (s *Service) CumulativeDeaths(c domain.Criteria) []domain.Series {
	done := s.observe(ViewCumulativeDeaths)
	defer done(nil)
	return domain.CumulativeSeries(domain.CumulativeDeathsByRegion(domain.Select(s.dataset.Records(), c)))
}

func (s *Service) DamageOverTime(c domain.Criteria) []domain.Series {
	done := s.observe(ViewDamageOverTime)
	defer done(nil)
	return domain.DamageOverTime(domain.Select(s.dataset.Records(), c))
}

func (s *Service) DeathsByTypeAndCountry(c domain.Criteria) []domain.TypeCountryDeaths {
	done := s.observe(ViewDeathsByTypeCountry)
	defer done(nil)
	return domain.DeathsByTypeAndCountry(domain.Select(s.dataset.Records(), c))
}

func (s *Service) DamageVsDeaths(c domain.Criteria) []domain.DamagePoint {
	done := s.observe(ViewDamageVsDeaths)
	defer done(nil)
	return domain.DamageVsDeaths(domain.Select(s.dataset.Records(), c))
}

// MagnitudeDeaths runs the outlier-trimmed magnitude/deaths comparison for one
// curated disaster type. It returns domain.ErrNoData when nothing survives.
func (s *Service) MagnitudeDeaths(disasterType string) (domain.Comparison, error) {
	done := s.observe(ViewMagnitudeDeaths)

	if !slices.Contains(s.opts.OutlierTypes, disasterType) {
		err := fmt.Errorf("%w: %q", ErrUnsupportedType, disasterType)
		done(err)
		return domain.Comparison{}, err
	}

	cmp, err := domain.MagnitudeVsDeaths(s.dataset.Records(), disasterType)
	done(err)
	if err != nil {
		s.logger.Debug("magnitude comparison empty", "disaster_type", disasterType, "error", err)
		return domain.Comparison{}, err
	}
	return cmp, nil
}

// Heatmap returns the subregion by type frequency pivot. A negative threshold
// selects the configured default.
func (s *Service) Heatmap(threshold int) domain.Pivot {
	done := s.observe(ViewHeatmap)
	defer done(nil)

	if threshold < 0 {
		threshold = s.opts.PivotThreshold
	}
	return domain.FrequencyPivot(s.dataset.Records(), threshold)
}

// observe counts a view request and returns a func that records its duration
// and any no-data outcome.
func (s *Service) observe(view string) func(error) {
	start := time.Now()
	s.metrics.ViewRequests.WithLabelValues(view).Inc()
	return func(err error) {
		s.metrics.ViewDuration.WithLabelValues(view).Observe(time.Since(start).Seconds())
		if errors.Is(err, domain.ErrNoData) {
			s.metrics.ViewNoData.WithLabelValues(view).Inc()
		}
	}
}
