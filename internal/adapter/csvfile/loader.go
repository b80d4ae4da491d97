// Package csvfile loads the cleaned disaster dataset from a CSV file.
package csvfile

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/hashicorp/go-multierror"

	"github.com/couchcryptid/disaster-atlas/internal/domain"
)

// Column headers of the cleaned dataset.
const (
	ColDisasterType        = "Disaster Type"
	ColDisasterSubgroup    = "Disaster Subgroup"
	ColCountry             = "Country"
	ColRegion              = "Region"
	ColSubregion           = "Subregion"
	ColLocation            = "Location"
	ColLatitude            = "Latitude"
	ColLongitude           = "Longitude"
	ColStartDate           = "Start_Date"
	ColTotalDeaths         = "Total Deaths"
	ColTotalDamage         = "Total Damage ('000 US$)"
	ColTotalDamageAdjusted = "Total Damage, Adjusted ('000 US$)"
	ColMagnitude           = "Magnitude"
)

var requiredColumns = []string{
	ColDisasterType,
	ColDisasterSubgroup,
	ColCountry,
	ColRegion,
	ColSubregion,
	ColStartDate,
	ColTotalDeaths,
	ColTotalDamageAdjusted,
	ColMagnitude,
}

var optionalColumns = []string{
	ColLocation,
	ColLatitude,
	ColLongitude,
	ColTotalDamage,
}

var nullValues = []string{"", "NA", "NaN", "nan"}

var dateLayouts = []string{time.DateOnly, time.DateTime, time.RFC3339}

// ErrMissingColumn is returned when a required header is absent.
var ErrMissingColumn = errors.New("missing required column")

// LoadFile reads the dataset at path.
func LoadFile(path string, logger *slog.Logger) (*domain.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	records, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	ds := domain.NewDataset(path, records)
	logger.Info("dataset loaded",
		"path", path,
		"rows", ds.Len(),
		"disaster_types", len(ds.DisasterTypes()),
		"countries", len(ds.Countries()),
	)
	return ds, nil
}

// Read parses CSV content into records in file order. Every invalid row is
// reported; the returned error is a *multierror.Error when rows fail.
func Read(r io.Reader) ([]domain.DisasterRecord, error) {
	types := make(map[string]series.Type, len(requiredColumns)+len(optionalColumns))
	for _, c := range requiredColumns {
		types[c] = series.String
	}
	for _, c := range optionalColumns {
		types[c] = series.String
	}

	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithTypes(types),
		dataframe.NaNValues(nullValues),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("read csv: %w", df.Err)
	}

	cols, err := columns(df)
	if err != nil {
		return nil, err
	}

	var errs *multierror.Error
	records := make([]domain.DisasterRecord, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		rec, err := cols.record(i)
		if err != nil {
			// Header is line 1.
			errs = multierror.Append(errs, fmt.Errorf("line %d: %w", i+2, err))
			continue
		}
		records = append(records, rec)
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return records, nil
}

// frame holds the typed columns of a loaded dataframe; optional columns may be nil.
type frame map[string]*series.Series

func columns(df dataframe.DataFrame) (frame, error) {
	present := make(map[string]bool)
	for _, name := range df.Names() {
		present[name] = true
	}

	var missing []string
	for _, c := range requiredColumns {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	f := make(frame)
	for _, c := range append(append([]string(nil), requiredColumns...), optionalColumns...) {
		if !present[c] {
			continue
		}
		s := df.Col(c)
		f[c] = &s
	}
	return f, nil
}

func (f frame) cell(col string, i int) string {
	s, ok := f[col]
	if !ok {
		return ""
	}
	e := s.Elem(i)
	if e.IsNA() {
		return ""
	}
	v := strings.TrimSpace(e.String())
	for _, n := range nullValues {
		if v == n {
			return ""
		}
	}
	return v
}

func (f frame) record(i int) (domain.DisasterRecord, error) {
	r := domain.DisasterRecord{
		Row:              i,
		DisasterType:     f.cell(ColDisasterType, i),
		DisasterSubgroup: f.cell(ColDisasterSubgroup, i),
		Country:          f.cell(ColCountry, i),
		Region:           f.cell(ColRegion, i),
		Subregion:        f.cell(ColSubregion, i),
		Location:         f.cell(ColLocation, i),
	}

	var errs *multierror.Error
	for _, req := range []struct{ col, val string }{
		{ColDisasterType, r.DisasterType},
		{ColCountry, r.Country},
		{ColRegion, r.Region},
	} {
		if req.val == "" {
			errs = multierror.Append(errs, fmt.Errorf("%s is empty", req.col))
		}
	}

	date, err := parseDate(f.cell(ColStartDate, i))
	if err != nil {
		errs = multierror.Append(errs, err)
	}
	r.StartDate = date

	deaths, err := parseDeaths(f.cell(ColTotalDeaths, i))
	if err != nil {
		errs = multierror.Append(errs, err)
	}
	r.TotalDeaths = deaths

	for _, num := range []struct {
		col string
		dst **float64
	}{
		{ColLatitude, &r.Latitude},
		{ColLongitude, &r.Longitude},
		{ColTotalDamage, &r.TotalDamage},
		{ColTotalDamageAdjusted, &r.TotalDamageAdjusted},
		{ColMagnitude, &r.Magnitude},
	} {
		v, err := parseFloat(num.col, f.cell(num.col, i))
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		*num.dst = v
	}

	if errs != nil {
		errs.ErrorFormat = inlineFormat
		return domain.DisasterRecord{}, errs
	}
	r.ID = domain.RecordID(r)
	return r, nil
}

// inlineFormat renders one row's problems on a single line.
func inlineFormat(es []error) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "; ")
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("%s is empty", ColStartDate)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("%s %q is not a date", ColStartDate, s)
}

// parseDeaths accepts integral values written as floats ("1200.0"), which is
// how a nullable integer column round-trips through most CSV writers.
func parseDeaths(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%s %q is not a whole number", ColTotalDeaths, s)
	}
	if f < 0 {
		return nil, fmt.Errorf("%s %q is negative", ColTotalDeaths, s)
	}
	// float64(math.MaxInt) rounds up to 2^63, itself out of range.
	if f >= float64(math.MaxInt) {
		return nil, fmt.Errorf("%s %q is out of range", ColTotalDeaths, s)
	}
	n := int(f)
	return &n, nil
}

func parseFloat(col, s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%s %q is not a number", col, s)
	}
	return &f, nil
}
