package domain

import (
	"context"
	"log/slog"
)

// Geo sources recorded on DisasterRecord.GeoSource.
const (
	GeoSourceOriginal = "original"
	GeoSourceForward  = "forward"
	GeoSourceFailed   = "failed"
)

// EnrichWithGeocoding fills in missing coordinates from the record's location
// and country. Records that already have coordinates, or have nothing to look
// up, are returned unchanged apart from GeoSource. Provider errors leave the
// coordinates absent.
func EnrichWithGeocoding(ctx context.Context, r DisasterRecord, geocoder Geocoder, logger *slog.Logger) DisasterRecord {
	if r.HasCoordinates() || geocoder == nil || r.Location == "" {
		r.GeoSource = GeoSourceOriginal
		return r
	}

	result, err := geocoder.ForwardGeocode(ctx, r.Location, r.Country)
	if err != nil {
		logger.Warn("forward geocoding failed",
			"record_id", r.ID,
			"location", r.Location,
			"country", r.Country,
			"error", err,
		)
		r.GeoSource = GeoSourceFailed
		return r
	}
	if !result.Found() {
		r.GeoSource = GeoSourceOriginal
		return r
	}

	lat, lon := result.Lat, result.Lon
	r.Latitude = &lat
	r.Longitude = &lon
	r.GeoSource = GeoSourceForward
	return r
}

// GeocodeStats summarizes a GeocodeMissing run.
type GeocodeStats struct {
	Resolved int
	Failed   int
	Skipped  int
}

// GeocodeMissing runs EnrichWithGeocoding over every record and returns a new
// slice; the input is not modified. Stops early if ctx is cancelled.
func GeocodeMissing(ctx context.Context, records []DisasterRecord, geocoder Geocoder, logger *slog.Logger) ([]DisasterRecord, GeocodeStats) {
	out := make([]DisasterRecord, len(records))
	var stats GeocodeStats
	for i, r := range records {
		if ctx.Err() != nil {
			r.GeoSource = GeoSourceOriginal
			out[i] = r
			stats.Skipped++
			continue
		}
		out[i] = EnrichWithGeocoding(ctx, r, geocoder, logger)
		switch out[i].GeoSource {
		case GeoSourceForward:
			stats.Resolved++
		case GeoSourceFailed:
			stats.Failed++
		default:
			stats.Skipped++
		}
	}
	return out, stats
}
