package http

import (
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/couchcryptid/disaster-atlas/internal/domain"
)

// toGeoJSON builds a FeatureCollection of points. Records without
// coordinates are skipped.
func toGeoJSON(records []domain.DisasterRecord) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, r := range records {
		if !r.HasCoordinates() {
			continue
		}
		f := geojson.NewFeature(orb.Point{*r.Longitude, *r.Latitude})
		f.ID = r.ID
		f.Properties["disaster_type"] = r.DisasterType
		f.Properties["country"] = r.Country
		f.Properties["region"] = r.Region
		f.Properties["location"] = r.Location
		f.Properties["start_date"] = r.StartDate.Format(time.DateOnly)
		if r.TotalDeaths != nil {
			f.Properties["total_deaths"] = *r.TotalDeaths
		}
		if r.TotalDamage != nil {
			f.Properties["total_damage"] = *r.TotalDamage
		}
		if r.Magnitude != nil {
			f.Properties["magnitude"] = *r.Magnitude
		}
		if r.GeoSource != "" {
			f.Properties["geo_source"] = r.GeoSource
		}
		fc.Append(f)
	}
	return fc
}
