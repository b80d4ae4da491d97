package domain

import "context"

// GeocodingResult contains coordinates returned by a geocoding provider.
type GeocodingResult struct {
	Lat              float64
	Lon              float64
	FormattedAddress string
	Confidence       float64 // 0.0–1.0 provider confidence score
}

// Found reports whether the provider returned a usable position.
func (g GeocodingResult) Found() bool {
	return g.Lat != 0 || g.Lon != 0
}

// Geocoder resolves a place name to coordinates.
type Geocoder interface {
	ForwardGeocode(ctx context.Context, location, country string) (GeocodingResult, error)
}
