package domain

import "time"

// DisasterRecord is one row of the cleaned disaster dataset.
// Optional numeric columns are pointers: nil means the source cell was empty.
type DisasterRecord struct {
	ID  string `json:"id"`
	Row int    `json:"row"`

	DisasterType     string `json:"disaster_type"`
	DisasterSubgroup string `json:"disaster_subgroup,omitempty"`
	Country          string `json:"country"`
	Region           string `json:"region"`
	Subregion        string `json:"subregion,omitempty"`
	Location         string `json:"location,omitempty"`

	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	StartDate time.Time `json:"start_date"`

	TotalDeaths         *int     `json:"total_deaths,omitempty"`
	TotalDamage         *float64 `json:"total_damage,omitempty"`          // thousand US$
	TotalDamageAdjusted *float64 `json:"total_damage_adjusted,omitempty"` // thousand US$
	Magnitude           *float64 `json:"magnitude,omitempty"`

	// GeoSource records where the coordinates came from: "original", "forward", "failed".
	GeoSource string `json:"geo_source,omitempty"`
}

// HasCoordinates reports whether both latitude and longitude are present.
func (r DisasterRecord) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// Deaths returns total deaths, or 0 when the value is absent.
func (r DisasterRecord) Deaths() int {
	if r.TotalDeaths == nil {
		return 0
	}
	return *r.TotalDeaths
}

// Column names a numeric attribute that statistics can be computed over.
type Column string

const (
	ColumnMagnitude           Column = "magnitude"
	ColumnTotalDeaths         Column = "total_deaths"
	ColumnTotalDamage         Column = "total_damage"
	ColumnTotalDamageAdjusted Column = "total_damage_adjusted"
)

// Value extracts the column's value from a record; ok is false when the value is absent.
func (c Column) Value(r DisasterRecord) (v float64, ok bool) {
	switch c {
	case ColumnMagnitude:
		return deref(r.Magnitude)
	case ColumnTotalDeaths:
		if r.TotalDeaths == nil {
			return 0, false
		}
		return float64(*r.TotalDeaths), true
	case ColumnTotalDamage:
		return deref(r.TotalDamage)
	case ColumnTotalDamageAdjusted:
		return deref(r.TotalDamageAdjusted)
	default:
		return 0, false
	}
}

func deref(p *float64) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}
