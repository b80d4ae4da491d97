// Package atlastest provides a small fixed dataset for tests of packages
// built on atlas.
package atlastest

import (
	"time"

	"github.com/couchcryptid/disaster-atlas/internal/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func i(v int) *int { return &v }

func f(v float64) *float64 { return &v }

// Records returns twelve records across three types, five regions and
// seven subregions. Row 2 has no coordinates; rows 3 and 11 have no magnitude.
func Records() []domain.DisasterRecord {
	rs := []domain.DisasterRecord{
		{DisasterType: "Flood", DisasterSubgroup: "Hydrological", Country: "India", Region: "Asia", Subregion: "Southern Asia", Location: "Assam", Latitude: f(26.2), Longitude: f(92.9), StartDate: day(2005, 7, 26), TotalDeaths: i(1200), TotalDamageAdjusted: f(5000), Magnitude: f(120000)},
		{DisasterType: "Earthquake", DisasterSubgroup: "Geophysical", Country: "Japan", Region: "Asia", Subregion: "Eastern Asia", Location: "Tohoku", Latitude: f(38.3), Longitude: f(142.4), StartDate: day(2011, 3, 11), TotalDeaths: i(19846), TotalDamageAdjusted: f(275000000), Magnitude: f(9.1)},
		{DisasterType: "Storm", DisasterSubgroup: "Meteorological", Country: "United States of America", Region: "Americas", Subregion: "Northern America", Location: "New Orleans", StartDate: day(2005, 8, 29), TotalDeaths: i(1833), TotalDamageAdjusted: f(200000000), Magnitude: f(280)},
		{DisasterType: "Flood", DisasterSubgroup: "Hydrological", Country: "Germany", Region: "Europe", Subregion: "Western Europe", Location: "Ahr valley", Latitude: f(50.5), Longitude: f(7.1), StartDate: day(2021, 7, 14), TotalDeaths: i(196)},
		{DisasterType: "Earthquake", DisasterSubgroup: "Geophysical", Country: "Haiti", Region: "Americas", Subregion: "Caribbean", Location: "Port-au-Prince", Latitude: f(18.5), Longitude: f(-72.3), StartDate: day(2010, 1, 12), TotalDeaths: i(222570), Magnitude: f(7.0)},
		{DisasterType: "Earthquake", DisasterSubgroup: "Geophysical", Country: "Turkey", Region: "Asia", Subregion: "Western Asia", Location: "Kahramanmaras", Latitude: f(37.2), Longitude: f(37.0), StartDate: day(2023, 2, 6), TotalDeaths: i(50783), TotalDamageAdjusted: f(34000000), Magnitude: f(7.8)},
		{DisasterType: "Earthquake", DisasterSubgroup: "Geophysical", Country: "Nepal", Region: "Asia", Subregion: "Southern Asia", Location: "Gorkha", Latitude: f(28.2), Longitude: f(84.7), StartDate: day(2015, 4, 25), TotalDeaths: i(8831), TotalDamageAdjusted: f(6000000), Magnitude: f(7.8)},
		{DisasterType: "Earthquake", DisasterSubgroup: "Geophysical", Country: "Italy", Region: "Europe", Subregion: "Southern Europe", Location: "Amatrice", Latitude: f(42.6), Longitude: f(13.3), StartDate: day(2016, 8, 24), TotalDeaths: i(299), TotalDamageAdjusted: f(5600000), Magnitude: f(6.2)},
		{DisasterType: "Storm", DisasterSubgroup: "Meteorological", Country: "Philippines", Region: "Asia", Subregion: "South-eastern Asia", Location: "Tacloban", Latitude: f(11.2), Longitude: f(125.0), StartDate: day(2013, 11, 8), TotalDeaths: i(7354), TotalDamageAdjusted: f(12000000), Magnitude: f(230)},
		{DisasterType: "Flood", DisasterSubgroup: "Hydrological", Country: "Pakistan", Region: "Asia", Subregion: "Southern Asia", Location: "Sindh", Latitude: f(25.9), Longitude: f(68.5), StartDate: day(2022, 6, 14), TotalDeaths: i(1739), TotalDamageAdjusted: f(16000000), Magnitude: f(75000)},
		{DisasterType: "Storm", DisasterSubgroup: "Meteorological", Country: "Myanmar", Region: "Asia", Subregion: "South-eastern Asia", Location: "Irrawaddy", Latitude: f(16.8), Longitude: f(95.2), StartDate: day(2008, 5, 2), TotalDeaths: i(138366), TotalDamageAdjusted: f(5400000), Magnitude: f(215)},
		{DisasterType: "Flood", DisasterSubgroup: "Hydrological", Country: "China", Region: "Asia", Subregion: "Eastern Asia", Location: "Henan", Latitude: f(34.8), Longitude: f(113.7), StartDate: day(2021, 7, 17), TotalDeaths: i(398), TotalDamageAdjusted: f(19000000)},
	}
	for n := range rs {
		rs[n].Row = n
		rs[n].ID = domain.RecordID(rs[n])
	}
	return rs
}

// Dataset wraps Records in a Dataset.
func Dataset() *domain.Dataset {
	return domain.NewDataset("testdata/atlas.csv", Records())
}
