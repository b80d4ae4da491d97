package domain

import (
	"io"
	"log/slog"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// sampleRecords is a small mixed dataset used across tests.
func sampleRecords() []DisasterRecord {
	return []DisasterRecord{
		{Row: 0, DisasterType: "Flood", DisasterSubgroup: "Hydrological", Country: "India", Region: "Asia", Subregion: "Southern Asia", Location: "Assam", StartDate: day(2005, 7, 26), TotalDeaths: intPtr(1200), TotalDamageAdjusted: floatPtr(5000), Magnitude: floatPtr(120000), Latitude: floatPtr(26.2), Longitude: floatPtr(92.9)},
		{Row: 1, DisasterType: "Earthquake", DisasterSubgroup: "Geophysical", Country: "Japan", Region: "Asia", Subregion: "Eastern Asia", Location: "Tohoku", StartDate: day(2011, 3, 11), TotalDeaths: intPtr(19846), TotalDamageAdjusted: floatPtr(275000000), Magnitude: floatPtr(9.1), Latitude: floatPtr(38.3), Longitude: floatPtr(142.4)},
		{Row: 2, DisasterType: "Storm", DisasterSubgroup: "Meteorological", Country: "United States of America", Region: "Americas", Subregion: "Northern America", Location: "New Orleans", StartDate: day(2005, 8, 29), TotalDeaths: intPtr(1833), TotalDamageAdjusted: floatPtr(200000000), Magnitude: floatPtr(280)},
		{Row: 3, DisasterType: "Flood", DisasterSubgroup: "Hydrological", Country: "Germany", Region: "Europe", Subregion: "Western Europe", Location: "Ahr valley", StartDate: day(2021, 7, 14), TotalDeaths: intPtr(196)},
		{Row: 4, DisasterType: "Earthquake", DisasterSubgroup: "Geophysical", Country: "Haiti", Region: "Americas", Subregion: "Caribbean", Location: "Port-au-Prince", StartDate: day(2010, 1, 12), TotalDeaths: intPtr(222570), Magnitude: floatPtr(7.0)},
		{Row: 5, DisasterType: "Flood", DisasterSubgroup: "Hydrological", Country: "India", Region: "Asia", Subregion: "Southern Asia", Location: "Kerala", StartDate: day(2005, 7, 26), Magnitude: floatPtr(40000)},
	}
}
