// Package domain models the cleaned global disaster dataset and the derived
// views the atlas serves.
//
// # Data Source
//
// The dataset is a pre-cleaned CSV of disaster events, one row per event,
// with category columns (disaster type, subgroup, country, region,
// subregion), a location name, coordinates, a start date, and numeric impact
// columns. It is loaded once at startup and never modified.
//
// # Null Handling
//
// Deaths, damage, magnitude and coordinates may be missing. Missing values
// are nil pointers, never zero:
//
//	Magnitude: units depend on the disaster type (Richter for earthquakes,
//	  km² for floods, kph for storms). A missing magnitude is excluded from
//	  quartile computation and the row is dropped by the magnitude pass.
//	Damage: thousand US dollars, raw and inflation-adjusted.
//	Deaths: a non-negative count. Cumulative sums treat a missing count as
//	  adding nothing.
//
// # Views
//
//	Equality filter     rows of one disaster type, file order preserved
//	Cumulative deaths   running death total per region in date order
//	Outlier trimming    IQR fences (Q1-1.5·IQR, Q3+1.5·IQR), inclusive,
//	                    applied to magnitude and then to deaths
//	Frequency pivot     subregion × type counts; rows kept when total >= T,
//	                    then columns kept when total over kept rows > T
//
// Quartiles use linear interpolation between closest ranks: the p-quantile of
// n sorted values sits at position (n-1)·p. An empty or all-null selection
// yields [ErrNoData].
//
// # Record IDs
//
// IDs are truncated SHA-256 hashes of type|country|location|date|region,
// prefixed with the slugged type, so replays produce the same keys. See [RecordID].
package domain
