package domain

import "fmt"

// NumBands is the number of fixed latitude bands.
const NumBands = 6

// bandWidth is the latitudinal extent of one band in degrees.
const bandWidth = 30.0

// Sample is one zonal anomaly reading: the mean near-surface temperature
// anomaly (tas, °C) for a latitude slice in a given year.
type Sample struct {
	Year int     `json:"year"`
	Lat  float64 `json:"lat"`
	Tas  float64 `json:"tas"`
}

// Band is one of the six fixed 30°-wide latitude ranges. MinLat is
// inclusive, MaxLat exclusive, except band 5 which also owns +90.
type Band struct {
	ID     int     `json:"id"`
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
}

// Bands returns the static band table, id 0 southernmost.
func Bands() [NumBands]Band {
	var bands [NumBands]Band
	for i := range bands {
		bands[i] = Band{
			ID:     i,
			MinLat: -90 + bandWidth*float64(i),
			MaxLat: -60 + bandWidth*float64(i),
		}
	}
	return bands
}

// BandForLatitude maps a latitude to its owning band id. Returns false for
// latitudes outside [-90, 90].
func BandForLatitude(lat float64) (int, bool) {
	if lat < -90 || lat > 90 {
		return 0, false
	}
	if lat == 90 {
		return NumBands - 1, true
	}
	return int((lat + 90) / bandWidth), true
}

// Contains reports whether lat falls inside the band.
func (b Band) Contains(lat float64) bool {
	id, ok := BandForLatitude(lat)
	return ok && id == b.ID
}

// Label renders the band's range for legends and tooltips, e.g. "90°S–60°S".
func (b Band) Label() string {
	return formatLatitude(b.MinLat) + "–" + formatLatitude(b.MaxLat)
}

func formatLatitude(lat float64) string {
	switch {
	case lat < 0:
		return fmt.Sprintf("%g°S", -lat)
	case lat > 0:
		return fmt.Sprintf("%g°N", lat)
	default:
		return "0°"
	}
}
