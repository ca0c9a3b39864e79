package domain

import (
	"math"
	"strconv"
	"strings"
)

// Coordinates is a validated WGS-84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Validation messages surfaced to users verbatim.
const (
	msgMissing      = "Please enter both latitude and longitude"
	msgNotNumeric   = "Latitude and longitude must be numbers"
	msgLatitudeOOR  = "Latitude must be between -90 and 90"
	msgLongitudeOOR = "Longitude must be between -180 and 180"
)

// ValidationError reports a rejected coordinate. Nothing is sampled or sent
// once one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ParseCoordinates parses and range-checks latitude and longitude strings.
func ParseCoordinates(lat, lon string) (Coordinates, error) {
	lat, lon = strings.TrimSpace(lat), strings.TrimSpace(lon)
	if lat == "" || lon == "" {
		return Coordinates{}, &ValidationError{Field: "coordinates", Message: msgMissing}
	}

	latV, err := parseCoordinate(lat)
	if err != nil {
		return Coordinates{}, &ValidationError{Field: "latitude", Message: msgNotNumeric}
	}
	lonV, err := parseCoordinate(lon)
	if err != nil {
		return Coordinates{}, &ValidationError{Field: "longitude", Message: msgNotNumeric}
	}

	c := Coordinates{Lat: latV, Lon: lonV}
	if err := c.Validate(); err != nil {
		return Coordinates{}, err
	}
	return c, nil
}

// Validate range-checks an already numeric point.
func (c Coordinates) Validate() error {
	if c.Lat < -90 || c.Lat > 90 || math.IsNaN(c.Lat) {
		return &ValidationError{Field: "latitude", Message: msgLatitudeOOR}
	}
	if c.Lon < -180 || c.Lon > 180 || math.IsNaN(c.Lon) {
		return &ValidationError{Field: "longitude", Message: msgLongitudeOOR}
	}
	return nil
}

// Strings formats the point for the remote wire contract.
func (c Coordinates) Strings() (lat, lon string) {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64), strconv.FormatFloat(c.Lon, 'f', -1, 64)
}

func parseCoordinate(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrSyntax
	}
	return v, nil
}
