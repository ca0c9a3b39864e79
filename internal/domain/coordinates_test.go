package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		lat     string
		lon     string
		want    Coordinates
		wantMsg string
	}{
		{name: "valid", lat: "-6.2", lon: "106.8", want: Coordinates{Lat: -6.2, Lon: 106.8}},
		{name: "bounds inclusive", lat: "90", lon: "-180", want: Coordinates{Lat: 90, Lon: -180}},
		{name: "whitespace", lat: " 12 ", lon: " 34 ", want: Coordinates{Lat: 12, Lon: 34}},
		{name: "missing latitude", lat: "", lon: "10", wantMsg: "Please enter both latitude and longitude"},
		{name: "missing longitude", lat: "10", lon: "  ", wantMsg: "Please enter both latitude and longitude"},
		{name: "latitude too high", lat: "90.0001", lon: "0", wantMsg: "Latitude must be between -90 and 90"},
		{name: "latitude too low", lat: "-91", lon: "0", wantMsg: "Latitude must be between -90 and 90"},
		{name: "longitude out of range", lat: "0", lon: "180.5", wantMsg: "Longitude must be between -180 and 180"},
		{name: "not numeric", lat: "north", lon: "0", wantMsg: "Latitude and longitude must be numbers"},
		{name: "nan", lat: "NaN", lon: "0", wantMsg: "Latitude and longitude must be numbers"},
		{name: "infinite", lat: "0", lon: "+Inf", wantMsg: "Latitude and longitude must be numbers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCoordinates(tt.lat, tt.lon)
			if tt.wantMsg == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantMsg, ve.Message)
			assert.Equal(t, "validation", ErrorKind(err))
		})
	}
}

func TestCoordinates_Strings(t *testing.T) {
	lat, lon := Coordinates{Lat: -6.25, Lon: 106}.Strings()
	assert.Equal(t, "-6.25", lat)
	assert.Equal(t, "106", lon)
}

func TestErrorKind(t *testing.T) {
	assert.Empty(t, ErrorKind(nil))
	assert.Equal(t, "server", ErrorKind(&ServerError{Status: 500, Message: "boom"}))
	assert.Equal(t, "connectivity", ErrorKind(errors.Join(ErrConnectivity, errors.New("dial tcp"))))
	assert.Equal(t, "internal", ErrorKind(errors.New("other")))
}

func TestServerError_Message(t *testing.T) {
	assert.Equal(t, "model offline", (&ServerError{Status: 503, Message: "model offline"}).Error())
	assert.Equal(t, "prediction service returned status 502", (&ServerError{Status: 502}).Error())
}
