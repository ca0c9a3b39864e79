package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/couchcryptid/enso-predictor-service/internal/domain"
)

const maxBodyBytes = 4 << 10

// coordinate accepts a JSON string or number so both the browser form
// (strings) and scripted clients (numbers) can call /predict.
type coordinate string

func (c *coordinate) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = coordinate(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*c = coordinate(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

type predictRequest struct {
	Latitude  coordinate `json:"latitude"`
	Longitude coordinate `json:"longitude"`
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be JSON with latitude and longitude")
		return
	}

	p, err := s.svc.Predict(r.Context(), string(req.Latitude), string(req.Longitude))
	if err != nil {
		status, msg := errorResponse(err)
		writeError(w, status, msg)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// weatherDataResponse mirrors the feature lookup contract:
// {"status":"success","data":{...}} or {"status":"error","message":"..."}.
type weatherDataResponse struct {
	Status  string                `json:"status"`
	Data    *domain.FeatureVector `json:"data,omitempty"`
	Message string                `json:"message,omitempty"`
}

func (s *Server) handleWeatherData(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	v, err := s.svc.Features(r.Context(), q.Get("lat"), q.Get("lon"))
	if err != nil {
		_, msg := errorResponse(err)
		writeJSON(w, http.StatusOK, weatherDataResponse{Status: "error", Message: msg})
		return
	}
	writeJSON(w, http.StatusOK, weatherDataResponse{Status: "success", Data: &v})
}

// errorResponse maps the error taxonomy onto a status code and user-facing message.
func errorResponse(err error) (int, string) {
	var ve *domain.ValidationError
	var se *domain.ServerError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Message
	case errors.As(err, &se):
		return http.StatusBadGateway, se.Error()
	case errors.Is(err, domain.ErrConnectivity):
		return http.StatusBadGateway, domain.ErrConnectivity.Error()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "prediction cancelled"
	default:
		return http.StatusInternalServerError, "error generating prediction"
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response body
}
