package domain

import (
	"errors"
	"fmt"
)

// ErrConnectivity marks transport failures talking to a prediction backend.
var ErrConnectivity = errors.New("unable to reach prediction service")

// ServerError carries a failure reported by a remote prediction backend.
// Message is the backend's error string, shown verbatim.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("prediction service returned status %d", e.Status)
	}
	return e.Message
}

// ErrorKind buckets an error for metrics and HTTP status mapping.
func ErrorKind(err error) string {
	var ve *ValidationError
	var se *ServerError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ve):
		return "validation"
	case errors.As(err, &se):
		return "server"
	case errors.Is(err, ErrConnectivity):
		return "connectivity"
	default:
		return "internal"
	}
}
