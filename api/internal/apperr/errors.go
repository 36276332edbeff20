package apperr

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthorized means the request carried no usable access credential.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrBadRequest means a required input field is missing or malformed.
	ErrBadRequest = errors.New("bad request")
	// ErrUpstreamFetch means a Classroom or Drive call did not succeed.
	ErrUpstreamFetch = errors.New("upstream fetch failed")
	// ErrOCR means the OCR provider failed or produced no text.
	ErrOCR = errors.New("ocr failed")
	// ErrInterpretation means no usable analysis could be read from the model reply.
	ErrInterpretation = errors.New("interpretation failed")
)

// Status maps an error to the HTTP status returned to the caller.
// Anything that is not a caller mistake is a 500.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Kind returns a short stable label for logs and metrics.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrBadRequest):
		return "bad_request"
	case errors.Is(err, ErrUpstreamFetch):
		return "upstream_fetch"
	case errors.Is(err, ErrOCR):
		return "ocr"
	case errors.Is(err, ErrInterpretation):
		return "interpretation"
	default:
		return "unknown"
	}
}
