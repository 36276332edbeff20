package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{ErrUnauthorized, http.StatusUnauthorized},
		{fmt.Errorf("%w: File ID is required", ErrBadRequest), http.StatusBadRequest},
		{fmt.Errorf("%w: drive 404", ErrUpstreamFetch), http.StatusInternalServerError},
		{fmt.Errorf("%w: empty text", ErrOCR), http.StatusInternalServerError},
		{fmt.Errorf("%w: no json", ErrInterpretation), http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := Status(c.err); got != c.want {
			t.Fatalf("Status(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestKind(t *testing.T) {
	if got := Kind(fmt.Errorf("pipeline: %w", fmt.Errorf("%w: x", ErrOCR))); got != "ocr" {
		t.Fatalf("expected ocr, got %s", got)
	}
	if got := Kind(errors.New("boom")); got != "unknown" {
		t.Fatalf("expected unknown, got %s", got)
	}
}
