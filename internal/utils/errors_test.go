package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{E(CodeInvalidArgument, "op", "bad", nil), http.StatusBadRequest},
		{E(CodeUnauthorized, "op", "nope", nil), http.StatusUnauthorized},
		{E(CodeNotFound, "op", "gone", nil), http.StatusNotFound},
		{E(CodeUnavailable, "op", "down", nil), http.StatusServiceUnavailable},
		{E(CodeInternal, "op", "boom", nil), http.StatusInternalServerError},
		{ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", ErrNotFound), http.StatusNotFound},
		{errors.New("anything else"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestIsCodeSeesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", E(CodeNotFound, "CVService.Get", "cv not found", ErrNotFound))
	if !IsCode(err, CodeNotFound) {
		t.Fatalf("expected NOT_FOUND through wrapping")
	}
	if IsCode(err, CodeInternal) {
		t.Fatalf("unexpected INTERNAL match")
	}
}

func TestAppErrorMessage(t *testing.T) {
	err := E(CodeInternal, "CVService.Upload", "failed to persist cv", errors.New("disk full"))
	got := err.Error()
	want := "CVService.Upload: failed to persist cv: disk full"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
