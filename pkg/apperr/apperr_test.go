package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("bad input"), http.StatusBadRequest},
		{"not found", NotFound("missing"), http.StatusNotFound},
		{"unauthorized", Unauthorized("no token"), http.StatusUnauthorized},
		{"forbidden", Forbidden("wrong role"), http.StatusForbidden},
		{"internal", Internal("boom", errors.New("db down")), http.StatusInternalServerError},
		{"plain error", errors.New("anything"), http.StatusInternalServerError},
		{"wrapped classified", fmt.Errorf("context: %w", NotFound("gone")), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPublicMessage(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := Internal("Failed to retrieve invoices", cause)

	if got := PublicMessage(err, "fallback"); got != "Failed to retrieve invoices" {
		t.Errorf("PublicMessage() = %q", got)
	}
	if got := PublicMessage(cause, "fallback"); got != "fallback" {
		t.Errorf("unclassified error should use fallback, got %q", got)
	}
}

func TestInternalKeepsCause(t *testing.T) {
	cause := errors.New("timeout")
	err := Internal("Failed to create invoice", cause)

	if !errors.Is(err, cause) {
		t.Error("cause should survive the wrap")
	}
	// Error() carries detail for logs, PublicMessage does not.
	if err.Error() != "Failed to create invoice: timeout" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestKindOf(t *testing.T) {
	if KindOf(Validation("x")) != KindValidation {
		t.Error("expected KindValidation")
	}
	if KindOf(errors.New("x")) != KindInternal {
		t.Error("unclassified errors are internal")
	}
}
