package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorString(t *testing.T) {
	err := New(ErrCodeInvalidInput, "Missing parameters: %s", "'type'")
	if got, want := err.Error(), "INVALID_INPUT: Missing parameters: 'type'"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	cause := errors.New("exit status 1")
	wrapped := Wrap(ErrCodeInternal, cause, "interpreter failed")
	if got, want := wrapped.Error(), "INTERNAL_ERROR: interpreter failed: exit status 1"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(wrapped, cause) {
		t.Error("wrapped error should match its cause")
	}
}

func TestClassification(t *testing.T) {
	notFound := New(ErrCodePackageNotFound, "Library 'x' not found or could not be imported.")

	tests := []struct {
		name     string
		err      error
		code     Code
		status   int
		message  string
		notFound bool
	}{
		{"library", notFound, ErrCodePackageNotFound, http.StatusNotFound, "Library 'x' not found or could not be imported.", true},
		{"element", New(ErrCodeElementNotFound, "Element 'y' not found in library 'x'."), ErrCodeElementNotFound, http.StatusNotFound, "Element 'y' not found in library 'x'.", true},
		{"wrapped by fmt", fmt.Errorf("handler: %w", notFound), ErrCodePackageNotFound, http.StatusNotFound, "Library 'x' not found or could not be imported.", true},
		{"format", New(ErrCodeInvalidFormat, "Unsupported diagram format 'png'."), ErrCodeInvalidFormat, http.StatusBadRequest, "Unsupported diagram format 'png'.", false},
		{"package", New(ErrCodeInvalidPackage, "bad"), ErrCodeInvalidPackage, http.StatusBadRequest, "bad", false},
		{"internal", Wrap(ErrCodeInternal, errors.New("boom"), "render failed"), ErrCodeInternal, http.StatusInternalServerError, "render failed", false},
		{"plain", errors.New("plain"), "", http.StatusInternalServerError, "plain", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.code {
				t.Errorf("GetCode() = %q, want %q", got, tt.code)
			}
			if tt.code != "" && !Is(tt.err, tt.code) {
				t.Errorf("Is(%q) = false", tt.code)
			}
			if got := HTTPStatus(tt.err); got != tt.status {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.status)
			}
			if got := UserMessage(tt.err); got != tt.message {
				t.Errorf("UserMessage() = %q, want %q", got, tt.message)
			}
			if got := IsNotFound(tt.err); got != tt.notFound {
				t.Errorf("IsNotFound() = %v, want %v", got, tt.notFound)
			}
		})
	}
}

func TestIsRejectsOtherCodes(t *testing.T) {
	err := Wrap(ErrCodeInternal, New(ErrCodeInvalidInput, "inner"), "outer")
	if Is(err, ErrCodeInvalidInput) {
		t.Error("Is should stop at the outermost coded error")
	}
	if Is(nil, ErrCodeInternal) || Is(errors.New("plain"), "") {
		t.Error("Is should be false without a coded error")
	}
}
