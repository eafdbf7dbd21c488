package errors

import (
	stderrors "errors"
	"testing"
)

func TestSourceError(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := NewSourceError("https://example.org/drugs.csv", cause)

	if !stderrors.Is(err, ErrSourceUnavailable) {
		t.Error("SourceError must match ErrSourceUnavailable")
	}
	if !stderrors.Is(err, cause) {
		t.Error("SourceError must unwrap to its cause")
	}
	want := "dataset source https://example.org/drugs.csv unavailable: connection refused"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("limit", "must be a positive integer")

	if !stderrors.Is(err, ErrInvalidInput) {
		t.Error("ValidationError must match ErrInvalidInput")
	}
	want := "validation error for field 'limit': must be a positive integer"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	fieldless := NewValidationError("", "empty body")
	if fieldless.Error() != "validation error: empty body" {
		t.Errorf("Error() = %q, want field omitted", fieldless.Error())
	}
}
