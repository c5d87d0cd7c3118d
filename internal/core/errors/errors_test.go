package errors

import (
	"errors"
	"testing"
)

func TestDomainError(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		err := New(CodeUsage, "schemas path is required")
		if err.Error() != "[USAGE_ERROR] schemas path is required" {
			t.Errorf("expected [USAGE_ERROR] schemas path is required, got %s", err.Error())
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		original := errors.New("original error")
		err := Wrap(original, CodeInternal, "internal failure")
		expected := "[INTERNAL_ERROR] internal failure: original error"
		if err.Error() != expected {
			t.Errorf("expected %s, got %s", expected, err.Error())
		}
	})

	t.Run("IsCode", func(t *testing.T) {
		err := New(CodeValidationError, "invalid input")
		if !IsCode(err, CodeValidationError) {
			t.Error("expected IsCode to return true for CodeValidationError")
		}
		if IsCode(err, CodeNotFound) {
			t.Error("expected IsCode to return false for CodeNotFound")
		}
	})

	t.Run("IsCodeWithWrapped", func(t *testing.T) {
		original := errors.New("original error")
		err := Wrap(original, CodeParseError, "parse failure")
		if !IsCode(err, CodeParseError) {
			t.Error("expected IsCode to return true for wrapped CodeParseError")
		}
	})

	t.Run("AddContext", func(t *testing.T) {
		err := New(CodeParseError, "parse failure")
		err = AddContext(err, CtxPath, "schemas/user.ts")
		var de *DomainError
		if !errors.As(err, &de) {
			t.Fatal("expected a DomainError")
		}
		if de.Context[CtxPath] != "schemas/user.ts" {
			t.Errorf("expected path context, got %v", de.Context)
		}
	})
}
