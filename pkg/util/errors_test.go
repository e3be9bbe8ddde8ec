package util

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("device", "rtr9")
	if err.Error() != "device 'rtr9' not found" {
		t.Errorf("unexpected message: %s", err.Error())
	}

	wrapped := fmt.Errorf("lookup: %w", err)
	if !errors.Is(wrapped, ErrNotFound) {
		t.Error("NotFoundError should unwrap to ErrNotFound")
	}
	var nf *NotFoundError
	if !errors.As(wrapped, &nf) || nf.Kind != "device" {
		t.Errorf("errors.As should recover the NotFoundError, got %+v", nf)
	}
}

func TestValidationError(t *testing.T) {
	t.Run("single error", func(t *testing.T) {
		err := NewValidationError("field is required")
		msg := err.Error()
		if msg != "validation failed: field is required" {
			t.Errorf("unexpected message: %s", msg)
		}
		if !errors.Is(err, ErrValidationFailed) {
			t.Errorf("ValidationError should unwrap to ErrValidationFailed")
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		err := NewValidationError("field1 is required", "field2 is invalid")
		msg := err.Error()
		if !strings.Contains(msg, "field1") || !strings.Contains(msg, "field2") {
			t.Errorf("Error message should contain all errors: %s", msg)
		}
	})
}

func TestValidationBuilder(t *testing.T) {
	t.Run("no errors", func(t *testing.T) {
		v := &ValidationBuilder{}
		v.Add(true, "this should not appear")

		if v.HasErrors() {
			t.Error("Should not have errors when all conditions are true")
		}
		if err := v.Build(); err != nil {
			t.Errorf("Build() should return nil when no errors: %v", err)
		}
	})

	t.Run("accumulates", func(t *testing.T) {
		v := &ValidationBuilder{}
		v.Add(false, "first").AddErrorf("second %d", 2)

		err := v.Build()
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("Build() should return *ValidationError, got %T", err)
		}
		if len(ve.Errors) != 2 || ve.Errors[1] != "second 2" {
			t.Errorf("unexpected errors: %v", ve.Errors)
		}
	})
}
