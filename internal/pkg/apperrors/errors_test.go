package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestStorageErrorMatchesSentinelAndCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStorageError("insert payment", cause)

	if !errors.Is(err, ErrStorage) {
		t.Fatalf("expected ErrStorage in chain, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected driver cause in chain, got %v", err)
	}
	if got, want := err.Error(), "insert payment: connection refused"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestCustomErrorDetailsSurviveWrapping(t *testing.T) {
	base := NewCustomError(ErrRoomConflict, "room A1 busy").
		WithDetails(map[string]interface{}{"room": "A1"})
	wrapped := fmt.Errorf("schedule class: %w", base)

	if !errors.Is(wrapped, ErrRoomConflict) {
		t.Fatal("expected ErrRoomConflict in chain")
	}
	details := DetailsOf(wrapped)
	if details["room"] != "A1" {
		t.Errorf("details[room] = %v, want A1", details["room"])
	}
	if DetailsOf(errors.New("plain")) != nil {
		t.Error("plain errors carry no details")
	}
}

func TestIsMatchesAnyListedError(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", ErrNoFeeStructure)
	if !Is(err, ErrStudentNotFound, ErrAccessDenied, ErrNoFeeStructure) {
		t.Error("expected match on ErrNoFeeStructure")
	}
	if Is(err, ErrStudentNotFound, ErrAccessDenied) {
		t.Error("unexpected match")
	}
}
