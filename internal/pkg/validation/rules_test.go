package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestNormalizeDay(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Monday", "Monday", true},
		{"mon", "Monday", true},
		{" FRIDAY ", "Friday", true},
		{"thu", "Thursday", true},
		{"mo", "", false},
		{"Funday", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeDay(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("NormalizeDay(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestIdentifierAndName(t *testing.T) {
	if !IsIdentifier("BIT/2021/042") {
		t.Error("expected BIT/2021/042 to be a valid identifier")
	}
	if IsIdentifier("") || IsIdentifier("has space") {
		t.Error("expected empty and spaced identifiers to be rejected")
	}
	if !IsName("Data Structures") || IsName("   ") {
		t.Error("name validation mismatch")
	}
}

func TestRegisterValidators(t *testing.T) {
	v := validator.New()
	if err := RegisterValidators(v); err != nil {
		t.Fatalf("RegisterValidators: %v", err)
	}

	type req struct {
		Day      string `validate:"weekday"`
		Number   string `validate:"identifier"`
		TimeSlot string `validate:"timeslot"`
	}
	if err := v.Struct(req{Day: "tue", Number: "S-1", TimeSlot: "08:00-10:00"}); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}
	if err := v.Struct(req{Day: "xyz", Number: "S-1", TimeSlot: "08:00-10:00"}); err == nil {
		t.Error("expected invalid weekday to fail")
	}
}
