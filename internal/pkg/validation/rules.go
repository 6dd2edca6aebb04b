package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validation rule patterns
var (
	// Student and instructor numbers are externally assigned, e.g. "BIT/2021/042"
	IdentifierPattern = `^[A-Za-z0-9][A-Za-z0-9/\-_.]{0,19}$`

	// Time slot labels such as "08:00-10:00" or "Morning"
	TimeSlotPattern = `^[A-Za-z0-9:\- ]{1,20}$`

	// Name validation min/max length
	NameMinLength = 1
	NameMaxLength = 100

	// Room labels fit the original VARCHAR(20) column
	RoomMaxLength = 20
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Identifier *regexp.Regexp
	TimeSlot   *regexp.Regexp
}{
	Identifier: regexp.MustCompile(IdentifierPattern),
	TimeSlot:   regexp.MustCompile(TimeSlotPattern),
}

// Weekdays lists the canonical day labels stored on class slots.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// NormalizeDay maps "mon", "MONDAY" or "Monday" onto the canonical label.
func NormalizeDay(day string) (string, bool) {
	d := strings.ToLower(strings.TrimSpace(day))
	if len(d) < 3 {
		return "", false
	}
	for _, w := range Weekdays {
		lw := strings.ToLower(w)
		if d == lw || d == lw[:3] {
			return w, true
		}
	}
	return "", false
}

// StringValidation is a fluent builder for string field checks
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    strings.TrimSpace(value),
		Required: true,
	}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	if v.Required && v.Value == "" {
		return false
	}
	if !v.Required && v.Value == "" {
		return true
	}
	if v.MinLen > 0 && len(v.Value) < v.MinLen {
		return false
	}
	if v.MaxLen > 0 && len(v.Value) > v.MaxLen {
		return false
	}
	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}
	return true
}

// IsName reports whether s is a usable entity name
func IsName(s string) bool {
	return NewStringValidation(s).WithMinLength(NameMinLength).WithMaxLength(NameMaxLength).Validate()
}

// IsIdentifier reports whether s is a usable student/instructor number
func IsIdentifier(s string) bool {
	return NewStringValidation(s).WithPattern(CompiledPatterns.Identifier).Validate()
}

// RegisterValidators installs the custom struct tags used by request DTOs.
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		_, ok := NormalizeDay(fl.Field().String())
		return ok
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation("identifier", func(fl validator.FieldLevel) bool {
		return IsIdentifier(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("timeslot", func(fl validator.FieldLevel) bool {
		return CompiledPatterns.TimeSlot.MatchString(strings.TrimSpace(fl.Field().String()))
	})
}
