package helpers

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/TONNY-TED/Results-Management-System/internal/pkg/apperrors"
)

// ParseAmount parses a money amount; malformed or non-finite input yields ErrInvalidInput.
func ParseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, apperrors.NewInvalidInputError(fmt.Sprintf("invalid amount %q", s))
	}
	return v, nil
}

// ParseMarks parses exam marks and checks the 0..100 range.
func ParseMarks(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 || v > 100 {
		return 0, apperrors.NewInvalidInputError(fmt.Sprintf("invalid marks %q, expected a number between 0 and 100", s))
	}
	return v, nil
}

// ParsePositiveInt parses a strictly positive integer such as a semester number or an ID.
func ParsePositiveInt(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return 0, apperrors.NewInvalidInputError(fmt.Sprintf("invalid number %q, expected a positive integer", s))
	}
	return v, nil
}
