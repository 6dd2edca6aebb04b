package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestConstraintMatching(t *testing.T) {
	dup := fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23505", ConstraintName: "students_student_number_key"})
	fk := &pgconn.PgError{Code: "23503", ConstraintName: "enrollments_student_number_fkey"}

	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"duplicate on named constraint", IsDuplicateConstraintError(dup, "students_student_number_key"), true},
		{"duplicate on other constraint", IsDuplicateConstraintError(dup, "courses_name_key"), false},
		{"plain error is not duplicate", IsDuplicateConstraintError(errors.New("boom"), "x"), false},
		{"fk on named constraint", IsForeignKeyError(fk, "enrollments_student_number_fkey"), true},
		{"fk with empty name matches any", IsForeignKeyError(fk, ""), true},
		{"duplicate is not fk", IsForeignKeyError(dup, ""), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}
