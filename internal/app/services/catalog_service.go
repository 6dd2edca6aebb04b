package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/TONNY-TED/Results-Management-System/internal/app/models"
	"github.com/TONNY-TED/Results-Management-System/internal/domain"
	"github.com/TONNY-TED/Results-Management-System/internal/pkg/apperrors"
	"github.com/TONNY-TED/Results-Management-System/internal/pkg/validation"
)

// CatalogService defines the interface for catalog operations. Every ResolveOrCreate
// call returns the existing entity for the natural key or creates it, atomically.
type CatalogService interface {
	ResolveOrCreateStudent(ctx context.Context, name, number, program string) (*models.Student, error)
	ResolveOrCreateCourse(ctx context.Context, name string) (*models.Course, error)
	ResolveOrCreateSubject(ctx context.Context, name string, courseID int64) (*models.Subject, error)
	ResolveOrCreateInstructor(ctx context.Context, name, number string) (*models.Instructor, error)
	ResolveOrCreateSemester(ctx context.Context, number int) (*models.Semester, error)
	AssignInstructor(ctx context.Context, subjectID, instructorID int64) error
	GetStudent(ctx context.Context, number string) (*models.Student, error)
	AssignProgram(ctx context.Context, number, program string) (*models.Student, error)
}

type catalogServiceImpl struct {
	students domain.StudentStore
	catalog  domain.CatalogStore
}

// NewCatalogService creates a new catalog service instance
func NewCatalogService(students domain.StudentStore, catalog domain.CatalogStore) CatalogService {
	return &catalogServiceImpl{
		students: students,
		catalog:  catalog,
	}
}

func requireName(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if !validation.IsName(value) {
		return "", apperrors.NewInvalidInputError(fmt.Sprintf("%s must be 1-%d characters", field, validation.NameMaxLength))
	}
	return value, nil
}

func requireIdentifier(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if !validation.IsIdentifier(value) {
		return "", apperrors.NewInvalidInputError(fmt.Sprintf("%s %q is not a valid identifier", field, value))
	}
	return value, nil
}

func requireSemester(n int) error {
	if n < 1 {
		return apperrors.NewInvalidInputError(fmt.Sprintf("semester must be at least 1, got %d", n))
	}
	return nil
}

// ResolveOrCreateStudent returns the student with number, creating it when absent.
// An existing student with no program adopts the given one.
func (s *catalogServiceImpl) ResolveOrCreateStudent(ctx context.Context, name, number, program string) (*models.Student, error) {
	name, err := requireName("student name", name)
	if err != nil {
		return nil, err
	}
	number, err = requireIdentifier("student number", number)
	if err != nil {
		return nil, err
	}
	return s.students.UpsertStudent(ctx, name, number, strings.TrimSpace(program))
}

func (s *catalogServiceImpl) ResolveOrCreateCourse(ctx context.Context, name string) (*models.Course, error) {
	name, err := requireName("course name", name)
	if err != nil {
		return nil, err
	}
	return s.catalog.UpsertCourse(ctx, name)
}

func (s *catalogServiceImpl) ResolveOrCreateSubject(ctx context.Context, name string, courseID int64) (*models.Subject, error) {
	name, err := requireName("subject name", name)
	if err != nil {
		return nil, err
	}
	if courseID <= 0 {
		return nil, apperrors.NewInvalidInputError("course ID must be positive")
	}
	return s.catalog.UpsertSubject(ctx, name, courseID)
}

func (s *catalogServiceImpl) ResolveOrCreateInstructor(ctx context.Context, name, number string) (*models.Instructor, error) {
	name, err := requireName("instructor name", name)
	if err != nil {
		return nil, err
	}
	number, err = requireIdentifier("instructor number", number)
	if err != nil {
		return nil, err
	}
	return s.catalog.UpsertInstructor(ctx, name, number)
}

func (s *catalogServiceImpl) ResolveOrCreateSemester(ctx context.Context, number int) (*models.Semester, error) {
	if err := requireSemester(number); err != nil {
		return nil, err
	}
	return s.catalog.UpsertSemester(ctx, number)
}

// AssignInstructor makes an instructor eligible to teach a subject. Repeating it is a no-op.
func (s *catalogServiceImpl) AssignInstructor(ctx context.Context, subjectID, instructorID int64) error {
	if subjectID <= 0 || instructorID <= 0 {
		return apperrors.NewInvalidInputError("subject and instructor IDs must be positive")
	}
	return s.catalog.AssignInstructor(ctx, subjectID, instructorID)
}

func (s *catalogServiceImpl) GetStudent(ctx context.Context, number string) (*models.Student, error) {
	return s.students.GetStudentByNumber(ctx, strings.TrimSpace(number))
}

// AssignProgram sets the program that keys the student's fee structures
func (s *catalogServiceImpl) AssignProgram(ctx context.Context, number, program string) (*models.Student, error) {
	program, err := requireName("program", program)
	if err != nil {
		return nil, err
	}
	return s.students.SetProgram(ctx, strings.TrimSpace(number), program)
}
