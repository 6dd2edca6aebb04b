// Package domain declares the storage contracts the engines depend on. The
// PostgreSQL implementations live in internal/app/repositories.
package domain

import (
	"context"
	"time"

	"github.com/TONNY-TED/Results-Management-System/internal/app/models"
)

// StudentStore persists students.
type StudentStore interface {
	// UpsertStudent inserts the student or returns the existing row for the number in
	// one statement. An existing student with an empty program adopts program.
	UpsertStudent(ctx context.Context, name, number, program string) (*models.Student, error)
	GetStudentByNumber(ctx context.Context, number string) (*models.Student, error)
	SetProgram(ctx context.Context, number, program string) (*models.Student, error)
	// RegisterSemester adds exactly one to current_semester and ensures the semester
	// catalog entry, atomically, and returns the updated row.
	RegisterSemester(ctx context.Context, number string) (*models.Student, error)
}

// CatalogStore persists the named catalog entities. Every Upsert is an atomic
// insert-or-fetch on the natural key.
type CatalogStore interface {
	UpsertCourse(ctx context.Context, name string) (*models.Course, error)
	UpsertSubject(ctx context.Context, name string, courseID int64) (*models.Subject, error)
	UpsertInstructor(ctx context.Context, name, number string) (*models.Instructor, error)
	UpsertSemester(ctx context.Context, number int) (*models.Semester, error)
	AssignInstructor(ctx context.Context, subjectID, instructorID int64) error
	GetSubject(ctx context.Context, id int64) (*models.Subject, error)
	GetInstructor(ctx context.Context, id int64) (*models.Instructor, error)
}

// SlotTx exposes the checks and the insert of a class slot inside one transaction
// that holds the slot locks.
type SlotTx interface {
	RoomBooked(ctx context.Context, room, day, timeSlot string) (bool, error)
	InstructorBooked(ctx context.Context, instructorID int64, day, timeSlot string) (bool, error)
	InstructorAssigned(ctx context.Context, subjectID, instructorID int64) (bool, error)
	InsertClass(ctx context.Context, slot *models.ClassSlot) (int64, error)
}

// ClassStore persists class slots and enrollments.
type ClassStore interface {
	// WithSlotLocks runs fn in a transaction after taking exclusive locks on every key,
	// in the order given. The locks are held until fn returns.
	WithSlotLocks(ctx context.Context, keys []string, fn func(ctx context.Context, tx SlotTx) error) error
	GetClass(ctx context.Context, id int64) (*models.ClassSlot, error)
	ListClasses(ctx context.Context, filter models.ClassFilter) ([]*models.ClassSlot, error)
	// Enroll inserts the pair if absent and reports whether a row was added.
	Enroll(ctx context.Context, studentNumber string, classID int64) (bool, error)
	ListEnrollments(ctx context.Context, classID int64) ([]models.Enrollment, error)
}

// FeeStore persists fee structures.
type FeeStore interface {
	UpsertFeeStructure(ctx context.Context, fee *models.FeeStructure) (*models.FeeStructure, error)
	// GetFeeStructure returns apperrors.ErrNoFeeStructure when none exists.
	GetFeeStructure(ctx context.Context, program string, semester int) (*models.FeeStructure, error)
}

// PaymentStore persists the append-only payment ledger.
type PaymentStore interface {
	InsertPayment(ctx context.Context, p *models.Payment) (*models.Payment, error)
	SumPayments(ctx context.Context, studentNumber string, semester int) (float64, error)
	ListPayments(ctx context.Context, studentNumber string) ([]*models.Payment, error)
}

// ResultStore persists results and supplementary exams.
type ResultStore interface {
	UpsertResult(ctx context.Context, r *models.ResultRecord) (*models.ResultRecord, error)
	// RecordSupplementary inserts the SUP row and then updates the matching result in
	// place, inserting it when missing, in one transaction.
	RecordSupplementary(ctx context.Context, sup *models.SupplementaryExam, grade string) (*models.ResultRecord, error)
	// ListResults returns the student's results ordered by semester then subject;
	// semester == models.AllSemesters returns every semester.
	ListResults(ctx context.Context, studentNumber string, semester int) ([]models.ResultRecord, error)
}

// Clock supplies the current time.
type Clock func() time.Time
