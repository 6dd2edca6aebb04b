package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TONNY-TED/Results-Management-System/internal/app/models"
	"github.com/TONNY-TED/Results-Management-System/internal/db"
	"github.com/TONNY-TED/Results-Management-System/internal/pkg/apperrors"
	"github.com/TONNY-TED/Results-Management-System/internal/pkg/logger"
)

var studentColumns = []string{"id", "student_number", "name", "program", "current_semester"}

// StudentRepository handles student database operations
type StudentRepository struct {
	db db.Conn
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	s := &models.Student{}
	if err := row.Scan(&s.ID, &s.StudentNumber, &s.Name, &s.Program, &s.CurrentSemester); err != nil {
		return nil, err
	}
	return s, nil
}

// UpsertStudent inserts a student or fetches the existing one in a single round trip.
// The program of an existing student is only filled in when it was empty.
func (r *StudentRepository) UpsertStudent(ctx context.Context, name, number, program string) (*models.Student, error) {
	sql, args, err := r.sb.Insert("students").
		Columns("name", "student_number", "program", "current_semester").
		Values(name, number, program, 1).
		Suffix(`ON CONFLICT (student_number) DO UPDATE
			SET program = CASE WHEN students.program = '' THEN EXCLUDED.program ELSE students.program END
			RETURNING id, student_number, name, program, current_semester`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build upsert student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		logger.Error().Err(err).Str("studentNumber", number).Msg("Error upserting student")
		return nil, apperrors.NewStorageError("upsert student", err)
	}
	return student, nil
}

// GetStudentByNumber retrieves a student by the externally assigned number
func (r *StudentRepository) GetStudentByNumber(ctx context.Context, number string) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"student_number": number}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("studentNumber", number).Msg("Error scanning student row")
		return nil, apperrors.NewStorageError("get student", err)
	}
	return student, nil
}

// SetProgram assigns a program to an existing student
func (r *StudentRepository) SetProgram(ctx context.Context, number, program string) (*models.Student, error) {
	sql, args, err := r.sb.Update("students").
		Set("program", program).
		Where(squirrel.Eq{"student_number": number}).
		Suffix("RETURNING id, student_number, name, program, current_semester").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build set program query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("studentNumber", number).Msg("Error updating student program")
		return nil, apperrors.NewStorageError("set program", err)
	}
	return student, nil
}

// RegisterSemester moves the student exactly one semester forward and ensures the
// semester catalog row, in one transaction. Nothing is saved when either step fails.
func (r *StudentRepository) RegisterSemester(ctx context.Context, number string) (*models.Student, error) {
	var student *models.Student
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		s, err := r.incrementSemester(ctx, tx, number)
		if err != nil {
			return err
		}
		if _, err := upsertSemester(ctx, tx, r.sb, s.CurrentSemester); err != nil {
			return err
		}
		student = s
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) || errors.Is(err, apperrors.ErrStorage) {
			return nil, err
		}
		logger.Error().Err(err).Str("studentNumber", number).Msg("Semester registration transaction failed")
		return nil, apperrors.NewStorageError("register semester", err)
	}
	return student, nil
}

func (r *StudentRepository) incrementSemester(ctx context.Context, q db.Querier, number string) (*models.Student, error) {
	sql, args, err := r.sb.Update("students").
		Set("current_semester", squirrel.Expr("current_semester + 1")).
		Where(squirrel.Eq{"student_number": number}).
		Suffix("RETURNING id, student_number, name, program, current_semester").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build increment semester query: %w", err)
	}

	student, err := scanStudent(q.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("studentNumber", number).Msg("Error incrementing student semester")
		return nil, apperrors.NewStorageError("increment semester", err)
	}
	return student, nil
}
