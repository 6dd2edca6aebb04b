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
	"github.com/TONNY-TED/Results-Management-System/internal/pkg/dberrors"
	"github.com/TONNY-TED/Results-Management-System/internal/pkg/logger"
)

const resultReturning = "RETURNING id, student_number, semester_number, subject_id, marks, grade"

// ResultRepository handles exam results and supplementary exams
type ResultRepository struct {
	db db.Conn
	sb squirrel.StatementBuilderType
}

// NewResultRepository creates a new ResultRepository
func NewResultRepository(db *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanResult(row pgx.Row) (*models.ResultRecord, error) {
	r := &models.ResultRecord{}
	if err := row.Scan(&r.ID, &r.StudentNumber, &r.SemesterNumber, &r.SubjectID, &r.Marks, &r.Grade); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ResultRepository) upsertResult(ctx context.Context, q db.Querier, rec *models.ResultRecord) (*models.ResultRecord, error) {
	sql, args, err := r.sb.Insert("results").
		Columns("student_number", "semester_number", "subject_id", "marks", "grade").
		Values(rec.StudentNumber, rec.SemesterNumber, rec.SubjectID, rec.Marks, rec.Grade).
		Suffix("ON CONFLICT ON CONSTRAINT results_student_semester_subject_key DO UPDATE SET marks = EXCLUDED.marks, grade = EXCLUDED.grade " + resultReturning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build upsert result query: %w", err)
	}

	saved, err := scanResult(q.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsForeignKeyError(err, "results_student_number_fkey") {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("studentNumber", rec.StudentNumber).Int64("subjectID", rec.SubjectID).Msg("Error upserting result")
		return nil, apperrors.NewStorageError("upsert result", err)
	}
	return saved, nil
}

// UpsertResult writes the result for (student, semester, subject)
func (r *ResultRepository) UpsertResult(ctx context.Context, rec *models.ResultRecord) (*models.ResultRecord, error) {
	return r.upsertResult(ctx, r.db, rec)
}

// RecordSupplementary stores the SUP attempt, then updates the matching result in
// place or inserts it when the student had none.
func (r *ResultRepository) RecordSupplementary(ctx context.Context, sup *models.SupplementaryExam, grade string) (*models.ResultRecord, error) {
	var saved *models.ResultRecord
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		supSQL, supArgs, err := r.sb.Insert("sup_exams").
			Columns("student_number", "semester_number", "subject_id", "status", "marks").
			Values(sup.StudentNumber, sup.SemesterNumber, sup.SubjectID, string(sup.Status), sup.Marks).
			Suffix("RETURNING id, created_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build insert sup query: %w", err)
		}
		if err := tx.QueryRow(ctx, supSQL, supArgs...).Scan(&sup.ID, &sup.CreatedAt); err != nil {
			if dberrors.IsForeignKeyError(err, "sup_exams_student_number_fkey") {
				return apperrors.ErrStudentNotFound
			}
			return apperrors.NewStorageError("insert sup exam", err)
		}

		updSQL, updArgs, err := r.sb.Update("results").
			SetMap(map[string]interface{}{"marks": sup.Marks, "grade": grade}).
			Where(squirrel.Eq{
				"student_number":  sup.StudentNumber,
				"semester_number": sup.SemesterNumber,
				"subject_id":      sup.SubjectID,
			}).
			Suffix(resultReturning).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build update result query: %w", err)
		}

		saved, err = scanResult(tx.QueryRow(ctx, updSQL, updArgs...))
		if err == nil {
			return nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewStorageError("update result", err)
		}

		saved, err = r.upsertResult(ctx, tx, &models.ResultRecord{
			StudentNumber:  sup.StudentNumber,
			SemesterNumber: sup.SemesterNumber,
			SubjectID:      sup.SubjectID,
			Marks:          sup.Marks,
			Grade:          grade,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// ListResults lists a student's results ordered by semester and subject name
func (r *ResultRepository) ListResults(ctx context.Context, studentNumber string, semester int) ([]models.ResultRecord, error) {
	q := r.sb.Select("r.id", "r.student_number", "r.semester_number", "r.subject_id", "s.subject_name", "r.marks", "r.grade").
		From("results r").
		Join("subjects s ON s.id = r.subject_id").
		Where(squirrel.Eq{"r.student_number": studentNumber})
	if semester != models.AllSemesters {
		q = q.Where(squirrel.Eq{"r.semester_number": semester})
	}

	sql, args, err := q.OrderBy("r.semester_number", "s.subject_name").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list results query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("studentNumber", studentNumber).Msg("Error listing results")
		return nil, apperrors.NewStorageError("list results", err)
	}
	defer rows.Close()

	var out []models.ResultRecord
	for rows.Next() {
		var rec models.ResultRecord
		if err := rows.Scan(&rec.ID, &rec.StudentNumber, &rec.SemesterNumber, &rec.SubjectID, &rec.SubjectName, &rec.Marks, &rec.Grade); err != nil {
			return nil, apperrors.NewStorageError("scan result", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("iterate results", err)
	}
	return out, nil
}
