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

// CatalogRepository handles courses, subjects, instructors, semesters and
// instructor-subject assignments.
type CatalogRepository struct {
	db db.Conn
	sb squirrel.StatementBuilderType
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// UpsertCourse inserts the course or returns the existing row with that name.
// The no-op DO UPDATE makes RETURNING yield the existing row on conflict.
func (r *CatalogRepository) UpsertCourse(ctx context.Context, name string) (*models.Course, error) {
	sql, args, err := r.sb.Insert("courses").
		Columns("course_name").
		Values(name).
		Suffix("ON CONFLICT (course_name) DO UPDATE SET course_name = EXCLUDED.course_name RETURNING id, course_name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build upsert course query: %w", err)
	}

	course := &models.Course{}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&course.ID, &course.Name); err != nil {
		logger.Error().Err(err).Str("course", name).Msg("Error upserting course")
		return nil, apperrors.NewStorageError("upsert course", err)
	}
	return course, nil
}

// UpsertSubject inserts the subject under the course or returns the existing one
func (r *CatalogRepository) UpsertSubject(ctx context.Context, name string, courseID int64) (*models.Subject, error) {
	sql, args, err := r.sb.Insert("subjects").
		Columns("subject_name", "course_id").
		Values(name, courseID).
		Suffix("ON CONFLICT (subject_name, course_id) DO UPDATE SET subject_name = EXCLUDED.subject_name RETURNING id, subject_name, course_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build upsert subject query: %w", err)
	}

	subject := &models.Subject{}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&subject.ID, &subject.Name, &subject.CourseID); err != nil {
		if dberrors.IsForeignKeyError(err, "subjects_course_id_fkey") {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("course %d not found", courseID))
		}
		logger.Error().Err(err).Str("subject", name).Int64("courseID", courseID).Msg("Error upserting subject")
		return nil, apperrors.NewStorageError("upsert subject", err)
	}
	return subject, nil
}

// UpsertInstructor inserts the instructor or returns the existing one with that number
func (r *CatalogRepository) UpsertInstructor(ctx context.Context, name, number string) (*models.Instructor, error) {
	sql, args, err := r.sb.Insert("instructors").
		Columns("name", "instructor_number").
		Values(name, number).
		Suffix("ON CONFLICT (instructor_number) DO UPDATE SET instructor_number = EXCLUDED.instructor_number RETURNING id, instructor_number, name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build upsert instructor query: %w", err)
	}

	ins := &models.Instructor{}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&ins.ID, &ins.InstructorNumber, &ins.Name); err != nil {
		logger.Error().Err(err).Str("instructorNumber", number).Msg("Error upserting instructor")
		return nil, apperrors.NewStorageError("upsert instructor", err)
	}
	return ins, nil
}

// UpsertSemester ensures a catalog entry exists for the semester number
func (r *CatalogRepository) UpsertSemester(ctx context.Context, number int) (*models.Semester, error) {
	return upsertSemester(ctx, r.db, r.sb, number)
}

func upsertSemester(ctx context.Context, q db.Querier, sb squirrel.StatementBuilderType, number int) (*models.Semester, error) {
	sql, args, err := sb.Insert("semesters").
		Columns("semester_number").
		Values(number).
		Suffix("ON CONFLICT (semester_number) DO UPDATE SET semester_number = EXCLUDED.semester_number RETURNING id, semester_number").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build upsert semester query: %w", err)
	}

	sem := &models.Semester{}
	if err := q.QueryRow(ctx, sql, args...).Scan(&sem.ID, &sem.Number); err != nil {
		logger.Error().Err(err).Int("semester", number).Msg("Error upserting semester")
		return nil, apperrors.NewStorageError("upsert semester", err)
	}
	return sem, nil
}

// AssignInstructor records the subject/instructor pair; repeating it is a no-op
func (r *CatalogRepository) AssignInstructor(ctx context.Context, subjectID, instructorID int64) error {
	sql, args, err := r.sb.Insert("subject_instructors").
		Columns("subject_id", "instructor_id").
		Values(subjectID, instructorID).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build assign instructor query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		switch {
		case dberrors.IsForeignKeyError(err, "subject_instructors_subject_id_fkey"):
			return apperrors.ErrSubjectNotFound
		case dberrors.IsForeignKeyError(err, "subject_instructors_instructor_id_fkey"):
			return apperrors.ErrInstructorNotFound
		}
		logger.Error().Err(err).Int64("subjectID", subjectID).Int64("instructorID", instructorID).Msg("Error assigning instructor")
		return apperrors.NewStorageError("assign instructor", err)
	}
	return nil
}

// GetSubject retrieves a subject by ID
func (r *CatalogRepository) GetSubject(ctx context.Context, id int64) (*models.Subject, error) {
	sql, args, err := r.sb.Select("id", "subject_name", "course_id").
		From("subjects").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get subject query: %w", err)
	}

	subject := &models.Subject{}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&subject.ID, &subject.Name, &subject.CourseID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubjectNotFound
		}
		return nil, apperrors.NewStorageError("get subject", err)
	}
	return subject, nil
}

// GetInstructor retrieves an instructor by ID
func (r *CatalogRepository) GetInstructor(ctx context.Context, id int64) (*models.Instructor, error) {
	sql, args, err := r.sb.Select("id", "instructor_number", "name").
		From("instructors").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get instructor query: %w", err)
	}

	ins := &models.Instructor{}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&ins.ID, &ins.InstructorNumber, &ins.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInstructorNotFound
		}
		return nil, apperrors.NewStorageError("get instructor", err)
	}
	return ins, nil
}
