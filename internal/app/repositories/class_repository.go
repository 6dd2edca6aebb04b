package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TONNY-TED/Results-Management-System/internal/app/models"
	"github.com/TONNY-TED/Results-Management-System/internal/db"
	"github.com/TONNY-TED/Results-Management-System/internal/domain"
	"github.com/TONNY-TED/Results-Management-System/internal/pkg/apperrors"
	"github.com/TONNY-TED/Results-Management-System/internal/pkg/dberrors"
	"github.com/TONNY-TED/Results-Management-System/internal/pkg/logger"
	"github.com/TONNY-TED/Results-Management-System/internal/pkg/validation"
)

// ClassRepository handles class slots and student allocations
type ClassRepository struct {
	db db.Conn
	sb squirrel.StatementBuilderType
}

// NewClassRepository creates a new ClassRepository
func NewClassRepository(db *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// slotTx runs the scheduling checks against an open transaction
type slotTx struct {
	q  db.Querier
	sb squirrel.StatementBuilderType
}

func (t *slotTx) exists(ctx context.Context, from string, where squirrel.Sqlizer) (bool, error) {
	sql, args, err := t.sb.Select("1").
		From(from).
		Where(where).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build exists query: %w", err)
	}

	var found bool
	if err := t.q.QueryRow(ctx, sql, args...).Scan(&found); err != nil {
		return false, apperrors.NewStorageError("check "+from, err)
	}
	return found, nil
}

// RoomBooked reports whether any class occupies the room at day/timeSlot
func (t *slotTx) RoomBooked(ctx context.Context, room, day, timeSlot string) (bool, error) {
	return t.exists(ctx, "classes", squirrel.Eq{"room": room, "day": day, "time_slot": timeSlot})
}

// InstructorBooked reports whether the instructor already teaches at day/timeSlot
func (t *slotTx) InstructorBooked(ctx context.Context, instructorID int64, day, timeSlot string) (bool, error) {
	return t.exists(ctx, "classes", squirrel.Eq{"instructor_id": instructorID, "day": day, "time_slot": timeSlot})
}

// InstructorAssigned reports whether the instructor may teach the subject
func (t *slotTx) InstructorAssigned(ctx context.Context, subjectID, instructorID int64) (bool, error) {
	return t.exists(ctx, "subject_instructors", squirrel.Eq{"subject_id": subjectID, "instructor_id": instructorID})
}

// InsertClass stores the slot and returns its ID
func (t *slotTx) InsertClass(ctx context.Context, slot *models.ClassSlot) (int64, error) {
	sql, args, err := t.sb.Insert("classes").
		Columns("day", "time_slot", "subject_id", "instructor_id", "room", "semester_number").
		Values(slot.Day, slot.TimeSlot, slot.SubjectID, slot.InstructorID, slot.Room, slot.SemesterNumber).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build insert class query: %w", err)
	}

	var id int64
	if err := t.q.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, apperrors.NewStorageError("insert class", err)
	}
	return id, nil
}

// WithSlotLocks opens a transaction, takes an advisory lock per key and runs fn.
// Errors returned by fn pass through untouched; failures of the transaction itself
// are reported as storage errors.
func (r *ClassRepository) WithSlotLocks(ctx context.Context, keys []string, fn func(ctx context.Context, tx domain.SlotTx) error) error {
	var fnErr error
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		for _, key := range keys {
			if err := db.AdvisoryXactLock(ctx, tx, key); err != nil {
				return apperrors.NewStorageError("lock slot", err)
			}
		}
		fnErr = fn(ctx, &slotTx{q: tx, sb: r.sb})
		return fnErr
	})
	if err != nil && fnErr == nil && !errors.Is(err, apperrors.ErrStorage) {
		logger.Error().Err(err).Strs("keys", keys).Msg("Class scheduling transaction failed")
		return apperrors.NewStorageError("schedule transaction", err)
	}
	return err
}

// weekdayOrder sorts class days Monday first instead of alphabetically
var weekdayOrder = "array_position(ARRAY['" + strings.Join(validation.Weekdays, "','") + "']::text[], c.day::text)"

func (r *ClassRepository) classQuery() squirrel.SelectBuilder {
	return r.sb.Select(
		"c.id", "c.day", "c.time_slot", "c.subject_id", "c.instructor_id", "c.room", "c.semester_number",
		"s.subject_name", "s.course_id", "i.instructor_number", "i.name",
	).
		From("classes c").
		Join("subjects s ON s.id = c.subject_id").
		Join("instructors i ON i.id = c.instructor_id")
}

func scanClass(row pgx.Row) (*models.ClassSlot, error) {
	c := &models.ClassSlot{Subject: &models.Subject{}, Instructor: &models.Instructor{}}
	err := row.Scan(&c.ID, &c.Day, &c.TimeSlot, &c.SubjectID, &c.InstructorID, &c.Room, &c.SemesterNumber,
		&c.Subject.Name, &c.Subject.CourseID, &c.Instructor.InstructorNumber, &c.Instructor.Name)
	if err != nil {
		return nil, err
	}
	c.Subject.ID = c.SubjectID
	c.Instructor.ID = c.InstructorID
	return c, nil
}

// GetClass retrieves a class slot with its subject and instructor
func (r *ClassRepository) GetClass(ctx context.Context, id int64) (*models.ClassSlot, error) {
	sql, args, err := r.classQuery().Where(squirrel.Eq{"c.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get class query: %w", err)
	}

	class, err := scanClass(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClassNotFound
		}
		logger.Error().Err(err).Int64("classID", id).Msg("Error scanning class row")
		return nil, apperrors.NewStorageError("get class", err)
	}
	return class, nil
}

// ListClasses lists class slots matching the filter, ordered for a timetable view
func (r *ClassRepository) ListClasses(ctx context.Context, filter models.ClassFilter) ([]*models.ClassSlot, error) {
	q := r.classQuery()
	if filter.SemesterNumber > 0 {
		q = q.Where(squirrel.Eq{"c.semester_number": filter.SemesterNumber})
	}
	if filter.Day != "" {
		q = q.Where(squirrel.Eq{"c.day": filter.Day})
	}
	if filter.InstructorID > 0 {
		q = q.Where(squirrel.Eq{"c.instructor_id": filter.InstructorID})
	}
	if filter.Room != "" {
		q = q.Where(squirrel.Eq{"c.room": filter.Room})
	}

	sql, args, err := q.OrderBy("c.semester_number", weekdayOrder, "c.time_slot", "c.room").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list classes query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list classes query")
		return nil, apperrors.NewStorageError("list classes", err)
	}
	defer rows.Close()

	classes := []*models.ClassSlot{}
	for rows.Next() {
		class, err := scanClass(rows)
		if err != nil {
			return nil, apperrors.NewStorageError("scan class", err)
		}
		classes = append(classes, class)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("iterate classes", err)
	}
	return classes, nil
}

// Enroll allocates the student to the class if the pair is not present yet
func (r *ClassRepository) Enroll(ctx context.Context, studentNumber string, classID int64) (bool, error) {
	sql, args, err := r.sb.Insert("student_classes").
		Columns("student_number", "class_id").
		Values(studentNumber, classID).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build enroll query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		switch {
		case dberrors.IsForeignKeyError(err, "student_classes_student_number_fkey"):
			return false, apperrors.ErrStudentNotFound
		case dberrors.IsForeignKeyError(err, "student_classes_class_id_fkey"):
			return false, apperrors.ErrClassNotFound
		}
		logger.Error().Err(err).Str("studentNumber", studentNumber).Int64("classID", classID).Msg("Error enrolling student")
		return false, apperrors.NewStorageError("enroll student", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ListEnrollments lists the students allocated to a class
func (r *ClassRepository) ListEnrollments(ctx context.Context, classID int64) ([]models.Enrollment, error) {
	sql, args, err := r.sb.Select("student_number", "class_id").
		From("student_classes").
		Where(squirrel.Eq{"class_id": classID}).
		OrderBy("student_number").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list enrollments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperrors.NewStorageError("list enrollments", err)
	}
	defer rows.Close()

	var out []models.Enrollment
	for rows.Next() {
		var e models.Enrollment
		if err := rows.Scan(&e.StudentNumber, &e.ClassSlotID); err != nil {
			return nil, apperrors.NewStorageError("scan enrollment", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("iterate enrollments", err)
	}
	return out, nil
}
