package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/TONNY-TED/Results-Management-System/internal/app/models"
	"github.com/TONNY-TED/Results-Management-System/internal/domain"
	"github.com/TONNY-TED/Results-Management-System/internal/pkg/apperrors"
	"github.com/TONNY-TED/Results-Management-System/internal/pkg/logger"
	"github.com/TONNY-TED/Results-Management-System/internal/pkg/validation"
)

// Error codes attached to scheduling conflicts
const (
	CodeRoomConflict       = "ROOM_CONFLICT"
	CodeInstructorConflict = "INSTRUCTOR_CONFLICT"
	CodeNotEligible        = "INSTRUCTOR_NOT_ELIGIBLE"
)

// ScheduleRequest describes a class slot to commit
type ScheduleRequest struct {
	Day            string
	TimeSlot       string
	SubjectID      int64
	InstructorID   int64
	Room           string
	SemesterNumber int
}

// SchedulingService defines the interface for class scheduling
type SchedulingService interface {
	ScheduleClass(ctx context.Context, req ScheduleRequest) (int64, error)
	Enroll(ctx context.Context, studentNumber string, classSlotID int64) error
	ListClasses(ctx context.Context, filter models.ClassFilter) ([]*models.ClassSlot, error)
	ListEnrollments(ctx context.Context, classSlotID int64) ([]models.Enrollment, error)
}

type schedulingServiceImpl struct {
	classes  domain.ClassStore
	students domain.StudentStore
	catalog  domain.CatalogStore
}

// NewSchedulingService creates a new scheduling service instance
func NewSchedulingService(classes domain.ClassStore, students domain.StudentStore, catalog domain.CatalogStore) SchedulingService {
	return &schedulingServiceImpl{
		classes:  classes,
		students: students,
		catalog:  catalog,
	}
}

// normalize trims the request and maps the day onto its canonical label
func (r ScheduleRequest) normalize() (ScheduleRequest, error) {
	day, ok := validation.NormalizeDay(r.Day)
	if !ok {
		return r, apperrors.NewInvalidInputError(fmt.Sprintf("unknown day %q", r.Day))
	}
	r.Day = day
	r.TimeSlot = strings.TrimSpace(r.TimeSlot)
	r.Room = strings.TrimSpace(r.Room)

	switch {
	case !validation.CompiledPatterns.TimeSlot.MatchString(r.TimeSlot):
		return r, apperrors.NewInvalidInputError(fmt.Sprintf("invalid time slot %q", r.TimeSlot))
	case r.Room == "" || len(r.Room) > validation.RoomMaxLength:
		return r, apperrors.NewInvalidInputError(fmt.Sprintf("room must be 1-%d characters", validation.RoomMaxLength))
	case r.SubjectID <= 0 || r.InstructorID <= 0:
		return r, apperrors.NewInvalidInputError("subject and instructor IDs must be positive")
	case r.SemesterNumber < 1:
		return r, apperrors.NewInvalidInputError("semester must be at least 1")
	}
	return r, nil
}

// slotLockKeys returns the room and instructor keys in a stable order so two
// requests never wait on each other's locks in opposite order.
func slotLockKeys(r ScheduleRequest) []string {
	keys := []string{
		fmt.Sprintf("room:%s:%s:%s", r.Room, r.Day, r.TimeSlot),
		fmt.Sprintf("instructor:%d:%s:%s", r.InstructorID, r.Day, r.TimeSlot),
	}
	sort.Strings(keys)
	return keys
}

// ScheduleClass commits a class slot after the room, instructor and eligibility
// checks pass, in that order. The checks and the insert share one locked transaction.
func (s *schedulingServiceImpl) ScheduleClass(ctx context.Context, req ScheduleRequest) (int64, error) {
	req, err := req.normalize()
	if err != nil {
		return 0, err
	}
	// unknown IDs are reported as such, not as an eligibility failure
	if _, err := s.catalog.GetSubject(ctx, req.SubjectID); err != nil {
		return 0, err
	}
	if _, err := s.catalog.GetInstructor(ctx, req.InstructorID); err != nil {
		return 0, err
	}

	var classID int64
	err = s.classes.WithSlotLocks(ctx, slotLockKeys(req), func(ctx context.Context, tx domain.SlotTx) error {
		booked, err := tx.RoomBooked(ctx, req.Room, req.Day, req.TimeSlot)
		if err != nil {
			return err
		}
		if booked {
			return apperrors.NewCustomError(apperrors.ErrRoomConflict,
				fmt.Sprintf("Conflict: Room %s already booked on %s at %s", req.Room, req.Day, req.TimeSlot)).
				WithCode(CodeRoomConflict).
				WithDetails(map[string]interface{}{"room": req.Room, "day": req.Day, "timeSlot": req.TimeSlot})
		}

		busy, err := tx.InstructorBooked(ctx, req.InstructorID, req.Day, req.TimeSlot)
		if err != nil {
			return err
		}
		if busy {
			return apperrors.NewCustomError(apperrors.ErrInstructorConflict,
				fmt.Sprintf("Conflict: Instructor already scheduled on %s at %s", req.Day, req.TimeSlot)).
				WithCode(CodeInstructorConflict).
				WithDetails(map[string]interface{}{"instructorId": req.InstructorID, "day": req.Day, "timeSlot": req.TimeSlot})
		}

		eligible, err := tx.InstructorAssigned(ctx, req.SubjectID, req.InstructorID)
		if err != nil {
			return err
		}
		if !eligible {
			return apperrors.NewCustomError(apperrors.ErrInstructorNotEligible,
				"Error: Instructor not assigned to this subject").
				WithCode(CodeNotEligible).
				WithDetails(map[string]interface{}{"subjectId": req.SubjectID, "instructorId": req.InstructorID})
		}

		classID, err = tx.InsertClass(ctx, &models.ClassSlot{
			Day:            req.Day,
			TimeSlot:       req.TimeSlot,
			SubjectID:      req.SubjectID,
			InstructorID:   req.InstructorID,
			Room:           req.Room,
			SemesterNumber: req.SemesterNumber,
		})
		return err
	})
	if err != nil {
		return 0, err
	}

	logger.Info().
		Int64("classID", classID).
		Str("room", req.Room).
		Str("day", req.Day).
		Str("timeSlot", req.TimeSlot).
		Int64("instructorID", req.InstructorID).
		Msg("Class scheduled")
	return classID, nil
}

// Enroll allocates a student to a class slot. A second allocation of the same pair
// fails with apperrors.ErrAlreadyEnrolled.
func (s *schedulingServiceImpl) Enroll(ctx context.Context, studentNumber string, classSlotID int64) error {
	studentNumber = strings.TrimSpace(studentNumber)
	if studentNumber == "" || classSlotID <= 0 {
		return apperrors.NewInvalidInputError("student number and class ID are required")
	}

	if _, err := s.students.GetStudentByNumber(ctx, studentNumber); err != nil {
		return err
	}

	added, err := s.classes.Enroll(ctx, studentNumber, classSlotID)
	if err != nil {
		return err
	}
	if !added {
		return apperrors.NewCustomError(apperrors.ErrAlreadyEnrolled, "Allocation failed.").
			WithDetails(map[string]interface{}{"studentNumber": studentNumber, "classId": classSlotID})
	}
	return nil
}

func (s *schedulingServiceImpl) ListClasses(ctx context.Context, filter models.ClassFilter) ([]*models.ClassSlot, error) {
	if filter.Day != "" {
		day, ok := validation.NormalizeDay(filter.Day)
		if !ok {
			return nil, apperrors.NewInvalidInputError(fmt.Sprintf("unknown day %q", filter.Day))
		}
		filter.Day = day
	}
	filter.Room = strings.TrimSpace(filter.Room)
	return s.classes.ListClasses(ctx, filter)
}

func (s *schedulingServiceImpl) ListEnrollments(ctx context.Context, classSlotID int64) ([]models.Enrollment, error) {
	if _, err := s.classes.GetClass(ctx, classSlotID); err != nil {
		return nil, err
	}
	return s.classes.ListEnrollments(ctx, classSlotID)
}
