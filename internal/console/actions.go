package console

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/TONNY-TED/Results-Management-System/internal/app/models"
	"github.com/TONNY-TED/Results-Management-System/internal/app/services"
	"github.com/TONNY-TED/Results-Management-System/internal/pkg/apperrors"
	"github.com/TONNY-TED/Results-Management-System/internal/pkg/helpers"
)

func (m *Menu) promptInt(label string) (int, error) {
	s, err := m.prompt(label)
	if err != nil {
		return 0, err
	}
	return helpers.ParsePositiveInt(s)
}

func (m *Menu) promptID(label string) (int64, error) {
	n, err := m.promptInt(label)
	return int64(n), err
}

func (m *Menu) promptDate(label string) (time.Time, error) {
	s, err := m.prompt(label + " (YYYY-MM-DD)")
	if err != nil {
		return time.Time{}, err
	}
	return helpers.ParseDate(s)
}

// promptSemesterOrAll accepts a semester number, or blank/0/"all" for every semester
func (m *Menu) promptSemesterOrAll(label string) (int, error) {
	s, err := m.prompt(label + " (blank for all)")
	if err != nil {
		return 0, err
	}
	if s == "" || s == "0" || strings.EqualFold(s, "all") {
		return models.AllSemesters, nil
	}
	return helpers.ParsePositiveInt(s)
}

// readEntry collects the fields shared by result and SUP entry
func (m *Menu) readEntry() (services.ResultEntry, error) {
	var e services.ResultEntry
	var err error
	if e.StudentName, err = m.prompt("Student name"); err != nil {
		return e, err
	}
	if e.StudentNumber, err = m.prompt("Student number"); err != nil {
		return e, err
	}
	if e.Program, err = m.prompt("Program (blank to keep)"); err != nil {
		return e, err
	}
	if e.SemesterNumber, err = m.promptInt("Semester"); err != nil {
		return e, err
	}
	if e.CourseName, err = m.prompt("Course name"); err != nil {
		return e, err
	}
	if e.SubjectName, err = m.prompt("Subject name"); err != nil {
		return e, err
	}
	marks, err := m.prompt("Marks")
	if err != nil {
		return e, err
	}
	e.Marks, err = helpers.ParseMarks(marks)
	return e, err
}

func (m *Menu) enterResult(ctx context.Context) error {
	e, err := m.readEntry()
	if err != nil {
		return err
	}
	rec, err := m.svc.Results.EnterResult(ctx, e)
	if err != nil {
		return err
	}
	m.printf("Regular result entered successfully! %s: %.2f (%s)\n", rec.SubjectName, rec.Marks, rec.Grade)
	return nil
}

func (m *Menu) enterSUP(ctx context.Context) error {
	e, err := m.readEntry()
	if err != nil {
		return err
	}
	out, err := m.svc.Results.EnterSUP(ctx, services.SupEntry(e))
	if err != nil {
		return err
	}
	m.printf("Supplementary result entered. %s: %.2f (%s), status %s\n",
		out.Result.SubjectName, out.Result.Marks, out.Result.Grade, out.Exam.Status)
	return nil
}

func (m *Menu) viewTranscript(ctx context.Context) error {
	number, err := m.prompt("Student number")
	if err != nil {
		return err
	}
	semester, err := m.promptSemesterOrAll("Semester")
	if err != nil {
		return err
	}
	t, err := m.svc.Results.GenerateTranscript(ctx, number, semester)
	if err != nil {
		return err
	}
	printTranscript(m.out, t)
	return nil
}

func (m *Menu) viewGPA(ctx context.Context) error {
	number, err := m.prompt("Student number")
	if err != nil {
		return err
	}
	semester, err := m.promptSemesterOrAll("Semester")
	if err != nil {
		return err
	}
	if semester == models.AllSemesters {
		gpa, err := m.svc.Results.OverallGPA(ctx, number)
		if err != nil {
			return err
		}
		m.printf("Overall GPA: %.2f\n", gpa)
		return nil
	}
	gpa, err := m.svc.Results.SemesterGPA(ctx, number, semester)
	if err != nil {
		return err
	}
	m.printf("Semester %d GPA: %.2f\n", semester, gpa)
	return nil
}

func (m *Menu) registerSemester(ctx context.Context) error {
	number, err := m.prompt("Student number")
	if err != nil {
		return err
	}
	reg, err := m.svc.Ledger.RegisterNewSemester(ctx, number)
	if err != nil {
		return err
	}
	m.printf("%s registered for semester %d.\n", reg.Student.Name, reg.NewSemester)
	if !reg.FeeStructureExists {
		m.printf("Note: no fee structure is defined for program %q in semester %d.\n", reg.Student.Program, reg.NewSemester)
	}
	return nil
}

func (m *Menu) setFeeStructure(ctx context.Context) error {
	program, err := m.prompt("Program")
	if err != nil {
		return err
	}
	semester, err := m.promptInt("Semester")
	if err != nil {
		return err
	}
	raw, err := m.prompt("Fee amount")
	if err != nil {
		return err
	}
	amount, err := helpers.ParseAmount(raw)
	if err != nil {
		return err
	}
	due, err := m.promptDate("Due date")
	if err != nil {
		return err
	}
	fee, err := m.svc.Ledger.SetFeeStructure(ctx, program, amount, semester, due)
	if err != nil {
		return err
	}
	m.printf("Fee structure saved: %s semester %d, %.2f due %s\n",
		fee.Program, fee.Semester, fee.Amount, fee.DueDate.Format(helpers.DateLayout))
	return nil
}

func (m *Menu) recordPayment(ctx context.Context) error {
	number, err := m.prompt("Student number")
	if err != nil {
		return err
	}
	semester, err := m.promptInt("Semester")
	if err != nil {
		return err
	}
	raw, err := m.prompt("Amount")
	if err != nil {
		return err
	}
	amount, err := helpers.ParseAmount(raw)
	if err != nil {
		return err
	}
	receipt, err := m.prompt("Receipt number (blank to generate)")
	if err != nil {
		return err
	}

	p, err := m.svc.Ledger.RecordPayment(ctx, number, semester, amount, receipt)
	if err != nil {
		return err
	}
	student, err := m.svc.Catalog.GetStudent(ctx, p.StudentNumber)
	if err != nil {
		return err
	}
	printReceipt(m.out, student, p)
	return nil
}

func (m *Menu) viewOutstanding(ctx context.Context) error {
	number, err := m.prompt("Student number")
	if err != nil {
		return err
	}
	semester, err := m.promptInt("Semester")
	if err != nil {
		return err
	}
	balance, err := m.svc.Ledger.ComputeOutstanding(ctx, number, semester)
	if errors.Is(err, apperrors.ErrNoFeeStructure) {
		m.printf("Semester %d: not applicable (no fee structure defined).\n", semester)
		return nil
	}
	if err != nil {
		return err
	}
	m.printf("Outstanding for semester %d: %.2f\n", semester, balance)
	return nil
}

func (m *Menu) printStatement(ctx context.Context) error {
	number, err := m.prompt("Student number")
	if err != nil {
		return err
	}
	stmt, err := m.svc.Ledger.FeeStatement(ctx, number)
	if err != nil {
		return err
	}
	printInvoice(m.out, stmt)
	return nil
}

// resolveSubject resolves a course and subject by name
func (m *Menu) resolveSubject(ctx context.Context) (*models.Subject, error) {
	courseName, err := m.prompt("Course name")
	if err != nil {
		return nil, err
	}
	subjectName, err := m.prompt("Subject name")
	if err != nil {
		return nil, err
	}
	course, err := m.svc.Catalog.ResolveOrCreateCourse(ctx, courseName)
	if err != nil {
		return nil, err
	}
	return m.svc.Catalog.ResolveOrCreateSubject(ctx, subjectName, course.ID)
}

func (m *Menu) resolveInstructor(ctx context.Context) (*models.Instructor, error) {
	name, err := m.prompt("Instructor name")
	if err != nil {
		return nil, err
	}
	number, err := m.prompt("Instructor number")
	if err != nil {
		return nil, err
	}
	return m.svc.Catalog.ResolveOrCreateInstructor(ctx, name, number)
}

func (m *Menu) assignInstructor(ctx context.Context) error {
	subject, err := m.resolveSubject(ctx)
	if err != nil {
		return err
	}
	instructor, err := m.resolveInstructor(ctx)
	if err != nil {
		return err
	}
	if err := m.svc.Catalog.AssignInstructor(ctx, subject.ID, instructor.ID); err != nil {
		return err
	}
	m.println("Instructor assigned to subject successfully!")
	return nil
}

func (m *Menu) scheduleClass(ctx context.Context) error {
	day, err := m.prompt("Day")
	if err != nil {
		return err
	}
	slot, err := m.prompt("Time slot (e.g. 08:00-10:00)")
	if err != nil {
		return err
	}
	subject, err := m.resolveSubject(ctx)
	if err != nil {
		return err
	}
	instructor, err := m.resolveInstructor(ctx)
	if err != nil {
		return err
	}
	room, err := m.prompt("Room")
	if err != nil {
		return err
	}
	semester, err := m.promptInt("Semester")
	if err != nil {
		return err
	}

	id, err := m.svc.Scheduling.ScheduleClass(ctx, services.ScheduleRequest{
		Day:            day,
		TimeSlot:       slot,
		SubjectID:      subject.ID,
		InstructorID:   instructor.ID,
		Room:           room,
		SemesterNumber: semester,
	})
	if err != nil {
		return err
	}
	m.printf("Class scheduled successfully! Class ID: %d\n", id)
	return nil
}

func (m *Menu) allocateStudent(ctx context.Context) error {
	number, err := m.prompt("Student number")
	if err != nil {
		return err
	}
	classID, err := m.promptID("Class ID")
	if err != nil {
		return err
	}
	if err := m.svc.Scheduling.Enroll(ctx, number, classID); err != nil {
		return err
	}
	m.println("Student allocated to class successfully!")
	return nil
}

func (m *Menu) viewTimetable(ctx context.Context) error {
	raw, err := m.prompt("Semester (blank for all)")
	if err != nil {
		return err
	}
	var filter models.ClassFilter
	if raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return apperrors.NewInvalidInputError("invalid semester " + strconv.Quote(raw))
		}
		filter.SemesterNumber = n
	}
	if filter.Day, err = m.prompt("Day (blank for all)"); err != nil {
		return err
	}

	classes, err := m.svc.Scheduling.ListClasses(ctx, filter)
	if err != nil {
		return err
	}
	printTimetable(m.out, classes)
	return nil
}
