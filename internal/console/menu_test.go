package console

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/TONNY-TED/Results-Management-System/internal/app/models"
	"github.com/TONNY-TED/Results-Management-System/internal/app/services"
	"github.com/TONNY-TED/Results-Management-System/internal/pkg/apperrors"
	"github.com/TONNY-TED/Results-Management-System/internal/pkg/logger"
)

type fakeCatalog struct {
	services.CatalogService
	assigned [][2]int64
}

func (f *fakeCatalog) ResolveOrCreateCourse(_ context.Context, name string) (*models.Course, error) {
	return &models.Course{ID: 1, Name: name}, nil
}

func (f *fakeCatalog) ResolveOrCreateSubject(_ context.Context, name string, courseID int64) (*models.Subject, error) {
	return &models.Subject{ID: 10, Name: name, CourseID: courseID}, nil
}

func (f *fakeCatalog) ResolveOrCreateInstructor(_ context.Context, name, number string) (*models.Instructor, error) {
	return &models.Instructor{ID: 20, Name: name, InstructorNumber: number}, nil
}

func (f *fakeCatalog) AssignInstructor(_ context.Context, subjectID, instructorID int64) error {
	f.assigned = append(f.assigned, [2]int64{subjectID, instructorID})
	return nil
}

func (f *fakeCatalog) GetStudent(_ context.Context, number string) (*models.Student, error) {
	return &models.Student{StudentNumber: number, Name: "Jane Doe", Program: "CS", CurrentSemester: 1}, nil
}

type fakeScheduling struct {
	services.SchedulingService
	lastReq services.ScheduleRequest
	err     error
}

func (f *fakeScheduling) ScheduleClass(_ context.Context, req services.ScheduleRequest) (int64, error) {
	f.lastReq = req
	if f.err != nil {
		return 0, f.err
	}
	return 7, nil
}

func (f *fakeScheduling) ListClasses(_ context.Context, filter models.ClassFilter) ([]*models.ClassSlot, error) {
	return []*models.ClassSlot{{
		ID: 7, Day: "Monday", TimeSlot: "08:00-10:00", Room: "R1", SemesterNumber: filter.SemesterNumber,
		Subject: &models.Subject{Name: "Algorithms"}, Instructor: &models.Instructor{Name: "Dr. Okello"},
	}}, nil
}

type fakeLedger struct {
	services.LedgerService
}

func (f *fakeLedger) ComputeOutstanding(_ context.Context, _ string, semester int) (float64, error) {
	switch semester {
	case 2:
		return 0, apperrors.ErrNoFeeStructure
	case 3:
		return 0, apperrors.NewStorageError("sum payments", errors.New("connection reset"))
	}
	return 600, nil
}

func (f *fakeLedger) RecordPayment(_ context.Context, number string, semester int, amount float64, receipt string) (*models.Payment, error) {
	if receipt == "" {
		receipt = "RCPT-0000ABCD"
	}
	return &models.Payment{
		ID: 1, StudentNumber: number, Semester: semester, Amount: amount, ReceiptNo: receipt,
		PaidOn: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}, nil
}

type fakeResults struct {
	services.ResultsService
	entries []services.ResultEntry
}

func (f *fakeResults) EnterResult(_ context.Context, e services.ResultEntry) (*models.ResultRecord, error) {
	f.entries = append(f.entries, e)
	return &models.ResultRecord{SubjectName: e.SubjectName, Marks: e.Marks, Grade: "A"}, nil
}

func (f *fakeResults) GenerateTranscript(_ context.Context, number string, _ int) (*models.Transcript, error) {
	return nil, apperrors.NewCustomError(apperrors.ErrAccessDenied, "Transcript withheld: outstanding fees for "+number)
}

func (f *fakeResults) SemesterGPA(_ context.Context, _ string, semester int) (float64, error) {
	return float64(semester), nil
}

func (f *fakeResults) OverallGPA(context.Context, string) (float64, error) {
	return 2.5, nil
}

func newTestMenu(input string) (*Menu, *bytes.Buffer, *services.Services) {
	svc := &services.Services{
		Catalog:    &fakeCatalog{},
		Scheduling: &fakeScheduling{},
		Ledger:     &fakeLedger{},
		Results:    &fakeResults{},
	}
	var out bytes.Buffer
	return New(svc, strings.NewReader(input), &out), &out, svc
}

func script(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func TestRunExitsOnZeroAndEOF(t *testing.T) {
	m, out, _ := newTestMenu(script("0"))
	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "Goodbye.") {
		t.Errorf("expected goodbye, got %q", out.String())
	}

	m, _, _ = newTestMenu("")
	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run on empty input: %v", err)
	}
}

func TestInvalidOptionKeepsRunning(t *testing.T) {
	m, out, _ := newTestMenu(script("99", "q"))
	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "Invalid option") {
		t.Errorf("expected invalid option message, got %q", out.String())
	}
}

func TestEnterResult(t *testing.T) {
	m, out, svc := newTestMenu(script("1", "Jane Doe", "BIT/2021/042", "CS", "1", "Computing", "Algorithms", "85", "0"))
	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	res := svc.Results.(*fakeResults)
	if len(res.entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(res.entries))
	}
	e := res.entries[0]
	if e.StudentNumber != "BIT/2021/042" || e.SemesterNumber != 1 || e.Marks != 85 || e.SubjectName != "Algorithms" {
		t.Errorf("unexpected entry %+v", e)
	}
	if !strings.Contains(out.String(), "Regular result entered successfully!") {
		t.Errorf("missing confirmation in %q", out.String())
	}
}

func TestInvalidMarksReportedAndMenuContinues(t *testing.T) {
	m, out, svc := newTestMenu(script("1", "Jane", "S1", "CS", "1", "Computing", "Algorithms", "150", "0"))
	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(svc.Results.(*fakeResults).entries) != 0 {
		t.Error("invalid marks should not reach the service")
	}
	if !strings.Contains(out.String(), "Error: invalid marks") || !strings.Contains(out.String(), "Goodbye.") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestTranscriptWithheld(t *testing.T) {
	m, out, _ := newTestMenu(script("3", "S1", "", "0"))
	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "Transcript withheld") {
		t.Errorf("expected access denied message, got %q", out.String())
	}
}

func TestRecordPaymentPrintsReceipt(t *testing.T) {
	m, out, _ := newTestMenu(script("6", "S1", "1", "400", "", "0"))
	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	s := out.String()
	for _, want := range []string{"PAYMENT RECEIPT", "RCPT-0000ABCD", "400.00", "2024-03-15", "Jane Doe"} {
		if !strings.Contains(s, want) {
			t.Errorf("receipt missing %q", want)
		}
	}
}

func TestOutstandingNotApplicable(t *testing.T) {
	m, out, _ := newTestMenu(script("7", "S1", "1", "7", "S1", "2", "0"))
	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	s := out.String()
	if !strings.Contains(s, "Outstanding for semester 1: 600.00") {
		t.Errorf("missing balance in %q", s)
	}
	if !strings.Contains(s, "Semester 2: not applicable") {
		t.Errorf("missing not-applicable line in %q", s)
	}
}

func TestAssignInstructor(t *testing.T) {
	m, out, svc := newTestMenu(script("9", "Computing", "Algorithms", "Dr. Okello", "INS-007", "0"))
	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	cat := svc.Catalog.(*fakeCatalog)
	if len(cat.assigned) != 1 || cat.assigned[0] != [2]int64{10, 20} {
		t.Errorf("unexpected assignments %v", cat.assigned)
	}
	if !strings.Contains(out.String(), "Instructor assigned to subject successfully!") {
		t.Errorf("missing confirmation in %q", out.String())
	}
}

func TestScheduleClass(t *testing.T) {
	m, out, svc := newTestMenu(script("10", "Monday", "08:00-10:00", "Computing", "Algorithms", "Dr. Okello", "INS-007", "R1", "1", "0"))
	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	req := svc.Scheduling.(*fakeScheduling).lastReq
	if req.SubjectID != 10 || req.InstructorID != 20 || req.Room != "R1" || req.Day != "Monday" {
		t.Errorf("unexpected request %+v", req)
	}
	if !strings.Contains(out.String(), "Class scheduled successfully! Class ID: 7") {
		t.Errorf("missing confirmation in %q", out.String())
	}
}

func TestScheduleConflictReported(t *testing.T) {
	m, out, svc := newTestMenu(script("10", "Monday", "08:00-10:00", "Computing", "Algorithms", "Dr. Okello", "INS-007", "R1", "1", "0"))
	svc.Scheduling.(*fakeScheduling).err = apperrors.NewCustomError(apperrors.ErrRoomConflict,
		"Conflict: Room R1 already booked on Monday at 08:00-10:00")
	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "Error: Conflict: Room R1 already booked") {
		t.Errorf("expected conflict message, got %q", out.String())
	}
}

func TestViewTimetable(t *testing.T) {
	m, out, _ := newTestMenu(script("12", "1", "", "0"))
	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	s := out.String()
	if !strings.Contains(s, "Algorithms") || !strings.Contains(s, "Dr. Okello") {
		t.Errorf("timetable missing row: %q", s)
	}
}

func TestInputEndingMidActionReturnsNil(t *testing.T) {
	m, _, _ := newTestMenu(script("6", "S1"))
	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestViewGPA(t *testing.T) {
	m, out, _ := newTestMenu(script("13", "S1", "3", "13", "S1", "", "0"))
	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	s := out.String()
	if !strings.Contains(s, "Semester 3 GPA: 3.00") || !strings.Contains(s, "Overall GPA: 2.50") {
		t.Errorf("unexpected output %q", s)
	}
}

func TestStorageErrorIsLoggedNotPrinted(t *testing.T) {
	var logs bytes.Buffer
	logger.Configure(logger.Config{Level: logger.InfoLevel, Output: &logs})
	t.Cleanup(func() { logger.Configure(logger.Config{Level: logger.InfoLevel, Pretty: true}) })

	m, out, _ := newTestMenu(script("7", "S1", "3", "0"))
	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if s := out.String(); !strings.Contains(s, "the database rejected the operation") || strings.Contains(s, "connection reset") {
		t.Errorf("unexpected output %q", s)
	}
	if l := logs.String(); !strings.Contains(l, `"component":"menu"`) || !strings.Contains(l, "connection reset") {
		t.Errorf("log missing menu entry: %q", l)
	}
}
