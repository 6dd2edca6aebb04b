package services

import (
	"context"
	"errors"
	"testing"

	"github.com/TONNY-TED/Results-Management-System/internal/app/models"
	"github.com/TONNY-TED/Results-Management-System/internal/pkg/apperrors"
)

func entry(semester int, subject string, marks float64) ResultEntry {
	return ResultEntry{
		StudentName:    "Jane Doe",
		StudentNumber:  "S1",
		Program:        "CS",
		SemesterNumber: semester,
		CourseName:     "Computer Science",
		SubjectName:    subject,
		Marks:          marks,
	}
}

func TestEnterResultUpserts(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	svc := testServices(m)

	first, err := svc.Results.EnterResult(ctx, entry(1, "Databases", 55))
	if err != nil {
		t.Fatal(err)
	}
	if first.Grade != "F" || first.SubjectName != "Databases" {
		t.Errorf("first = %+v", first)
	}

	second, err := svc.Results.EnterResult(ctx, entry(1, "Databases", 91))
	if err != nil {
		t.Fatal(err)
	}
	if second.ID != first.ID || second.Grade != "A" {
		t.Errorf("re-entry should update in place, got %+v", second)
	}
	if len(m.results) != 1 {
		t.Errorf("results stored = %d, want 1", len(m.results))
	}
	if _, ok := m.semesters[1]; !ok {
		t.Error("semester not created in catalog")
	}

	for _, marks := range []float64{-1, 100.5} {
		if _, err := svc.Results.EnterResult(ctx, entry(1, "Databases", marks)); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Errorf("marks %v: got %v", marks, err)
		}
	}
}

func TestEnterSUP(t *testing.T) {
	ctx := context.Background()

	t.Run("passing SUP clears the failed result", func(t *testing.T) {
		m := newMemStore()
		svc := testServices(m)
		failed, _ := svc.Results.EnterResult(ctx, entry(1, "Databases", 40))

		out, err := svc.Results.EnterSUP(ctx, SupEntry(entry(1, "Databases", 72)))
		if err != nil {
			t.Fatal(err)
		}
		if out.Exam.Status != models.SupStatusCleared {
			t.Errorf("status = %s, want Cleared", out.Exam.Status)
		}
		if out.Result.ID != failed.ID || out.Result.Grade != "C" || out.Result.Marks != 72 {
			t.Errorf("result = %+v", out.Result)
		}
		if len(m.sups) != 1 {
			t.Errorf("sup rows = %d, want 1", len(m.sups))
		}
	})

	t.Run("failing SUP stays pending", func(t *testing.T) {
		svc := testServices(newMemStore())
		_, _ = svc.Results.EnterResult(ctx, entry(1, "Databases", 40))
		out, err := svc.Results.EnterSUP(ctx, SupEntry(entry(1, "Databases", 45)))
		if err != nil {
			t.Fatal(err)
		}
		if out.Exam.Status != models.SupStatusPending || out.Result.Grade != "F" {
			t.Errorf("outcome = %+v / %+v", out.Exam, out.Result)
		}
	})

	t.Run("SUP without prior result inserts one", func(t *testing.T) {
		m := newMemStore()
		svc := testServices(m)
		out, err := svc.Results.EnterSUP(ctx, SupEntry(entry(2, "Networks", 88)))
		if err != nil {
			t.Fatal(err)
		}
		if out.Result.Grade != "B" || len(m.results) != 1 {
			t.Errorf("result = %+v, stored %d", out.Result, len(m.results))
		}
	})
}

func TestGenerateTranscript(t *testing.T) {
	ctx := context.Background()
	svc := testServices(newMemStore())
	_, _ = svc.Results.EnterResult(ctx, entry(1, "Databases", 95))
	_, _ = svc.Results.EnterResult(ctx, entry(1, "Algorithms", 85))
	_, _ = svc.Ledger.RegisterNewSemester(ctx, "S1")
	_, _ = svc.Results.EnterResult(ctx, entry(2, "Networks", 65))

	all, err := svc.Results.GenerateTranscript(ctx, "S1", models.AllSemesters)
	if err != nil {
		t.Fatal(err)
	}
	if len(all.Semesters) != 2 {
		t.Fatalf("semester groups = %d, want 2", len(all.Semesters))
	}
	sem1 := all.Semesters[0]
	if sem1.SemesterNumber != 1 || sem1.GPA != 3.5 || sem1.Records[0].SubjectName != "Algorithms" {
		t.Errorf("semester 1 = %+v", sem1)
	}
	if all.OverallGPA == nil || *all.OverallGPA != 8.0/3.0 {
		t.Errorf("overall GPA = %v, want %v", all.OverallGPA, 8.0/3.0)
	}

	one, err := svc.Results.GenerateTranscript(ctx, "S1", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(one.Semesters) != 1 || one.OverallGPA != nil {
		t.Errorf("single semester transcript = %+v", one)
	}

	if _, err := svc.Results.GenerateTranscript(ctx, "S1", -1); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Errorf("negative semester: got %v", err)
	}
	if _, err := svc.Results.GenerateTranscript(ctx, "NOPE", 0); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Errorf("unknown student: got %v", err)
	}
}

func TestTranscriptDeniedForAnyUnpaidSemester(t *testing.T) {
	ctx := context.Background()
	svc := testServices(newMemStore())
	_, _ = svc.Results.EnterResult(ctx, entry(1, "Databases", 95))
	_, _ = svc.Ledger.SetFeeStructure(ctx, "CS", 1000, 1, due)
	_, _ = svc.Ledger.SetFeeStructure(ctx, "CS", 600, 2, due)
	_, _ = svc.Ledger.RegisterNewSemester(ctx, "S1")
	_, _ = svc.Ledger.RecordPayment(ctx, "S1", 2, 600, "")

	// semester 2 is fully paid, semester 1 is not
	_, err := svc.Results.GenerateTranscript(ctx, "S1", 2)
	if !errors.Is(err, apperrors.ErrAccessDenied) {
		t.Fatalf("got %v, want ErrAccessDenied", err)
	}
}

func TestSemesterAndOverallGPA(t *testing.T) {
	ctx := context.Background()
	svc := testServices(newMemStore())
	_, _ = svc.Results.EnterResult(ctx, entry(1, "Databases", 95))
	_, _ = svc.Results.EnterResult(ctx, entry(1, "Algorithms", 85))
	_, _ = svc.Results.EnterResult(ctx, entry(2, "Networks", 50))

	if gpa, _ := svc.Results.SemesterGPA(ctx, "S1", 1); gpa != 3.5 {
		t.Errorf("semester GPA = %v, want 3.5", gpa)
	}
	if gpa, _ := svc.Results.SemesterGPA(ctx, "S1", 3); gpa != 0 {
		t.Errorf("empty semester GPA = %v, want 0", gpa)
	}
	if gpa, _ := svc.Results.OverallGPA(ctx, "S1"); gpa != 7.0/3.0 {
		t.Errorf("overall GPA = %v, want %v", gpa, 7.0/3.0)
	}
}

func TestFeeClearanceReleasesTranscript(t *testing.T) {
	ctx := context.Background()
	svc := testServices(newMemStore())

	if _, err := svc.Ledger.SetFeeStructure(ctx, "CS", 1000, 1, due); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Catalog.ResolveOrCreateStudent(ctx, "Jane Doe", "S1", "CS"); err != nil {
		t.Fatal(err)
	}

	owing, err := svc.Ledger.HasOutstandingFees(ctx, "S1")
	if err != nil || !owing {
		t.Fatalf("before payment: got (%v, %v), want (true, nil)", owing, err)
	}
	if _, err := svc.Results.GenerateTranscript(ctx, "S1", models.AllSemesters); !errors.Is(err, apperrors.ErrAccessDenied) {
		t.Fatalf("transcript before payment: got %v", err)
	}

	if _, err := svc.Ledger.RecordPayment(ctx, "S1", 1, 1000, ""); err != nil {
		t.Fatal(err)
	}
	owing, _ = svc.Ledger.HasOutstandingFees(ctx, "S1")
	if owing {
		t.Fatal("fees still outstanding after full payment")
	}
	if _, err := svc.Results.GenerateTranscript(ctx, "S1", models.AllSemesters); err != nil {
		t.Errorf("transcript after payment: %v", err)
	}
}
