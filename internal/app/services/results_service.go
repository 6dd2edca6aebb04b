package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/TONNY-TED/Results-Management-System/internal/app/models"
	"github.com/TONNY-TED/Results-Management-System/internal/domain"
	"github.com/TONNY-TED/Results-Management-System/internal/pkg/apperrors"
	"github.com/TONNY-TED/Results-Management-System/internal/pkg/logger"
)

// ResultEntry carries a mark keyed by names as typed at the menu. Missing catalog
// entries are created on the way.
type ResultEntry struct {
	StudentName    string
	StudentNumber  string
	Program        string
	SemesterNumber int
	CourseName     string
	SubjectName    string
	Marks          float64
}

// SupEntry is a supplementary exam mark, keyed like ResultEntry
type SupEntry ResultEntry

// SupOutcome is the stored SUP attempt and the result it produced
type SupOutcome struct {
	Exam   *models.SupplementaryExam `json:"exam"`
	Result *models.ResultRecord      `json:"result"`
}

// ResultsService defines the interface for results, GPA and transcripts
type ResultsService interface {
	EnterResult(ctx context.Context, entry ResultEntry) (*models.ResultRecord, error)
	EnterSUP(ctx context.Context, entry SupEntry) (*SupOutcome, error)
	GenerateTranscript(ctx context.Context, studentNumber string, semester int) (*models.Transcript, error)
	SemesterGPA(ctx context.Context, studentNumber string, semester int) (float64, error)
	OverallGPA(ctx context.Context, studentNumber string) (float64, error)
}

// FeeGate answers whether a student still owes fees
type FeeGate interface {
	HasOutstandingFees(ctx context.Context, studentNumber string) (bool, error)
}

type resultsServiceImpl struct {
	catalog CatalogService
	results domain.ResultStore
	fees    FeeGate
}

// NewResultsService creates a new results service instance
func NewResultsService(catalog CatalogService, results domain.ResultStore, fees FeeGate) ResultsService {
	return &resultsServiceImpl{
		catalog: catalog,
		results: results,
		fees:    fees,
	}
}

// resolved holds the catalog rows an entry refers to
type resolved struct {
	student *models.Student
	subject *models.Subject
}

func (s *resultsServiceImpl) resolve(ctx context.Context, e ResultEntry) (*resolved, error) {
	if e.Marks < 0 || e.Marks > 100 || math.IsNaN(e.Marks) {
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("marks must be between 0 and 100, got %v", e.Marks))
	}

	student, err := s.catalog.ResolveOrCreateStudent(ctx, e.StudentName, e.StudentNumber, e.Program)
	if err != nil {
		return nil, err
	}
	if _, err := s.catalog.ResolveOrCreateSemester(ctx, e.SemesterNumber); err != nil {
		return nil, err
	}
	course, err := s.catalog.ResolveOrCreateCourse(ctx, e.CourseName)
	if err != nil {
		return nil, err
	}
	subject, err := s.catalog.ResolveOrCreateSubject(ctx, e.SubjectName, course.ID)
	if err != nil {
		return nil, err
	}
	return &resolved{student: student, subject: subject}, nil
}

// EnterResult grades the marks and stores them, replacing any earlier result for
// the same student, semester and subject.
func (s *resultsServiceImpl) EnterResult(ctx context.Context, entry ResultEntry) (*models.ResultRecord, error) {
	ref, err := s.resolve(ctx, entry)
	if err != nil {
		return nil, err
	}

	rec, err := s.results.UpsertResult(ctx, &models.ResultRecord{
		StudentNumber:  ref.student.StudentNumber,
		SemesterNumber: entry.SemesterNumber,
		SubjectID:      ref.subject.ID,
		Marks:          entry.Marks,
		Grade:          ComputeGrade(entry.Marks),
	})
	if err != nil {
		return nil, err
	}
	rec.SubjectName = ref.subject.Name

	logger.Info().
		Str("studentNumber", rec.StudentNumber).
		Int("semester", rec.SemesterNumber).
		Str("subject", rec.SubjectName).
		Str("grade", rec.Grade).
		Msg("Result entered")
	return rec, nil
}

// EnterSUP stores a supplementary attempt and overwrites the matching result with
// its marks and grade. The attempt stays Pending while the grade is F.
func (s *resultsServiceImpl) EnterSUP(ctx context.Context, entry SupEntry) (*SupOutcome, error) {
	ref, err := s.resolve(ctx, ResultEntry(entry))
	if err != nil {
		return nil, err
	}

	grade := ComputeGrade(entry.Marks)
	status := models.SupStatusCleared
	if grade == GradeF {
		status = models.SupStatusPending
	}

	sup := &models.SupplementaryExam{
		StudentNumber:  ref.student.StudentNumber,
		SemesterNumber: entry.SemesterNumber,
		SubjectID:      ref.subject.ID,
		Marks:          entry.Marks,
		Status:         status,
	}
	rec, err := s.results.RecordSupplementary(ctx, sup, grade)
	if err != nil {
		return nil, err
	}
	rec.SubjectName = ref.subject.Name

	logger.Info().
		Str("studentNumber", sup.StudentNumber).
		Int("semester", sup.SemesterNumber).
		Str("subject", rec.SubjectName).
		Str("status", string(sup.Status)).
		Msg("Supplementary exam recorded")
	return &SupOutcome{Exam: sup, Result: rec}, nil
}

func checkSemesterSelector(semester int) error {
	if semester < models.AllSemesters {
		return apperrors.NewInvalidInputError(fmt.Sprintf("semester must be %d (all) or positive, got %d", models.AllSemesters, semester))
	}
	return nil
}

// GenerateTranscript releases the student's results for one semester, or for all
// when semester is models.AllSemesters. Students with outstanding fees get
// apperrors.ErrAccessDenied and no data.
func (s *resultsServiceImpl) GenerateTranscript(ctx context.Context, studentNumber string, semester int) (*models.Transcript, error) {
	if err := checkSemesterSelector(semester); err != nil {
		return nil, err
	}
	student, err := s.catalog.GetStudent(ctx, studentNumber)
	if err != nil {
		return nil, err
	}

	owing, err := s.fees.HasOutstandingFees(ctx, student.StudentNumber)
	if err != nil {
		return nil, err
	}
	if owing {
		logger.Warn().Str("studentNumber", student.StudentNumber).Msg("Transcript withheld for outstanding fees")
		return nil, apperrors.NewCustomError(apperrors.ErrAccessDenied,
			"Access denied: outstanding fees must be cleared before results are released").
			WithDetails(map[string]interface{}{"studentNumber": student.StudentNumber})
	}

	records, err := s.results.ListResults(ctx, student.StudentNumber, semester)
	if err != nil {
		return nil, err
	}

	transcript := &models.Transcript{Student: student, Semesters: groupBySemester(records)}
	if semester == models.AllSemesters {
		overall := GPA(records)
		transcript.OverallGPA = &overall
	}
	return transcript, nil
}

// groupBySemester splits records, already ordered by semester, into transcript groups
func groupBySemester(records []models.ResultRecord) []models.TranscriptSemester {
	groups := []models.TranscriptSemester{}
	for _, r := range records {
		if n := len(groups); n == 0 || groups[n-1].SemesterNumber != r.SemesterNumber {
			groups = append(groups, models.TranscriptSemester{SemesterNumber: r.SemesterNumber})
		}
		last := &groups[len(groups)-1]
		last.Records = append(last.Records, r)
	}
	for i := range groups {
		groups[i].GPA = GPA(groups[i].Records)
	}
	return groups
}

// SemesterGPA returns the GPA over one semester's results
func (s *resultsServiceImpl) SemesterGPA(ctx context.Context, studentNumber string, semester int) (float64, error) {
	if err := requireSemester(semester); err != nil {
		return 0, err
	}
	records, err := s.results.ListResults(ctx, strings.TrimSpace(studentNumber), semester)
	if err != nil {
		return 0, err
	}
	return GPA(records), nil
}

// OverallGPA returns the GPA over every result the student holds
func (s *resultsServiceImpl) OverallGPA(ctx context.Context, studentNumber string) (float64, error) {
	records, err := s.results.ListResults(ctx, strings.TrimSpace(studentNumber), models.AllSemesters)
	if err != nil {
		return 0, err
	}
	return GPA(records), nil
}
