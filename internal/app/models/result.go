package models

import "time"

// ResultRecord is the mark and grade a student holds for a subject in a semester.
// At most one exists per (student, semester, subject).
type ResultRecord struct {
	ID             int64   `json:"id" db:"id"`
	StudentNumber  string  `json:"studentNumber" db:"student_number"`
	SemesterNumber int     `json:"semesterNumber" db:"semester_number"`
	SubjectID      int64   `json:"subjectId" db:"subject_id"`
	SubjectName    string  `json:"subjectName,omitempty" db:"subject_name"`
	Marks          float64 `json:"marks" db:"marks"`
	Grade          string  `json:"grade" db:"grade"`
}

// SupplementaryExam records a retake attempt.
type SupplementaryExam struct {
	ID             int64     `json:"id" db:"id"`
	StudentNumber  string    `json:"studentNumber" db:"student_number"`
	SemesterNumber int       `json:"semesterNumber" db:"semester_number"`
	SubjectID      int64     `json:"subjectId" db:"subject_id"`
	Marks          float64   `json:"marks" db:"marks"`
	Status         SupStatus `json:"status" db:"status"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

// TranscriptSemester groups one semester's results with its GPA.
type TranscriptSemester struct {
	SemesterNumber int            `json:"semesterNumber"`
	Records        []ResultRecord `json:"records"`
	GPA            float64        `json:"gpa"`
}

// Transcript is the released academic record for a student.
type Transcript struct {
	Student    *Student             `json:"student"`
	Semesters  []TranscriptSemester `json:"semesters"`
	OverallGPA *float64             `json:"overallGpa,omitempty"` // Set only when all semesters were requested
}
