package models

// Instructor defines the instructor model based on the 'instructors' table
type Instructor struct {
	ID               int64  `json:"id" db:"id" example:"1"`
	InstructorNumber string `json:"instructorNumber" db:"instructor_number" example:"INS-007"` // Externally assigned, unique
	Name             string `json:"name" db:"name" example:"Dr. Okello"`
}

// InstructorAssignment records that an instructor may teach a subject.
type InstructorAssignment struct {
	SubjectID    int64 `json:"subjectId" db:"subject_id"`
	InstructorID int64 `json:"instructorId" db:"instructor_id"`
}
