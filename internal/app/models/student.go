package models

// Student defines the student model based on the 'students' table
type Student struct {
	ID              int64  `json:"id" db:"id" example:"1"`
	StudentNumber   string `json:"studentNumber" db:"student_number" example:"BIT/2021/042"` // Externally assigned, unique
	Name            string `json:"name" db:"name" example:"Jane Doe"`
	Program         string `json:"program" db:"program" example:"CS"`                    // Keys fee structures
	CurrentSemester int    `json:"currentSemester" db:"current_semester" example:"1"` // Starts at 1, +1 per registration
}

// Registration is the outcome of moving a student into the next semester
type Registration struct {
	Student            *Student `json:"student"`
	NewSemester        int      `json:"newSemester"`
	FeeStructureExists bool     `json:"feeStructureExists"` // Informational only
}
