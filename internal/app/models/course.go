package models

// Course is a named course of study, deduplicated by name.
type Course struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Subject belongs to a Course and is unique per (name, course).
type Subject struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	CourseID int64  `json:"courseId" db:"course_id"`
}

// Semester is a catalog entry for a semester number.
type Semester struct {
	ID     int64 `json:"id" db:"id"`
	Number int   `json:"number" db:"semester_number"`
}
