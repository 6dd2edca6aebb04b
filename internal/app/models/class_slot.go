package models

// ClassSlot is a scheduled class. No two slots share (room, day, time slot) and no two
// share (instructor, day, time slot); the scheduling service enforces both.
type ClassSlot struct {
	ID             int64  `json:"id" db:"id"`
	Day            string `json:"day" db:"day"`
	TimeSlot       string `json:"timeSlot" db:"time_slot"`
	SubjectID      int64  `json:"subjectId" db:"subject_id"`
	InstructorID   int64  `json:"instructorId" db:"instructor_id"`
	Room           string `json:"room" db:"room"`
	SemesterNumber int    `json:"semesterNumber" db:"semester_number"`

	// Relations (populated when needed)
	Subject    *Subject    `json:"subject,omitempty"`
	Instructor *Instructor `json:"instructor,omitempty"`
}

// ClassFilter narrows a class listing; zero values are ignored.
type ClassFilter struct {
	SemesterNumber int
	Day            string
	InstructorID   int64
	Room           string
}

// Enrollment allocates a student to a class slot.
type Enrollment struct {
	StudentNumber string `json:"studentNumber" db:"student_number"`
	ClassSlotID   int64  `json:"classSlotId" db:"class_id"`
}
