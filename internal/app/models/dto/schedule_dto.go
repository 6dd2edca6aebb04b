package dto

// ScheduleClassRequest commits a class slot
type ScheduleClassRequest struct {
	Day            string `json:"day" binding:"required,weekday" example:"Monday"`
	TimeSlot       string `json:"timeSlot" binding:"required,timeslot" example:"08:00-10:00"`
	SubjectID      int64  `json:"subjectId" binding:"required,gt=0"`
	InstructorID   int64  `json:"instructorId" binding:"required,gt=0"`
	Room           string `json:"room" binding:"required,max=20" example:"LT1"`
	SemesterNumber int    `json:"semesterNumber" binding:"required,gte=1"`
}

// EnrollRequest allocates a student to a class
type EnrollRequest struct {
	StudentNumber string `json:"studentNumber" binding:"required,identifier"`
}

// ClassListQuery filters the timetable listing
type ClassListQuery struct {
	SemesterNumber int    `form:"semester" binding:"omitempty,gte=1"`
	Day            string `form:"day" binding:"omitempty,weekday"`
	InstructorID   int64  `form:"instructorId" binding:"omitempty,gt=0"`
	Room           string `form:"room" binding:"omitempty,max=20"`
}
