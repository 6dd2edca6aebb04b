package dto

// CreateStudentRequest resolves or creates a student
type CreateStudentRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=100"`
	StudentNumber string `json:"studentNumber" binding:"required,identifier"`
	Program       string `json:"program" binding:"omitempty,max=100"`
}

// AssignProgramRequest sets the program of a student
type AssignProgramRequest struct {
	Program string `json:"program" binding:"required,min=1,max=100"`
}

// CreateCourseRequest resolves or creates a course
type CreateCourseRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// CreateSubjectRequest resolves or creates a subject within a course
type CreateSubjectRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	CourseID int64  `json:"courseId" binding:"required,gt=0"`
}

// CreateInstructorRequest resolves or creates an instructor
type CreateInstructorRequest struct {
	Name             string `json:"name" binding:"required,min=1,max=100"`
	InstructorNumber string `json:"instructorNumber" binding:"required,identifier"`
}

// AssignInstructorRequest makes an instructor eligible for a subject
type AssignInstructorRequest struct {
	InstructorID int64 `json:"instructorId" binding:"required,gt=0"`
}
