package dto

// ResultEntryRequest enters exam or supplementary marks by name
type ResultEntryRequest struct {
	StudentName    string   `json:"studentName" binding:"required,min=1,max=100"`
	StudentNumber  string   `json:"studentNumber" binding:"required,identifier"`
	Program        string   `json:"program" binding:"omitempty,max=100"`
	SemesterNumber int      `json:"semesterNumber" binding:"required,gte=1"`
	CourseName     string   `json:"courseName" binding:"required,min=1,max=100"`
	SubjectName    string   `json:"subjectName" binding:"required,min=1,max=100"`
	Marks          *float64 `json:"marks" binding:"required,gte=0,lte=100"`
}
