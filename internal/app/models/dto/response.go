package dto

import "time"

// APIResponse is the envelope of every JSON response
type APIResponse struct {
	Success   bool         `json:"success" example:"true"`
	Message   string       `json:"message,omitempty" example:"Operation completed successfully"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewSuccessResponse creates a standard success envelope
func NewSuccessResponse(data interface{}, message string) APIResponse {
	return APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// IDResponse carries the identifier of a created row
type IDResponse struct {
	ID int64 `json:"id" example:"42"`
}

// OutstandingResponse reports the balance of one (student, semester) pair
type OutstandingResponse struct {
	StudentNumber string   `json:"studentNumber" example:"BIT/2021/042"`
	Semester      int      `json:"semester" example:"1"`
	Applicable    bool     `json:"applicable" example:"true"`
	Outstanding   *float64 `json:"outstanding,omitempty" example:"250.50"`
}

// GPAResponse reports a semester GPA, or the overall GPA when Semester is 0
type GPAResponse struct {
	StudentNumber string  `json:"studentNumber" example:"BIT/2021/042"`
	Semester      int     `json:"semester" example:"1"`
	GPA           float64 `json:"gpa" example:"3.25"`
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
