package dto

// SetFeeStructureRequest defines the fee for a program and semester
type SetFeeStructureRequest struct {
	Program  string  `json:"program" binding:"required,min=1,max=100" example:"CS"`
	Semester int     `json:"semester" binding:"required,gte=1" example:"1"`
	Amount   float64 `json:"amount" binding:"gte=0" example:"1000"`
	DueDate  string  `json:"dueDate" binding:"required,datetime=2006-01-02" example:"2024-01-01"`
}

// RecordPaymentRequest appends a payment; an empty receipt number is generated
type RecordPaymentRequest struct {
	Semester  int     `json:"semester" binding:"required,gte=1" example:"1"`
	Amount    float64 `json:"amount" binding:"required,gt=0" example:"500"`
	ReceiptNo string  `json:"receiptNo" binding:"omitempty,max=40" example:"RCPT-0001"`
}

// FeeStructureQuery selects one fee structure
type FeeStructureQuery struct {
	Program  string `form:"program" binding:"required,min=1,max=100"`
	Semester int    `form:"semester" binding:"required,gte=1"`
}
