package models

import "time"

// FeeStructure is the amount due for a program in a semester. At most one exists
// per (program, semester); later writes overwrite.
type FeeStructure struct {
	ID       int64     `json:"id" db:"id"`
	Program  string    `json:"program" db:"program"`
	Semester int       `json:"semester" db:"semester"`
	Amount   float64   `json:"amount" db:"fee_amount"`
	DueDate  time.Time `json:"dueDate" db:"due_date"`
}

// Payment is an append-only ledger entry.
type Payment struct {
	ID            int64     `json:"id" db:"id"`
	StudentNumber string    `json:"studentNumber" db:"student_number"`
	Semester      int       `json:"semester" db:"semester_number"`
	Amount        float64   `json:"amount" db:"amount_paid"`
	PaidOn        time.Time `json:"paidOn" db:"payment_date"`
	ReceiptNo     string    `json:"receiptNo" db:"receipt_no"`
}

// FeeStatementLine summarises one semester of a student's account.
type FeeStatementLine struct {
	Semester    int        `json:"semester"`
	Applicable  bool       `json:"applicable"` // false when no fee structure exists
	FeeAmount   float64    `json:"feeAmount"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Paid        float64    `json:"paid"`
	Outstanding float64    `json:"outstanding"`
}

// FeeStatement is the invoice view over semesters 1..current.
type FeeStatement struct {
	Student          *Student           `json:"student"`
	Lines            []FeeStatementLine `json:"lines"`
	TotalFees        float64            `json:"totalFees"`
	TotalPaid        float64            `json:"totalPaid"`
	TotalOutstanding float64            `json:"totalOutstanding"`
}
