package models

// AllSemesters selects every semester when passed where a semester number is expected.
const AllSemesters = 0

// CreditsPerSubject is the fixed credit weight applied to every subject in GPA
// calculations. Subjects carry no credit value of their own.
const CreditsPerSubject = 4

// SupStatus is the outcome of a supplementary exam
type SupStatus string

// SupStatus constants
const (
	SupStatusPending SupStatus = "Pending"
	SupStatusCleared SupStatus = "Cleared"
)
