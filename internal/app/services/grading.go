package services

import "github.com/TONNY-TED/Results-Management-System/internal/app/models"

// Grade letters
const (
	GradeA = "A"
	GradeB = "B"
	GradeC = "C"
	GradeD = "D"
	GradeF = "F"
)

// ComputeGrade maps marks onto a letter grade. Lower bounds are inclusive.
func ComputeGrade(marks float64) string {
	switch {
	case marks >= 90:
		return GradeA
	case marks >= 80:
		return GradeB
	case marks >= 70:
		return GradeC
	case marks >= 60:
		return GradeD
	default:
		return GradeF
	}
}

// GradeToPoints returns the grade points for a letter; unknown letters score 0.
func GradeToPoints(grade string) int {
	switch grade {
	case GradeA:
		return 4
	case GradeB:
		return 3
	case GradeC:
		return 2
	case GradeD:
		return 1
	default:
		return 0
	}
}

// GPA is the credit-weighted mean of grade points with every subject carrying
// models.CreditsPerSubject credits. An empty set yields 0.
func GPA(records []models.ResultRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	totalPoints, totalCredits := 0, 0
	for _, r := range records {
		totalPoints += GradeToPoints(r.Grade) * models.CreditsPerSubject
		totalCredits += models.CreditsPerSubject
	}
	return float64(totalPoints) / float64(totalCredits)
}
