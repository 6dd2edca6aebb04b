package console

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/TONNY-TED/Results-Management-System/internal/app/models"
	"github.com/TONNY-TED/Results-Management-System/internal/pkg/helpers"
)

const rule = "----------------------------------------"

func printReceipt(w io.Writer, s *models.Student, p *models.Payment) {
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "PAYMENT RECEIPT")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Receipt No : %s\n", p.ReceiptNo)
	fmt.Fprintf(w, "Date       : %s\n", p.PaidOn.Format(helpers.DateLayout))
	fmt.Fprintf(w, "Student    : %s (%s)\n", s.Name, s.StudentNumber)
	fmt.Fprintf(w, "Program    : %s\n", s.Program)
	fmt.Fprintf(w, "Semester   : %d\n", p.Semester)
	fmt.Fprintf(w, "Amount     : %.2f\n", p.Amount)
	fmt.Fprintln(w, rule)
}

func printInvoice(w io.Writer, stmt *models.FeeStatement) {
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "FEE STATEMENT")
	fmt.Fprintf(w, "%s (%s), program %s\n", stmt.Student.Name, stmt.Student.StudentNumber, stmt.Student.Program)
	fmt.Fprintln(w, rule)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Semester\tFee\tDue\tPaid\tOutstanding\t")
	for _, l := range stmt.Lines {
		if !l.Applicable {
			fmt.Fprintf(tw, "%d\tn/a\t-\t%.2f\t-\t\n", l.Semester, l.Paid)
			continue
		}
		due := "-"
		if l.DueDate != nil {
			due = l.DueDate.Format(helpers.DateLayout)
		}
		fmt.Fprintf(tw, "%d\t%.2f\t%s\t%.2f\t%.2f\t\n", l.Semester, l.FeeAmount, due, l.Paid, l.Outstanding)
	}
	tw.Flush()

	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total fees %.2f, paid %.2f, outstanding %.2f\n", stmt.TotalFees, stmt.TotalPaid, stmt.TotalOutstanding)
}

func printTranscript(w io.Writer, t *models.Transcript) {
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "ACADEMIC TRANSCRIPT")
	fmt.Fprintf(w, "%s (%s)\n", t.Student.Name, t.Student.StudentNumber)
	fmt.Fprintln(w, rule)

	if len(t.Semesters) == 0 {
		fmt.Fprintln(w, "No results recorded.")
	}
	for _, sem := range t.Semesters {
		fmt.Fprintf(w, "Semester %d\n", sem.SemesterNumber)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, r := range sem.Records {
			fmt.Fprintf(tw, "  %s\t%.2f\t%s\n", r.SubjectName, r.Marks, r.Grade)
		}
		tw.Flush()
		fmt.Fprintf(w, "  GPA: %.2f\n", sem.GPA)
	}
	if t.OverallGPA != nil {
		fmt.Fprintln(w, rule)
		fmt.Fprintf(w, "Overall GPA: %.2f\n", *t.OverallGPA)
	}
}

func printTimetable(w io.Writer, classes []*models.ClassSlot) {
	if len(classes) == 0 {
		fmt.Fprintln(w, "No classes scheduled.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSem\tDay\tTime\tRoom\tSubject\tInstructor")
	for _, c := range classes {
		subject, instructor := "", ""
		if c.Subject != nil {
			subject = c.Subject.Name
		}
		if c.Instructor != nil {
			instructor = c.Instructor.Name
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.SemesterNumber, c.Day, c.TimeSlot, c.Room, subject, instructor)
	}
	tw.Flush()
}
