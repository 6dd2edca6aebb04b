package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/TONNY-TED/Results-Management-System/internal/app/models"
	"github.com/TONNY-TED/Results-Management-System/internal/domain"
	"github.com/TONNY-TED/Results-Management-System/internal/pkg/apperrors"
	"github.com/TONNY-TED/Results-Management-System/internal/pkg/helpers"
	"github.com/TONNY-TED/Results-Management-System/internal/pkg/logger"
)

// DefaultReceiptPrefix is used when LedgerOptions leaves the prefix empty
const DefaultReceiptPrefix = "RCPT"

// LedgerOptions tunes the ledger service
type LedgerOptions struct {
	ReceiptPrefix string
	Clock         domain.Clock // defaults to time.Now
}

// LedgerService defines the interface for fee and payment operations
type LedgerService interface {
	ComputeOutstanding(ctx context.Context, studentNumber string, semester int) (float64, error)
	HasOutstandingFees(ctx context.Context, studentNumber string) (bool, error)
	RegisterNewSemester(ctx context.Context, studentNumber string) (*models.Registration, error)
	RecordPayment(ctx context.Context, studentNumber string, semester int, amount float64, receiptNo string) (*models.Payment, error)
	SetFeeStructure(ctx context.Context, program string, amount float64, semester int, dueDate time.Time) (*models.FeeStructure, error)
	GetFeeStructure(ctx context.Context, program string, semester int) (*models.FeeStructure, error)
	FeeStatement(ctx context.Context, studentNumber string) (*models.FeeStatement, error)
	ListPayments(ctx context.Context, studentNumber string) ([]*models.Payment, error)
}

type ledgerServiceImpl struct {
	students domain.StudentStore
	fees     domain.FeeStore
	payments domain.PaymentStore
	prefix   string
	now      domain.Clock
}

// NewLedgerService creates a new ledger service instance
func NewLedgerService(students domain.StudentStore, fees domain.FeeStore, payments domain.PaymentStore, opts LedgerOptions) LedgerService {
	if opts.ReceiptPrefix == "" {
		opts.ReceiptPrefix = DefaultReceiptPrefix
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &ledgerServiceImpl{
		students: students,
		fees:     fees,
		payments: payments,
		prefix:   opts.ReceiptPrefix,
		now:      opts.Clock,
	}
}

// outstanding computes fee minus payments for an already loaded student
func (s *ledgerServiceImpl) outstanding(ctx context.Context, student *models.Student, semester int) (*models.FeeStructure, float64, float64, error) {
	fee, err := s.fees.GetFeeStructure(ctx, student.Program, semester)
	if err != nil {
		return nil, 0, 0, err
	}
	paid, err := s.payments.SumPayments(ctx, student.StudentNumber, semester)
	if err != nil {
		return nil, 0, 0, err
	}
	return fee, paid, fee.Amount - paid, nil
}

// ComputeOutstanding returns the fee for the semester minus everything paid toward it.
// Overpayment yields a negative balance. apperrors.ErrNoFeeStructure means no fee
// applies, which is not the same as a zero balance.
func (s *ledgerServiceImpl) ComputeOutstanding(ctx context.Context, studentNumber string, semester int) (float64, error) {
	if err := requireSemester(semester); err != nil {
		return 0, err
	}
	student, err := s.students.GetStudentByNumber(ctx, strings.TrimSpace(studentNumber))
	if err != nil {
		return 0, err
	}
	_, _, balance, err := s.outstanding(ctx, student, semester)
	return balance, err
}

// HasOutstandingFees reports whether any semester from 1 to the student's current
// semester has a positive balance. Semesters without a fee structure are skipped.
func (s *ledgerServiceImpl) HasOutstandingFees(ctx context.Context, studentNumber string) (bool, error) {
	student, err := s.students.GetStudentByNumber(ctx, strings.TrimSpace(studentNumber))
	if err != nil {
		return false, err
	}

	for sem := 1; sem <= student.CurrentSemester; sem++ {
		_, _, balance, err := s.outstanding(ctx, student, sem)
		if errors.Is(err, apperrors.ErrNoFeeStructure) {
			continue
		}
		if err != nil {
			return false, err
		}
		if balance > 0 {
			return true, nil
		}
	}
	return false, nil
}

func (s *ledgerServiceImpl) feeStructureExists(ctx context.Context, program string, semester int) (bool, error) {
	_, err := s.fees.GetFeeStructure(ctx, program, semester)
	switch {
	case errors.Is(err, apperrors.ErrNoFeeStructure):
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}

// RegisterNewSemester moves the student into the next semester. A missing fee
// structure for that semester is reported, not enforced. Every read that can fail
// happens before the registration is saved.
func (s *ledgerServiceImpl) RegisterNewSemester(ctx context.Context, studentNumber string) (*models.Registration, error) {
	number := strings.TrimSpace(studentNumber)
	before, err := s.students.GetStudentByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	exists, err := s.feeStructureExists(ctx, before.Program, before.CurrentSemester+1)
	if err != nil {
		return nil, err
	}

	student, err := s.students.RegisterSemester(ctx, number)
	if err != nil {
		return nil, err
	}
	if student.CurrentSemester != before.CurrentSemester+1 || student.Program != before.Program {
		// changed concurrently, the earlier lookup was for another semester
		if exists, err = s.feeStructureExists(ctx, student.Program, student.CurrentSemester); err != nil {
			logger.Warn().Err(err).Str("studentNumber", number).Msg("Fee structure lookup failed after registration")
			exists = false
		}
	}

	logger.Info().
		Str("studentNumber", student.StudentNumber).
		Int("semester", student.CurrentSemester).
		Bool("feeStructureExists", exists).
		Msg("Student registered for new semester")

	return &models.Registration{
		Student:            student,
		NewSemester:        student.CurrentSemester,
		FeeStructureExists: exists,
	}, nil
}

func (s *ledgerServiceImpl) newReceiptNo() string {
	return fmt.Sprintf("%s-%s", s.prefix, strings.ToUpper(uuid.NewString()[:8]))
}

// RecordPayment appends a payment dated today. An empty receipt number is generated.
func (s *ledgerServiceImpl) RecordPayment(ctx context.Context, studentNumber string, semester int, amount float64, receiptNo string) (*models.Payment, error) {
	if err := requireSemester(semester); err != nil {
		return nil, err
	}
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("payment amount must be positive, got %v", amount))
	}

	student, err := s.students.GetStudentByNumber(ctx, strings.TrimSpace(studentNumber))
	if err != nil {
		return nil, err
	}

	receiptNo = strings.TrimSpace(receiptNo)
	if receiptNo == "" {
		receiptNo = s.newReceiptNo()
	}

	payment, err := s.payments.InsertPayment(ctx, &models.Payment{
		StudentNumber: student.StudentNumber,
		Semester:      semester,
		Amount:        amount,
		PaidOn:        helpers.Today(s.now()),
		ReceiptNo:     receiptNo,
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("studentNumber", payment.StudentNumber).
		Int("semester", semester).
		Float64("amount", amount).
		Str("receiptNo", payment.ReceiptNo).
		Msg("Payment recorded")
	return payment, nil
}

// SetFeeStructure defines the fee for a program and semester, replacing any earlier one
func (s *ledgerServiceImpl) SetFeeStructure(ctx context.Context, program string, amount float64, semester int, dueDate time.Time) (*models.FeeStructure, error) {
	program, err := requireName("program", program)
	if err != nil {
		return nil, err
	}
	if err := requireSemester(semester); err != nil {
		return nil, err
	}
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("fee amount must not be negative, got %v", amount))
	}
	if dueDate.IsZero() {
		return nil, apperrors.NewInvalidInputError("due date is required")
	}

	fee, err := s.fees.UpsertFeeStructure(ctx, &models.FeeStructure{
		Program:  program,
		Semester: semester,
		Amount:   amount,
		DueDate:  dueDate,
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Str("program", program).Int("semester", semester).Float64("amount", amount).Msg("Fee structure set")
	return fee, nil
}

func (s *ledgerServiceImpl) GetFeeStructure(ctx context.Context, program string, semester int) (*models.FeeStructure, error) {
	if err := requireSemester(semester); err != nil {
		return nil, err
	}
	return s.fees.GetFeeStructure(ctx, strings.TrimSpace(program), semester)
}

// FeeStatement builds the invoice view over semesters 1..current. Semesters with no
// fee structure are listed as not applicable and excluded from the totals.
func (s *ledgerServiceImpl) FeeStatement(ctx context.Context, studentNumber string) (*models.FeeStatement, error) {
	student, err := s.students.GetStudentByNumber(ctx, strings.TrimSpace(studentNumber))
	if err != nil {
		return nil, err
	}

	stmt := &models.FeeStatement{Student: student, Lines: []models.FeeStatementLine{}}
	for sem := 1; sem <= student.CurrentSemester; sem++ {
		fee, paid, balance, err := s.outstanding(ctx, student, sem)
		if errors.Is(err, apperrors.ErrNoFeeStructure) {
			paid, err = s.payments.SumPayments(ctx, student.StudentNumber, sem)
			if err != nil {
				return nil, err
			}
			stmt.Lines = append(stmt.Lines, models.FeeStatementLine{Semester: sem, Paid: paid})
			continue
		}
		if err != nil {
			return nil, err
		}

		due := fee.DueDate
		stmt.Lines = append(stmt.Lines, models.FeeStatementLine{
			Semester:    sem,
			Applicable:  true,
			FeeAmount:   fee.Amount,
			DueDate:     &due,
			Paid:        paid,
			Outstanding: balance,
		})
		stmt.TotalFees += fee.Amount
		stmt.TotalPaid += paid
		stmt.TotalOutstanding += balance
	}
	return stmt, nil
}

func (s *ledgerServiceImpl) ListPayments(ctx context.Context, studentNumber string) ([]*models.Payment, error) {
	student, err := s.students.GetStudentByNumber(ctx, strings.TrimSpace(studentNumber))
	if err != nil {
		return nil, err
	}
	return s.payments.ListPayments(ctx, student.StudentNumber)
}
