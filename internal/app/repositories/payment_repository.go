package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TONNY-TED/Results-Management-System/internal/app/models"
	"github.com/TONNY-TED/Results-Management-System/internal/db"
	"github.com/TONNY-TED/Results-Management-System/internal/pkg/apperrors"
	"github.com/TONNY-TED/Results-Management-System/internal/pkg/dberrors"
	"github.com/TONNY-TED/Results-Management-System/internal/pkg/logger"
)

// PaymentRepository appends to and reads the payment ledger. Rows are never updated.
type PaymentRepository struct {
	db db.Conn
	sb squirrel.StatementBuilderType
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// InsertPayment appends a payment and returns it with its ID
func (r *PaymentRepository) InsertPayment(ctx context.Context, p *models.Payment) (*models.Payment, error) {
	sql, args, err := r.sb.Insert("student_payments").
		Columns("student_number", "semester_number", "amount_paid", "payment_date", "receipt_no").
		Values(p.StudentNumber, p.Semester, p.Amount, p.PaidOn, p.ReceiptNo).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert payment query: %w", err)
	}

	saved := *p
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&saved.ID); err != nil {
		switch {
		case dberrors.IsForeignKeyError(err, "student_payments_student_number_fkey"):
			return nil, apperrors.ErrStudentNotFound
		case dberrors.IsDuplicateConstraintError(err, "student_payments_receipt_no_key"):
			return nil, apperrors.NewCustomError(apperrors.ErrResourceAlreadyExists,
				fmt.Sprintf("receipt %s is already recorded", p.ReceiptNo))
		}
		logger.Error().Err(err).Str("studentNumber", p.StudentNumber).Str("receiptNo", p.ReceiptNo).Msg("Error inserting payment")
		return nil, apperrors.NewStorageError("insert payment", err)
	}
	return &saved, nil
}

// SumPayments totals the payments a student made for a semester
func (r *PaymentRepository) SumPayments(ctx context.Context, studentNumber string, semester int) (float64, error) {
	sql, args, err := r.sb.Select("COALESCE(SUM(amount_paid), 0)::float8").
		From("student_payments").
		Where(squirrel.Eq{"student_number": studentNumber, "semester_number": semester}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build sum payments query: %w", err)
	}

	var total float64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		logger.Error().Err(err).Str("studentNumber", studentNumber).Int("semester", semester).Msg("Error summing payments")
		return 0, apperrors.NewStorageError("sum payments", err)
	}
	return total, nil
}

// ListPayments returns a student's payments oldest first
func (r *PaymentRepository) ListPayments(ctx context.Context, studentNumber string) ([]*models.Payment, error) {
	sql, args, err := r.sb.Select("id", "student_number", "semester_number", "amount_paid::float8", "payment_date", "receipt_no").
		From("student_payments").
		Where(squirrel.Eq{"student_number": studentNumber}).
		OrderBy("payment_date", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list payments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperrors.NewStorageError("list payments", err)
	}
	defer rows.Close()

	payments := []*models.Payment{}
	for rows.Next() {
		p := &models.Payment{}
		if err := rows.Scan(&p.ID, &p.StudentNumber, &p.Semester, &p.Amount, &p.PaidOn, &p.ReceiptNo); err != nil {
			return nil, apperrors.NewStorageError("scan payment", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("iterate payments", err)
	}
	return payments, nil
}
