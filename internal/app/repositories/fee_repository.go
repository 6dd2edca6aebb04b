package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TONNY-TED/Results-Management-System/internal/app/models"
	"github.com/TONNY-TED/Results-Management-System/internal/db"
	"github.com/TONNY-TED/Results-Management-System/internal/pkg/apperrors"
	"github.com/TONNY-TED/Results-Management-System/internal/pkg/logger"
)

// FeeRepository handles fee structure database operations
type FeeRepository struct {
	db db.Conn
	sb squirrel.StatementBuilderType
}

// NewFeeRepository creates a new FeeRepository
func NewFeeRepository(db *pgxpool.Pool) *FeeRepository {
	return &FeeRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanFee(row pgx.Row) (*models.FeeStructure, error) {
	f := &models.FeeStructure{}
	if err := row.Scan(&f.ID, &f.Program, &f.Semester, &f.Amount, &f.DueDate); err != nil {
		return nil, err
	}
	return f, nil
}

// UpsertFeeStructure writes the fee for (program, semester); the last write wins
func (r *FeeRepository) UpsertFeeStructure(ctx context.Context, fee *models.FeeStructure) (*models.FeeStructure, error) {
	sql, args, err := r.sb.Insert("fee_structure").
		Columns("program", "semester", "fee_amount", "due_date").
		Values(fee.Program, fee.Semester, fee.Amount, fee.DueDate).
		Suffix(`ON CONFLICT ON CONSTRAINT fee_structure_program_semester_key
			DO UPDATE SET fee_amount = EXCLUDED.fee_amount, due_date = EXCLUDED.due_date
			RETURNING id, program, semester, fee_amount::float8, due_date`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build upsert fee structure query: %w", err)
	}

	saved, err := scanFee(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		logger.Error().Err(err).Str("program", fee.Program).Int("semester", fee.Semester).Msg("Error upserting fee structure")
		return nil, apperrors.NewStorageError("upsert fee structure", err)
	}
	return saved, nil
}

// GetFeeStructure returns the fee for (program, semester) or apperrors.ErrNoFeeStructure
func (r *FeeRepository) GetFeeStructure(ctx context.Context, program string, semester int) (*models.FeeStructure, error) {
	sql, args, err := r.sb.Select("id", "program", "semester", "fee_amount::float8", "due_date").
		From("fee_structure").
		Where(squirrel.Eq{"program": program, "semester": semester}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get fee structure query: %w", err)
	}

	fee, err := scanFee(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoFeeStructure
		}
		logger.Error().Err(err).Str("program", program).Int("semester", semester).Msg("Error scanning fee structure")
		return nil, apperrors.NewStorageError("get fee structure", err)
	}
	return fee, nil
}
