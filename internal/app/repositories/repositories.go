package repositories

import (
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TONNY-TED/Results-Management-System/internal/domain"
)

var (
	_ domain.StudentStore = (*StudentRepository)(nil)
	_ domain.CatalogStore = (*CatalogRepository)(nil)
	_ domain.ClassStore   = (*ClassRepository)(nil)
	_ domain.FeeStore     = (*FeeRepository)(nil)
	_ domain.PaymentStore = (*PaymentRepository)(nil)
	_ domain.ResultStore  = (*ResultRepository)(nil)
	_ domain.SlotTx       = (*slotTx)(nil)
)

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository *StudentRepository
	CatalogRepository *CatalogRepository
	ClassRepository   *ClassRepository
	FeeRepository     *FeeRepository
	PaymentRepository *PaymentRepository
	ResultRepository  *ResultRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		StudentRepository: NewStudentRepository(db),
		CatalogRepository: NewCatalogRepository(db),
		ClassRepository:   NewClassRepository(db),
		FeeRepository:     NewFeeRepository(db),
		PaymentRepository: NewPaymentRepository(db),
		ResultRepository:  NewResultRepository(db),
	}
}

// statementBuilder returns a squirrel builder using PostgreSQL placeholders
func statementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}
