package services

import (
	"github.com/TONNY-TED/Results-Management-System/internal/app/repositories"
	"github.com/TONNY-TED/Results-Management-System/internal/config"
	"github.com/TONNY-TED/Results-Management-System/internal/domain"
)

// Services defined in this package:
// - CatalogService: insert-or-fetch of students, courses, subjects, instructors, semesters
// - SchedulingService: conflict-checked class scheduling and enrollment
// - LedgerService: fee structures, payments, outstanding balances, registration
// - ResultsService: results, supplementary exams, GPA and transcripts

// Services bundles every service the front ends call.
type Services struct {
	Catalog    CatalogService
	Scheduling SchedulingService
	Ledger     LedgerService
	Results    ResultsService
}

// NewServices wires the services over the PostgreSQL repositories.
func NewServices(repos *repositories.Repositories, cfg *config.Config, clock domain.Clock) *Services {
	catalog := NewCatalogService(repos.StudentRepository, repos.CatalogRepository)
	ledger := NewLedgerService(repos.StudentRepository, repos.FeeRepository, repos.PaymentRepository,
		LedgerOptions{ReceiptPrefix: cfg.Ledger.ReceiptPrefix, Clock: clock})
	return &Services{
		Catalog:    catalog,
		Scheduling: NewSchedulingService(repos.ClassRepository, repos.StudentRepository, repos.CatalogRepository),
		Ledger:     ledger,
		Results:    NewResultsService(catalog, repos.ResultRepository, ledger),
	}
}
