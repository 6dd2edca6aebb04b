package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/TONNY-TED/Results-Management-System/internal/domain"
)

// CreateDefaultData pre-creates the semester catalog entries 1..semesters. It keeps
// going past individual failures and returns them joined.
func CreateDefaultData(ctx context.Context, catalog domain.CatalogStore, semesters int, lgr zerolog.Logger) error {
	lgr.Info().Int("semesters", semesters).Msg("Checking/Creating default semesters...")

	var finalErr error
	created := 0
	for n := 1; n <= semesters; n++ {
		if _, err := catalog.UpsertSemester(ctx, n); err != nil {
			lgr.Error().Err(err).Int("semester", n).Msg("Error creating semester")
			finalErr = errors.Join(finalErr, fmt.Errorf("semester %d: %w", n, err))
			continue
		}
		created++
	}

	if finalErr != nil {
		return finalErr
	}
	lgr.Info().Int("count", created).Msg("Default semesters ensured")
	return nil
}
