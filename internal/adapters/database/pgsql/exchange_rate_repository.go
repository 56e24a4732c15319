package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tipstack/marketplace_backend/internal/apperrors"
	"github.com/tipstack/marketplace_backend/internal/core/domain"
	portsrepo "github.com/tipstack/marketplace_backend/internal/core/ports/repositories"
)

// exchangeRateRepository implements the ExchangeRateRepositoryFacade using pgxpool.
type exchangeRateRepository struct {
	BaseRepository
}

func newExchangeRateRepository(db *pgxpool.Pool) portsrepo.ExchangeRateRepositoryFacade {
	return &exchangeRateRepository{BaseRepository: BaseRepository{Pool: db}}
}

const exchangeRateColumns = `
	base_currency, target_currency, rate, source, is_manual_override,
	fetched_at, valid_from, created_at, updated_at
`

func (r *exchangeRateRepository) scanRate(row pgx.Row) (*domain.ExchangeRate, error) {
	rate := &domain.ExchangeRate{}
	var source string
	err := row.Scan(
		&rate.BaseCurrency, &rate.TargetCurrency, &rate.Rate, &source, &rate.IsManualOverride,
		&rate.FetchedAt, &rate.ValidFrom, &rate.CreatedAt, &rate.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error scanning exchange rate: %w", err)
	}
	rate.Source = domain.RateSource(source)
	return rate, nil
}

// FindManualOverride retrieves the live record for a pair only if it is flagged
// as a manual override.
func (r *exchangeRateRepository) FindManualOverride(ctx context.Context, baseCurrency, targetCurrency string) (*domain.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE base_currency = $1 AND target_currency = $2 AND is_manual_override = TRUE
	`
	return r.scanRate(r.Pool.QueryRow(ctx, query, baseCurrency, targetCurrency))
}

// FindRate retrieves the live record for a pair regardless of source.
func (r *exchangeRateRepository) FindRate(ctx context.Context, baseCurrency, targetCurrency string) (*domain.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE base_currency = $1 AND target_currency = $2
	`
	return r.scanRate(r.Pool.QueryRow(ctx, query, baseCurrency, targetCurrency))
}

// UpsertProviderRate writes a freshly fetched provider rate. The manual-override
// flag is only initialized on insert and left untouched on update.
func (r *exchangeRateRepository) UpsertProviderRate(ctx context.Context, rate domain.ExchangeRate) error {
	query := `
		INSERT INTO exchange_rates (
			base_currency, target_currency, rate, source, is_manual_override,
			fetched_at, valid_from, created_at, updated_at
		) VALUES ($1, $2, $3, $4, FALSE, $5, $5, $5, $5)
		ON CONFLICT (base_currency, target_currency) DO UPDATE SET
			rate = EXCLUDED.rate,
			source = EXCLUDED.source,
			fetched_at = EXCLUDED.fetched_at,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.Pool.Exec(ctx, query,
		rate.BaseCurrency, rate.TargetCurrency, rate.Rate, string(domain.RateSourceProvider), rate.FetchedAt,
	)
	if err != nil {
		return fmt.Errorf("error upserting provider rate: %w", err)
	}
	return nil
}

// UpsertManualRate persists an admin override, creating the record if needed.
func (r *exchangeRateRepository) UpsertManualRate(ctx context.Context, rate domain.ExchangeRate) error {
	query := `
		INSERT INTO exchange_rates (
			base_currency, target_currency, rate, source, is_manual_override,
			fetched_at, valid_from, created_at, updated_at
		) VALUES ($1, $2, $3, $4, TRUE, $5, $5, $5, $5)
		ON CONFLICT (base_currency, target_currency) DO UPDATE SET
			rate = EXCLUDED.rate,
			source = EXCLUDED.source,
			is_manual_override = TRUE,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.Pool.Exec(ctx, query,
		rate.BaseCurrency, rate.TargetCurrency, rate.Rate, string(domain.RateSourceManual), rate.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("error upserting manual rate: %w", err)
	}
	return nil
}

// ClearManualOverride flips the override flag back without deleting the record,
// so history and the last known value survive.
func (r *exchangeRateRepository) ClearManualOverride(ctx context.Context, baseCurrency, targetCurrency string) error {
	query := `
		UPDATE exchange_rates
		SET is_manual_override = FALSE, source = $3, updated_at = NOW()
		WHERE base_currency = $1 AND target_currency = $2
	`
	tag, err := r.Pool.Exec(ctx, query, baseCurrency, targetCurrency, string(domain.RateSourceProvider))
	if err != nil {
		return fmt.Errorf("error clearing manual override: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// AppendHistory writes one immutable history entry.
func (r *exchangeRateRepository) AppendHistory(ctx context.Context, entry domain.ExchangeRateHistoryEntry) error {
	query := `
		INSERT INTO exchange_rate_history (
			base_currency, target_currency, rate, source, changed_by, created_at
		) VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
	`
	_, err := r.Pool.Exec(ctx, query,
		entry.BaseCurrency, entry.TargetCurrency, entry.Rate, string(entry.Source), entry.ChangedBy, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error appending exchange rate history: %w", err)
	}
	return nil
}

// ListHistory returns the most recent history entries for a pair, newest first.
func (r *exchangeRateRepository) ListHistory(ctx context.Context, baseCurrency, targetCurrency string, limit int) ([]domain.ExchangeRateHistoryEntry, error) {
	query := `
		SELECT base_currency, target_currency, rate, source, COALESCE(changed_by, ''), created_at
		FROM exchange_rate_history
		WHERE base_currency = $1 AND target_currency = $2
		ORDER BY created_at DESC
		LIMIT $3
	`
	rows, err := r.Pool.Query(ctx, query, baseCurrency, targetCurrency, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying exchange rate history: %w", err)
	}
	defer rows.Close()

	entries := []domain.ExchangeRateHistoryEntry{}
	for rows.Next() {
		var entry domain.ExchangeRateHistoryEntry
		var source string
		if err := rows.Scan(
			&entry.BaseCurrency, &entry.TargetCurrency, &entry.Rate, &source, &entry.ChangedBy, &entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning history entry: %w", err)
		}
		entry.Source = domain.RateSource(source)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history entries: %w", err)
	}
	return entries, nil
}
