package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/tipstack/marketplace_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgsql repositories over one shared pool.
func NewRepositoryProvider(db *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		ExchangeRateRepo:     newExchangeRateRepository(db),
		SettlementRepo:       newSettlementRepository(db),
		TransactionRepo:      newTransactionRepository(db),
		ReferralEarningsRepo: newReferralEarningsRepository(db),
		CatalogRepo:          newCatalogRepository(db),
	}
}
