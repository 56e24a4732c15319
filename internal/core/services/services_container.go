package services

import (
	portsprov "github.com/tipstack/marketplace_backend/internal/core/ports/providers"
	portsrepo "github.com/tipstack/marketplace_backend/internal/core/ports/repositories"
	portssvc "github.com/tipstack/marketplace_backend/internal/core/ports/services"
	"github.com/tipstack/marketplace_backend/internal/platform/config"
	"github.com/tipstack/marketplace_backend/internal/platform/ratecache"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, provider portsprov.RateProvider, cache *ratecache.Cache) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The resolver comes first; the converter and reporting build on it.
	container.RateResolver = NewRateResolverService(repos.ExchangeRateRepo, provider, cache)
	container.MoneyConverter = NewMoneyConverterService(container.RateResolver)
	container.Settlement = NewSettlementService(repos.SettlementRepo, repos.TransactionRepo, repos.ReferralEarningsRepo)
	container.Reporting = NewReportingService(repos.TransactionRepo, repos.SettlementRepo, repos.CatalogRepo, container.MoneyConverter, cfg.LedgerCurrency)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.RateResolverSvcFacade   = (*rateResolverService)(nil)
	_ portssvc.MoneyConverterSvcFacade = (*moneyConverterService)(nil)
	_ portssvc.SettlementSvcFacade     = (*settlementService)(nil)
	_ portssvc.ReportingSvcFacade      = (*reportingService)(nil)
)
