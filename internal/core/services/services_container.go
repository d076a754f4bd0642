package services

import (
	"fmt"

	"github.com/seadmustafa/FXAPI/internal/apperrors"
	portsrepo "github.com/seadmustafa/FXAPI/internal/core/ports/repositories"
	portssvc "github.com/seadmustafa/FXAPI/internal/core/ports/services"
	"github.com/seadmustafa/FXAPI/internal/platform/config"
)

// NewServiceContainer wires the rate pipeline (provider → retry → cache →
// calculator) and the services built on it.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, provider portssvc.RateProvider) (*portssvc.ServiceContainer, error) {
	if repos.HistoryRepo == nil {
		return nil, apperrors.New(apperrors.KindInternal, "conversion history repository is required")
	}

	retrying := NewRetryPolicy(provider, cfg.RetryInitialDelay)
	cache, err := NewRateCache(retrying, cfg.RateCacheMaxEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate cache: %w", err)
	}
	calculator := NewCrossRateCalculator(cache)

	conversion := NewConversionService(calculator, repos.HistoryRepo)

	return &portssvc.ServiceContainer{
		ExchangeRate: NewExchangeRateService(calculator),
		Conversion:   conversion,
		Bulk:         NewBulkConversionService(conversion),
	}, nil
}
