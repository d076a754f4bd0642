package services

import (
	"context"

	"github.com/seadmustafa/FXAPI/internal/core/domain"
)

// ExchangeRateReaderSvc defines read operations for exchange rates
type ExchangeRateReaderSvc interface {
	// GetExchangeRate resolves the rate between two currency codes. Codes are
	// normalized before use.
	GetExchangeRate(ctx context.Context, base, target string) (*domain.ResolvedRate, error)

	// GetExchangeRates resolves the rate from base to each target, keyed by
	// the normalized target code.
	GetExchangeRates(ctx context.Context, base string, targets []string) (map[domain.CurrencyCode]domain.ResolvedRate, error)
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
}
