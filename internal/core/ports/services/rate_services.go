package services

import (
	"context"

	"github.com/seadmustafa/FXAPI/internal/core/domain"
)

// RateProvider fetches quotes from the upstream rate source. One call is one
// upstream request; implementations do not cache.
type RateProvider interface {
	Fetch(ctx context.Context, base domain.CurrencyCode, targets ...domain.CurrencyCode) (domain.RateQuote, error)
}

// RateProviderFunc adapts a function to RateProvider.
type RateProviderFunc func(ctx context.Context, base domain.CurrencyCode, targets ...domain.CurrencyCode) (domain.RateQuote, error)

// Fetch calls f.
func (f RateProviderFunc) Fetch(ctx context.Context, base domain.CurrencyCode, targets ...domain.CurrencyCode) (domain.RateQuote, error) {
	return f(ctx, base, targets...)
}

// RateCache stores quotes keyed by the ordered pair (base, target).
type RateCache interface {
	// Get returns the cached quote for (base, target), fetching and storing
	// it on a miss.
	Get(ctx context.Context, base, target domain.CurrencyCode) (domain.RateQuote, error)
	// Set stores quote under (base, target), replacing any existing entry.
	Set(base, target domain.CurrencyCode, quote domain.RateQuote)
}

// CrossRateCalculator resolves the rate between any two currencies.
type CrossRateCalculator interface {
	Rate(ctx context.Context, source, target domain.CurrencyCode) (domain.ResolvedRate, error)
}
