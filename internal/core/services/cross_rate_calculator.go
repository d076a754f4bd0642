package services

import (
	"context"
	"fmt"
	"time"

	"github.com/seadmustafa/FXAPI/internal/apperrors"
	"github.com/seadmustafa/FXAPI/internal/core/domain"
	portssvc "github.com/seadmustafa/FXAPI/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// RateScale is the number of fractional digits kept when a rate is derived
// by division. Division is the only place a rate is rounded.
const RateScale int32 = 6

// CrossRateCalculator derives any-to-any rates from EUR-based quotes.
type CrossRateCalculator struct {
	BaseService
	cache portssvc.RateCache
}

// NewCrossRateCalculator creates a calculator reading quotes from cache.
func NewCrossRateCalculator(cache portssvc.RateCache) *CrossRateCalculator {
	return &CrossRateCalculator{cache: cache}
}

var _ portssvc.CrossRateCalculator = (*CrossRateCalculator)(nil)

// Rate resolves source→target. Codes must already be normalized.
//
//	source == target  1, no quote lookup
//	EUR → X           EUR/X
//	X → EUR           1 / (EUR/X)
//	X → Y             (EUR/Y) / (EUR/X)
func (c *CrossRateCalculator) Rate(ctx context.Context, source, target domain.CurrencyCode) (domain.ResolvedRate, error) {
	resolved := domain.ResolvedRate{Source: source, Target: target}

	switch {
	case source == target:
		resolved.Rate = decimal.NewFromInt(1)
		return resolved, nil

	case source == domain.PivotCurrency:
		rate, asOf, err := c.pivotRate(ctx, target)
		if err != nil {
			return domain.ResolvedRate{}, err
		}
		resolved.Rate = rate
		resolved.AsOf = &asOf
		return resolved, nil

	case target == domain.PivotCurrency:
		rate, asOf, err := c.pivotRate(ctx, source)
		if err != nil {
			return domain.ResolvedRate{}, err
		}
		resolved.Rate = decimal.NewFromInt(1).DivRound(rate, RateScale)
		resolved.AsOf = &asOf
		return resolved, nil

	default:
		targetRate, targetAsOf, err := c.pivotRate(ctx, target)
		if err != nil {
			return domain.ResolvedRate{}, err
		}
		sourceRate, sourceAsOf, err := c.pivotRate(ctx, source)
		if err != nil {
			return domain.ResolvedRate{}, err
		}
		resolved.Rate = targetRate.DivRound(sourceRate, RateScale)
		// A cross rate is as old as its oldest leg.
		asOf := targetAsOf
		if sourceAsOf.Before(asOf) {
			asOf = sourceAsOf
		}
		resolved.AsOf = &asOf
		return resolved, nil
	}
}

// pivotRate returns EUR→code and the time its quote was fetched.
func (c *CrossRateCalculator) pivotRate(ctx context.Context, code domain.CurrencyCode) (decimal.Decimal, time.Time, error) {
	quote, err := c.cache.Get(ctx, domain.PivotCurrency, code)
	if err != nil {
		return decimal.Decimal{}, time.Time{}, err
	}
	rate, ok := quote.RateFor(code)
	if !ok || !rate.IsPositive() {
		return decimal.Decimal{}, time.Time{}, apperrors.New(apperrors.KindRateUnavailable,
			fmt.Sprintf("Exchange rate not available for %s/%s", domain.PivotCurrency, code))
	}
	return rate, quote.FetchedAt, nil
}
