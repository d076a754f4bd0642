package services

import (
	"context"
	"log/slog"

	"github.com/seadmustafa/FXAPI/internal/apperrors"
	"github.com/seadmustafa/FXAPI/internal/core/domain"
	portssvc "github.com/seadmustafa/FXAPI/internal/core/ports/services"
)

// ExchangeRateService provides business logic for exchange rate lookups.
type ExchangeRateService struct {
	BaseService
	calculator portssvc.CrossRateCalculator
}

// NewExchangeRateService creates a new ExchangeRateService.
func NewExchangeRateService(calculator portssvc.CrossRateCalculator) *ExchangeRateService {
	return &ExchangeRateService{calculator: calculator}
}

var _ portssvc.ExchangeRateSvcFacade = (*ExchangeRateService)(nil)

// GetExchangeRate resolves the rate from base to target. Identical codes
// yield the identity rate with no timestamp.
func (s *ExchangeRateService) GetExchangeRate(ctx context.Context, base, target string) (*domain.ResolvedRate, error) {
	baseCode, err := domain.NormalizeCurrencyCode(base)
	if err != nil {
		return nil, err
	}
	targetCode, err := domain.NormalizeCurrencyCode(target)
	if err != nil {
		return nil, err
	}

	rate, err := s.calculator.Rate(ctx, baseCode, targetCode)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve exchange rate",
			slog.String("base", baseCode.String()),
			slog.String("target", targetCode.String()))
		return nil, err
	}
	return &rate, nil
}

// GetExchangeRates resolves base against every target. Duplicate targets are
// resolved once. The first failure aborts the lookup.
func (s *ExchangeRateService) GetExchangeRates(ctx context.Context, base string, targets []string) (map[domain.CurrencyCode]domain.ResolvedRate, error) {
	if len(targets) == 0 {
		return nil, apperrors.NewValidationError("At least one target currency is required")
	}
	baseCode, err := domain.NormalizeCurrencyCode(base)
	if err != nil {
		return nil, err
	}

	rates := make(map[domain.CurrencyCode]domain.ResolvedRate, len(targets))
	for _, target := range targets {
		targetCode, err := domain.NormalizeCurrencyCode(target)
		if err != nil {
			return nil, err
		}
		if _, done := rates[targetCode]; done {
			continue
		}

		rate, err := s.calculator.Rate(ctx, baseCode, targetCode)
		if err != nil {
			s.LogError(ctx, err, "Failed to resolve exchange rate",
				slog.String("base", baseCode.String()),
				slog.String("target", targetCode.String()))
			return nil, err
		}
		rates[targetCode] = rate
	}

	s.LogDebug(ctx, "Resolved exchange rates", slog.String("base", baseCode.String()), slog.Int("count", len(rates)))
	return rates, nil
}
