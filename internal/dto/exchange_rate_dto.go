package dto

import (
	"time"

	"github.com/seadmustafa/FXAPI/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExchangeRateResponse is the rate of one base currency against one or more targets.
type ExchangeRateResponse struct {
	BaseCurrency  string                     `json:"baseCurrency"`
	RateTimestamp *time.Time                 `json:"rateTimestamp"` // null for a same-currency rate
	Rates         map[string]decimal.Decimal `json:"rates"`
}

// ToExchangeRateResponse converts a domain.ResolvedRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *domain.ResolvedRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		BaseCurrency:  string(rate.Source),
		RateTimestamp: rate.AsOf,
		Rates:         map[string]decimal.Decimal{string(rate.Target): rate.Rate},
	}
}

// ToExchangeRateResponses converts a map of resolved rates keyed by target.
func ToExchangeRateResponses(rates map[domain.CurrencyCode]domain.ResolvedRate) map[string]ExchangeRateResponse {
	responses := make(map[string]ExchangeRateResponse, len(rates))
	for target, rate := range rates {
		rate := rate
		responses[string(target)] = ToExchangeRateResponse(&rate)
	}
	return responses
}
