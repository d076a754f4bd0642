package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateQuote is a rate mapping fetched from the upstream provider for one
// base currency, timestamped at fetch time.
type RateQuote struct {
	Base      CurrencyCode                     `json:"base"`
	Rates     map[CurrencyCode]decimal.Decimal `json:"rates"`
	FetchedAt time.Time                        `json:"fetchedAt"`
}

// RateFor returns the quoted rate for target, if present.
func (q RateQuote) RateFor(target CurrencyCode) (decimal.Decimal, bool) {
	rate, ok := q.Rates[target]
	return rate, ok
}

// ResolvedRate is the exchange rate between any two currencies.
// AsOf is nil only for the same-currency identity rate.
type ResolvedRate struct {
	Source CurrencyCode    `json:"source"`
	Target CurrencyCode    `json:"target"`
	Rate   decimal.Decimal `json:"rate"`
	AsOf   *time.Time      `json:"asOf"`
}
