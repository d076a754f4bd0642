package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ConversionRequest carries the raw input of a single conversion.
// Codes are normalized by the conversion service.
type ConversionRequest struct {
	SourceCurrency string
	TargetCurrency string
	Amount         decimal.Decimal
	RequestedAt    *time.Time // Optional; processing time is used when nil
}

// ConversionRecord is the immutable result of one successful conversion.
type ConversionRecord struct {
	TransactionID   string          `json:"transactionId"` // Generated by the engine (UUID)
	SourceCurrency  CurrencyCode    `json:"sourceCurrency"`
	TargetCurrency  CurrencyCode    `json:"targetCurrency"`
	Amount          decimal.Decimal `json:"amount"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	Rate            decimal.Decimal `json:"exchangeRate"`
	ConvertedAt     time.Time       `json:"conversionDate"`
}

// conversionDateLayouts are tried in order; values without a zone are UTC.
var conversionDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseConversionDate parses a caller-supplied conversion timestamp.
func ParseConversionDate(raw string) (time.Time, error) {
	for _, layout := range conversionDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}
