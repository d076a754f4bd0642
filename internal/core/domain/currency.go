package domain

import (
	"regexp"
	"strings"

	"github.com/seadmustafa/FXAPI/internal/apperrors"
)

// CurrencyCode is a normalized three-letter uppercase currency code (e.g. "USD").
type CurrencyCode string

// PivotCurrency is the reference currency every quote is fetched against.
const PivotCurrency CurrencyCode = "EUR"

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// NormalizeCurrencyCode trims and upper-cases raw, then checks the format.
// Only the shape is validated; membership in an ISO registry is not checked.
func NormalizeCurrencyCode(raw string) (CurrencyCode, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if !currencyCodePattern.MatchString(code) {
		return "", apperrors.NewValidationError("Invalid currency code '" + raw + "'. Must be 3-letter ISO code.")
	}
	return CurrencyCode(code), nil
}

// IsValidCurrencyCode reports whether raw is already a normalized code.
func IsValidCurrencyCode(raw string) bool {
	return currencyCodePattern.MatchString(raw)
}

func (c CurrencyCode) String() string {
	return string(c)
}

// CurrencyPair is an ordered (base, target) pair. It is the rate cache key.
type CurrencyPair struct {
	Base   CurrencyCode
	Target CurrencyCode
}

func (p CurrencyPair) String() string {
	return string(p.Base) + "/" + string(p.Target)
}
