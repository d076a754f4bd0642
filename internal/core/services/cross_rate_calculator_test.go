package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/seadmustafa/FXAPI/internal/apperrors"
	"github.com/seadmustafa/FXAPI/internal/core/domain"
	"github.com/seadmustafa/FXAPI/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var pivotFetchedAt = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestCalculator(t *testing.T, rates map[domain.CurrencyCode]string) (*services.CrossRateCalculator, *pivotProvider) {
	t.Helper()
	provider := newPivotProvider(rates, pivotFetchedAt)
	cache, err := services.NewRateCache(provider, 0)
	require.NoError(t, err)
	return services.NewCrossRateCalculator(cache), provider
}

func defaultPivotRates() map[domain.CurrencyCode]string {
	return map[domain.CurrencyCode]string{"USD": "1.10", "GBP": "0.85", "CHF": "0.95"}
}

func TestCrossRate_IdentityNeedsNoQuote(t *testing.T) {
	calc, provider := newTestCalculator(t, defaultPivotRates())

	for _, code := range []domain.CurrencyCode{"EUR", "USD", "JPY", "XYZ"} {
		rate, err := calc.Rate(context.Background(), code, code)
		require.NoError(t, err)
		assert.True(t, rate.Rate.Equal(decimal.NewFromInt(1)), code)
		assert.Nil(t, rate.AsOf, code)
	}
	assert.Equal(t, 0, provider.totalCalls())
}

func TestCrossRate_Cases(t *testing.T) {
	tests := []struct {
		name   string
		source domain.CurrencyCode
		target domain.CurrencyCode
		want   string
	}{
		{name: "direct from pivot", source: "EUR", target: "USD", want: "1.10"},
		{name: "inverse to pivot", source: "USD", target: "EUR", want: "0.909091"},
		{name: "inverse rounds half up", source: "GBP", target: "EUR", want: "1.176471"},
		{name: "cross", source: "USD", target: "GBP", want: "0.772727"},
		{name: "cross reversed", source: "GBP", target: "USD", want: "1.294118"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc, _ := newTestCalculator(t, defaultPivotRates())

			rate, err := calc.Rate(context.Background(), tt.source, tt.target)

			require.NoError(t, err)
			assert.True(t, rate.Rate.Equal(decimal.RequireFromString(tt.want)), "got %s", rate.Rate)
			assert.Equal(t, tt.source, rate.Source)
			assert.Equal(t, tt.target, rate.Target)
			require.NotNil(t, rate.AsOf)
			assert.Equal(t, pivotFetchedAt, *rate.AsOf)
		})
	}
}

func TestCrossRate_ReciprocalsMultiplyToOne(t *testing.T) {
	calc, _ := newTestCalculator(t, defaultPivotRates())
	codes := []domain.CurrencyCode{"EUR", "USD", "GBP", "CHF"}
	tolerance := decimal.RequireFromString("0.000001")

	for _, a := range codes {
		for _, b := range codes {
			ab, err := calc.Rate(context.Background(), a, b)
			require.NoError(t, err)
			ba, err := calc.Rate(context.Background(), b, a)
			require.NoError(t, err)

			diff := ab.Rate.Mul(ba.Rate).Sub(decimal.NewFromInt(1)).Abs()
			assert.True(t, diff.LessThanOrEqual(tolerance), "%s/%s: %s * %s", a, b, ab.Rate, ba.Rate)
		}
	}
}

func TestCrossRate_QuotesAreCachedPerTarget(t *testing.T) {
	calc, provider := newTestCalculator(t, defaultPivotRates())

	_, err := calc.Rate(context.Background(), "USD", "GBP")
	require.NoError(t, err)
	_, err = calc.Rate(context.Background(), "GBP", "USD")
	require.NoError(t, err)
	_, err = calc.Rate(context.Background(), "EUR", "USD")
	require.NoError(t, err)

	assert.Equal(t, 1, provider.callsFor("USD"))
	assert.Equal(t, 1, provider.callsFor("GBP"))
}

func TestCrossRate_MissingSymbolIsRateUnavailable(t *testing.T) {
	calc, _ := newTestCalculator(t, defaultPivotRates())

	_, err := calc.Rate(context.Background(), "USD", "JPY")

	assert.ErrorIs(t, err, apperrors.ErrRateUnavailable)
	assert.Contains(t, err.Error(), "EUR/JPY")
}

func TestCrossRate_ZeroPivotRateIsRateUnavailable(t *testing.T) {
	calc, _ := newTestCalculator(t, map[domain.CurrencyCode]string{"USD": "0"})

	_, err := calc.Rate(context.Background(), "USD", "EUR")

	assert.ErrorIs(t, err, apperrors.ErrRateUnavailable)
}

func TestCrossRate_ProviderErrorsPropagate(t *testing.T) {
	provider := new(MockRateProvider)
	provider.On("Fetch", mock.Anything, domain.PivotCurrency, mock.Anything).Return(domain.RateQuote{}, errMalformed)
	cache, err := services.NewRateCache(provider, 0)
	require.NoError(t, err)
	calc := services.NewCrossRateCalculator(cache)

	_, err = calc.Rate(context.Background(), "USD", "GBP")

	assert.Same(t, errMalformed, err)
}

func TestCrossRate_CrossRateUsesOldestQuoteTime(t *testing.T) {
	older := pivotFetchedAt.Add(-time.Hour)
	provider := new(MockRateProvider)
	provider.On("Fetch", mock.Anything, domain.PivotCurrency, []domain.CurrencyCode{"GBP"}).Return(domain.RateQuote{
		Base:      domain.PivotCurrency,
		Rates:     map[domain.CurrencyCode]decimal.Decimal{"GBP": decimal.RequireFromString("0.85")},
		FetchedAt: pivotFetchedAt,
	}, nil)
	provider.On("Fetch", mock.Anything, domain.PivotCurrency, []domain.CurrencyCode{"USD"}).Return(domain.RateQuote{
		Base:      domain.PivotCurrency,
		Rates:     map[domain.CurrencyCode]decimal.Decimal{"USD": decimal.RequireFromString("1.10")},
		FetchedAt: older,
	}, nil)
	cache, err := services.NewRateCache(provider, 0)
	require.NoError(t, err)

	rate, err := services.NewCrossRateCalculator(cache).Rate(context.Background(), "USD", "GBP")

	require.NoError(t, err)
	require.NotNil(t, rate.AsOf)
	assert.Equal(t, older, *rate.AsOf)
}
