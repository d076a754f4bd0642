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

var (
	errRateLimited = apperrors.New(apperrors.KindTransientProvider, "Upstream rate limit reached")
	errMalformed   = apperrors.New(apperrors.KindMalformedProvider, "Upstream returned malformed rates")
)

func usdQuote() domain.RateQuote {
	return domain.RateQuote{
		Base:      domain.PivotCurrency,
		Rates:     map[domain.CurrencyCode]decimal.Decimal{"USD": decimal.RequireFromString("1.10")},
		FetchedAt: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestRetryPolicy_SucceedsFirstAttempt(t *testing.T) {
	provider := new(MockRateProvider)
	provider.On("Fetch", mock.Anything, domain.PivotCurrency, []domain.CurrencyCode{"USD"}).Return(usdQuote(), nil).Once()

	policy := services.NewRetryPolicy(provider, time.Millisecond)
	quote, err := policy.Fetch(context.Background(), domain.PivotCurrency, "USD")

	require.NoError(t, err)
	assert.Equal(t, usdQuote(), quote)
	provider.AssertNumberOfCalls(t, "Fetch", 1)
}

func TestRetryPolicy_ExhaustsAttemptsOnTransientFailure(t *testing.T) {
	const d0 = 20 * time.Millisecond
	provider := new(MockRateProvider)
	provider.On("Fetch", mock.Anything, domain.PivotCurrency, mock.Anything).Return(domain.RateQuote{}, errRateLimited)

	policy := services.NewRetryPolicy(provider, d0)
	start := time.Now()
	_, err := policy.Fetch(context.Background(), domain.PivotCurrency, "USD")
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrTransientProvider)
	assert.Same(t, errRateLimited, err)
	provider.AssertNumberOfCalls(t, "Fetch", services.DefaultMaxAttempts)
	// d0 + 2d0 + 4d0, with slack for scheduling.
	assert.GreaterOrEqual(t, elapsed, 7*d0)
	assert.Less(t, elapsed, 7*d0+time.Second)
}

func TestRetryPolicy_RecoversAfterTransientFailures(t *testing.T) {
	provider := new(MockRateProvider)
	provider.On("Fetch", mock.Anything, domain.PivotCurrency, mock.Anything).Return(domain.RateQuote{}, errRateLimited).Twice()
	provider.On("Fetch", mock.Anything, domain.PivotCurrency, mock.Anything).Return(usdQuote(), nil).Once()

	policy := services.NewRetryPolicy(provider, time.Millisecond)
	quote, err := policy.Fetch(context.Background(), domain.PivotCurrency, "USD")

	require.NoError(t, err)
	assert.Equal(t, usdQuote(), quote)
	provider.AssertNumberOfCalls(t, "Fetch", 3)
}

func TestRetryPolicy_DoesNotRetryPermanentFailure(t *testing.T) {
	provider := new(MockRateProvider)
	provider.On("Fetch", mock.Anything, domain.PivotCurrency, mock.Anything).Return(domain.RateQuote{}, errMalformed)

	policy := services.NewRetryPolicy(provider, time.Millisecond)
	_, err := policy.Fetch(context.Background(), domain.PivotCurrency, "USD")

	assert.Same(t, errMalformed, err)
	provider.AssertNumberOfCalls(t, "Fetch", 1)
}

func TestRetryPolicy_CancelledDuringBackoff(t *testing.T) {
	provider := new(MockRateProvider)
	provider.On("Fetch", mock.Anything, domain.PivotCurrency, mock.Anything).Return(domain.RateQuote{}, errRateLimited)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	policy := services.NewRetryPolicy(provider, time.Minute)
	start := time.Now()
	_, err := policy.Fetch(ctx, domain.PivotCurrency, "USD")

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
	provider.AssertNumberOfCalls(t, "Fetch", 1)
}

func TestRetryPolicy_Options(t *testing.T) {
	provider := new(MockRateProvider)
	provider.On("Fetch", mock.Anything, domain.PivotCurrency, mock.Anything).Return(domain.RateQuote{}, errMalformed)

	policy := services.NewRetryPolicy(provider, time.Millisecond,
		services.WithMaxAttempts(2),
		services.WithRetryClassifier(func(error) bool { return true }),
	)
	_, err := policy.Fetch(context.Background(), domain.PivotCurrency, "USD")

	assert.Same(t, errMalformed, err)
	provider.AssertNumberOfCalls(t, "Fetch", 2)
}
