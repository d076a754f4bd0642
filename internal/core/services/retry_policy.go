package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/seadmustafa/FXAPI/internal/apperrors"
	"github.com/seadmustafa/FXAPI/internal/core/domain"
	portssvc "github.com/seadmustafa/FXAPI/internal/core/ports/services"
	"github.com/seadmustafa/FXAPI/internal/platform/metrics"
	"github.com/sethvargo/go-retry"
)

const (
	// DefaultMaxAttempts is the total number of upstream calls, first one included.
	DefaultMaxAttempts = 4
	// DefaultInitialDelay is the wait before the second attempt.
	DefaultInitialDelay = 2 * time.Second
)

// RetryPolicy wraps a RateProvider and retries transient failures with
// exponential backoff (d, 2d, 4d, ...). The wait happens on the calling
// goroutine and is cut short by context cancellation.
type RetryPolicy struct {
	BaseService
	provider     portssvc.RateProvider
	maxAttempts  uint64
	initialDelay time.Duration
	isRetryable  func(error) bool
}

// RetryOption is a functional option for configuring the retry policy
type RetryOption func(*RetryPolicy)

// WithMaxAttempts overrides the total number of attempts.
func WithMaxAttempts(n uint64) RetryOption {
	return func(p *RetryPolicy) {
		if n > 0 {
			p.maxAttempts = n
		}
	}
}

// WithRetryClassifier overrides which errors are retried.
func WithRetryClassifier(isRetryable func(error) bool) RetryOption {
	return func(p *RetryPolicy) {
		if isRetryable != nil {
			p.isRetryable = isRetryable
		}
	}
}

// NewRetryPolicy wraps provider. A non-positive initialDelay falls back to
// DefaultInitialDelay.
func NewRetryPolicy(provider portssvc.RateProvider, initialDelay time.Duration, options ...RetryOption) *RetryPolicy {
	if initialDelay <= 0 {
		initialDelay = DefaultInitialDelay
	}
	p := &RetryPolicy{
		provider:     provider,
		maxAttempts:  DefaultMaxAttempts,
		initialDelay: initialDelay,
		isRetryable:  apperrors.IsTransient,
	}
	for _, option := range options {
		option(p)
	}
	return p
}

var _ portssvc.RateProvider = (*RetryPolicy)(nil)

// Fetch calls the wrapped provider until it succeeds, fails permanently or
// runs out of attempts. The last provider error is returned unchanged.
func (p *RetryPolicy) Fetch(ctx context.Context, base domain.CurrencyCode, targets ...domain.CurrencyCode) (domain.RateQuote, error) {
	// Backoffs are stateful, so every call gets its own.
	backoff := retry.WithMaxRetries(p.maxAttempts-1, retry.NewExponential(p.initialDelay))

	var (
		quote   domain.RateQuote
		attempt int
	)
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		q, err := p.provider.Fetch(ctx, base, targets...)
		if err == nil {
			metrics.RetryAttemptsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
			quote = q
			return nil
		}
		metrics.RetryAttemptsTotal.WithLabelValues(metrics.OutcomeFailure).Inc()

		if !p.isRetryable(err) {
			return err
		}
		p.LogWarn(ctx, err, "Transient upstream failure",
			slog.String("base", base.String()),
			slog.String("targets", joinCodes(targets)),
			slog.Int("attempt", attempt),
			slog.Uint64("max_attempts", p.maxAttempts))
		return retry.RetryableError(err)
	})
	if err != nil {
		return domain.RateQuote{}, err
	}
	return quote, nil
}

func joinCodes(codes []domain.CurrencyCode) string {
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}
