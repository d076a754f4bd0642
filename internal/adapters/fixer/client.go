// Package fixer implements the upstream RateProvider against the Fixer
// "latest rates" endpoint.
package fixer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	gojson "github.com/goccy/go-json"
	"github.com/seadmustafa/FXAPI/internal/apperrors"
	"github.com/seadmustafa/FXAPI/internal/core/domain"
	portssvc "github.com/seadmustafa/FXAPI/internal/core/ports/services"
	"github.com/seadmustafa/FXAPI/internal/middleware"
	"github.com/seadmustafa/FXAPI/internal/platform/metrics"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

// RateLimitErrorCode is the upstream error code for an exhausted request quota.
const RateLimitErrorCode = 106

// Fetch outcomes, used as metric labels.
const (
	outcomeSuccess     = "success"
	outcomeRateLimited = "rate_limited"
	outcomeUnavailable = "unavailable"
	outcomeMalformed   = "malformed"
)

// Config configures the upstream client.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	// RequestsPerSecond paces outgoing requests. Zero disables pacing.
	RequestsPerSecond float64
}

// Client fetches EUR-based quotes over HTTP. It does not retry or cache.
type Client struct {
	http    *resty.Client
	baseURL string
	apiKey  string
	limiter *rate.Limiter
	now     func() time.Time
}

// Option is a functional option for configuring the client
type Option func(*Client)

// WithClock sets the time source used to stamp quotes.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// NewClient creates a new upstream client.
func NewClient(cfg Config, options ...Option) *Client {
	httpClient := resty.New().
		SetHeader("Accept", "application/json").
		SetTimeout(cfg.Timeout)
	httpClient.JSONMarshal = gojson.Marshal
	httpClient.JSONUnmarshal = gojson.Unmarshal

	lim := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		lim = rate.Limit(cfg.RequestsPerSecond)
	}

	c := &Client{
		http:    httpClient,
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		limiter: rate.NewLimiter(lim, 1),
		now:     time.Now,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

var _ portssvc.RateProvider = (*Client)(nil)

type latestResponse struct {
	Success bool              `json:"success"`
	Base    string            `json:"base"`
	Rates   gojson.RawMessage `json:"rates"`
	Error   *apiError         `json:"error"`
}

type apiError struct {
	Code int    `json:"code"`
	Type string `json:"type"`
	Info string `json:"info"`
}

// Fetch issues one request for base against targets and classifies the
// answer:
//
//	success with a rates object      quote
//	error code 106                   transient (rate limited)
//	any other failure or bad body    transient (unavailable)
//	success with a non-object rates  permanent (malformed)
//	a rate that is not a positive    permanent (malformed)
//	number token
func (c *Client) Fetch(ctx context.Context, base domain.CurrencyCode, targets ...domain.CurrencyCode) (domain.RateQuote, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.RateQuote{}, ctxErr
		}
		// The limiter refuses up front when the wait would outlast the deadline.
		return domain.RateQuote{}, fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
	}

	start := time.Now()
	quote, outcome, err := c.fetch(ctx, base, targets)
	metrics.ObserveUpstreamFetch(outcome, start)

	logger := loggerFrom(ctx).With(
		slog.String("base", base.String()),
		slog.Int("symbols", len(targets)),
		slog.String("outcome", outcome),
		slog.Duration("duration", time.Since(start)),
	)
	if err != nil {
		logger.Warn("Upstream rate request failed", slog.String("error", err.Error()))
		return domain.RateQuote{}, err
	}
	logger.Debug("Upstream rate request succeeded")
	return quote, nil
}

func (c *Client) fetch(ctx context.Context, base domain.CurrencyCode, targets []domain.CurrencyCode) (domain.RateQuote, string, error) {
	symbols := make([]string, len(targets))
	for i, t := range targets {
		symbols[i] = t.String()
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"access_key": c.apiKey,
			"base":       base.String(),
			"symbols":    strings.Join(symbols, ","),
		}).
		Get(c.baseURL)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.RateQuote{}, outcomeUnavailable, ctxErr
		}
		return domain.RateQuote{}, outcomeUnavailable, unavailable("request failed", err)
	}

	var body latestResponse
	if err := gojson.Unmarshal(resp.Body(), &body); err != nil {
		return domain.RateQuote{}, outcomeUnavailable,
			unavailable(fmt.Sprintf("unreadable response (HTTP %d)", resp.StatusCode()), err)
	}

	if !body.Success {
		if body.Error != nil && body.Error.Code == RateLimitErrorCode {
			return domain.RateQuote{}, outcomeRateLimited,
				apperrors.New(apperrors.KindTransientProvider, "Upstream rate limit reached")
		}
		return domain.RateQuote{}, outcomeUnavailable, unavailable(describeFailure(resp.StatusCode(), body.Error), nil)
	}

	rates, err := decodeRates(body.Rates)
	if err != nil {
		return domain.RateQuote{}, outcomeMalformed,
			apperrors.Wrap(apperrors.KindMalformedProvider, "Upstream returned malformed rates", err)
	}

	return domain.RateQuote{Base: base, Rates: rates, FetchedAt: c.now().UTC()}, outcomeSuccess, nil
}

// decodeRates requires a JSON object mapping currency codes to bare numbers.
// null, strings, booleans and non-positive values are rejected.
func decodeRates(raw gojson.RawMessage) (map[domain.CurrencyCode]decimal.Decimal, error) {
	trimmed := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(trimmed, "{") {
		return nil, fmt.Errorf("rates is not an object: %.40s", trimmed)
	}

	var decoded map[string]gojson.RawMessage
	if err := gojson.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}

	rates := make(map[domain.CurrencyCode]decimal.Decimal, len(decoded))
	for code, value := range decoded {
		if !domain.IsValidCurrencyCode(code) {
			return nil, fmt.Errorf("invalid currency code %q in rates", code)
		}
		rate, err := parseNumber(value)
		if err != nil {
			return nil, fmt.Errorf("rate for %s: %w", code, err)
		}
		rates[domain.CurrencyCode(code)] = rate
	}
	return rates, nil
}

// parseNumber accepts only a positive JSON number token.
func parseNumber(value gojson.RawMessage) (decimal.Decimal, error) {
	token := strings.TrimSpace(string(value))
	if token == "" || (token[0] != '-' && (token[0] < '0' || token[0] > '9')) {
		return decimal.Decimal{}, fmt.Errorf("not a number: %.20s", token)
	}
	rate, err := decimal.NewFromString(token)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if !rate.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("not positive: %s", token)
	}
	return rate, nil
}

func unavailable(detail string, err error) error {
	cause := errors.New(detail)
	if err != nil {
		cause = fmt.Errorf("%s: %w", detail, err)
	}
	return apperrors.Wrap(apperrors.KindTransientProvider, "Upstream rate service unavailable", cause)
}

func describeFailure(status int, e *apiError) string {
	if e == nil {
		return fmt.Sprintf("upstream reported failure (HTTP %d)", status)
	}
	return fmt.Sprintf("upstream error %d %s: %s", e.Code, e.Type, e.Info)
}

func loggerFrom(ctx context.Context) *slog.Logger {
	if logger := middleware.GetLoggerFromCtx(ctx); logger != nil {
		return logger
	}
	return slog.Default()
}
