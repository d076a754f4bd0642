package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/seadmustafa/FXAPI/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockRateProvider is a mock type for the RateProvider interface
type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) Fetch(ctx context.Context, base domain.CurrencyCode, targets ...domain.CurrencyCode) (domain.RateQuote, error) {
	args := m.Called(ctx, base, targets)
	return args.Get(0).(domain.RateQuote), args.Error(1)
}

// MockCrossRateCalculator is a mock type for the CrossRateCalculator interface
type MockCrossRateCalculator struct {
	mock.Mock
}

func (m *MockCrossRateCalculator) Rate(ctx context.Context, source, target domain.CurrencyCode) (domain.ResolvedRate, error) {
	args := m.Called(ctx, source, target)
	return args.Get(0).(domain.ResolvedRate), args.Error(1)
}

// MockConversionHistoryRepository is a mock type for the ConversionHistoryRepositoryFacade interface
type MockConversionHistoryRepository struct {
	mock.Mock
}

func (m *MockConversionHistoryRepository) Save(ctx context.Context, record domain.ConversionRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockConversionHistoryRepository) FindByDateRange(ctx context.Context, start, endInclusive time.Time, page, size int) (domain.Page[domain.ConversionRecord], error) {
	args := m.Called(ctx, start, endInclusive, page, size)
	return args.Get(0).(domain.Page[domain.ConversionRecord]), args.Error(1)
}

// MockConversionWriter is a mock type for the ConversionWriterSvc interface
type MockConversionWriter struct {
	mock.Mock
}

func (m *MockConversionWriter) Convert(ctx context.Context, req domain.ConversionRequest) (*domain.ConversionRecord, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConversionRecord), args.Error(1)
}

// pivotProvider serves fixed EUR-based rates and counts calls per target.
type pivotProvider struct {
	mu        sync.Mutex
	rates     map[domain.CurrencyCode]decimal.Decimal
	fetchedAt time.Time
	calls     map[domain.CurrencyCode]int
}

func newPivotProvider(rates map[domain.CurrencyCode]string, fetchedAt time.Time) *pivotProvider {
	p := &pivotProvider{
		rates:     make(map[domain.CurrencyCode]decimal.Decimal, len(rates)),
		fetchedAt: fetchedAt,
		calls:     make(map[domain.CurrencyCode]int),
	}
	for code, rate := range rates {
		p.rates[code] = decimal.RequireFromString(rate)
	}
	return p
}

func (p *pivotProvider) Fetch(_ context.Context, base domain.CurrencyCode, targets ...domain.CurrencyCode) (domain.RateQuote, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	quote := domain.RateQuote{Base: base, Rates: map[domain.CurrencyCode]decimal.Decimal{}, FetchedAt: p.fetchedAt}
	for _, t := range targets {
		p.calls[t]++
		if rate, ok := p.rates[t]; ok {
			quote.Rates[t] = rate
		}
	}
	return quote, nil
}

func (p *pivotProvider) totalCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	total := 0
	for _, n := range p.calls {
		total += n
	}
	return total
}

func (p *pivotProvider) callsFor(code domain.CurrencyCode) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[code]
}
