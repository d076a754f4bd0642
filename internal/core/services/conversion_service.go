package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/seadmustafa/FXAPI/internal/apperrors"
	"github.com/seadmustafa/FXAPI/internal/core/domain"
	portsrepo "github.com/seadmustafa/FXAPI/internal/core/ports/repositories"
	portssvc "github.com/seadmustafa/FXAPI/internal/core/ports/services"
	"github.com/seadmustafa/FXAPI/internal/platform/metrics"
)

// MaxHistoryPageSize bounds the page size of history queries.
const MaxHistoryPageSize = 100

// ConversionService converts amounts and records every successful
// conversion in the history store.
type ConversionService struct {
	BaseService
	calculator  portssvc.CrossRateCalculator
	historyRepo portsrepo.ConversionHistoryRepositoryFacade
	now         func() time.Time
	newID       func() string
}

// ConversionOption is a functional option for configuring the conversion service
type ConversionOption func(*ConversionService)

// WithClock sets the time source used when a request carries no date.
func WithClock(now func() time.Time) ConversionOption {
	return func(s *ConversionService) {
		s.now = now
	}
}

// WithIDGenerator sets the transaction id generator.
func WithIDGenerator(newID func() string) ConversionOption {
	return func(s *ConversionService) {
		s.newID = newID
	}
}

// NewConversionService creates a new ConversionService.
func NewConversionService(calculator portssvc.CrossRateCalculator, historyRepo portsrepo.ConversionHistoryRepositoryFacade, options ...ConversionOption) *ConversionService {
	svc := &ConversionService{
		calculator:  calculator,
		historyRepo: historyRepo,
		now:         time.Now,
		newID:       uuid.NewString,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ConversionSvcFacade = (*ConversionService)(nil)

// Convert validates the request, resolves the rate and saves exactly one
// history record. Nothing is saved when any step fails.
func (s *ConversionService) Convert(ctx context.Context, req domain.ConversionRequest) (record *domain.ConversionRecord, err error) {
	defer func() {
		metrics.ConversionsTotal.WithLabelValues(metrics.Outcome(err)).Inc()
	}()

	source, err := domain.NormalizeCurrencyCode(req.SourceCurrency)
	if err != nil {
		return nil, err
	}
	target, err := domain.NormalizeCurrencyCode(req.TargetCurrency)
	if err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewValidationError("Amount must be positive")
	}
	if source == target {
		return nil, apperrors.NewValidationError("Source and target currencies must be different")
	}

	rate, err := s.calculator.Rate(ctx, source, target)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve rate for conversion",
			slog.String("source", source.String()),
			slog.String("target", target.String()))
		return nil, err
	}

	convertedAt := s.now().UTC()
	if req.RequestedAt != nil {
		convertedAt = req.RequestedAt.UTC()
	}

	record = &domain.ConversionRecord{
		TransactionID:   s.newID(),
		SourceCurrency:  source,
		TargetCurrency:  target,
		Amount:          req.Amount,
		ConvertedAmount: req.Amount.Mul(rate.Rate),
		Rate:            rate.Rate,
		ConvertedAt:     convertedAt,
	}

	if err := s.historyRepo.Save(ctx, *record); err != nil {
		if apperrors.KindOf(err) != apperrors.KindPersistence {
			err = apperrors.NewPersistenceError("Failed to save conversion", err)
		}
		s.LogError(ctx, err, "Failed to save conversion", slog.String("transaction_id", record.TransactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Conversion completed",
		slog.String("transaction_id", record.TransactionID),
		slog.String("source", source.String()),
		slog.String("target", target.String()),
		slog.String("amount", record.Amount.String()),
		slog.String("converted_amount", record.ConvertedAmount.String()))
	return record, nil
}

// GetConversionHistory returns the conversions made on date's calendar day
// in UTC, newest first.
func (s *ConversionService) GetConversionHistory(ctx context.Context, date time.Time, page, size int) (*domain.Page[domain.ConversionRecord], error) {
	if date.IsZero() {
		return nil, apperrors.NewValidationError("Transaction date is required")
	}
	if page < 0 {
		return nil, apperrors.NewValidationError("Page must not be negative")
	}
	if size < 1 || size > MaxHistoryPageSize {
		return nil, apperrors.NewValidationError("Size must be between 1 and 100")
	}

	day := date.UTC()
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)

	result, err := s.historyRepo.FindByDateRange(ctx, start, end, page, size)
	if err != nil {
		s.LogError(ctx, err, "Failed to query conversion history", slog.Time("date", start))
		return nil, err
	}
	return &result, nil
}
