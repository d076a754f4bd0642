package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/seadmustafa/FXAPI/internal/apperrors"
	"github.com/seadmustafa/FXAPI/internal/core/domain"
	portssvc "github.com/seadmustafa/FXAPI/internal/core/ports/services"
	"github.com/seadmustafa/FXAPI/internal/platform/metrics"
	"github.com/shopspring/decimal"
)

// Bulk file columns. Header matching ignores case and surrounding spaces.
const (
	ColumnTransactionID  = "transactionId"
	ColumnSourceCurrency = "sourceCurrency"
	ColumnTargetCurrency = "targetCurrency"
	ColumnAmount         = "amount"
	ColumnConversionDate = "conversionDate"
)

var requiredColumns = []string{ColumnTransactionID, ColumnSourceCurrency, ColumnTargetCurrency, ColumnAmount}

// BulkConversionService converts every row of a CSV file through the
// conversion service. A failing row is recorded and the batch continues.
type BulkConversionService struct {
	BaseService
	converter portssvc.ConversionWriterSvc
	now       func() time.Time
}

// BulkOption is a functional option for configuring the bulk service
type BulkOption func(*BulkConversionService)

// WithBulkClock sets the time source for BatchResult.ProcessedAt.
func WithBulkClock(now func() time.Time) BulkOption {
	return func(s *BulkConversionService) {
		s.now = now
	}
}

// NewBulkConversionService creates a new BulkConversionService.
func NewBulkConversionService(converter portssvc.ConversionWriterSvc, options ...BulkOption) *BulkConversionService {
	svc := &BulkConversionService{converter: converter, now: time.Now}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.BulkConversionSvc = (*BulkConversionService)(nil)

// ProcessBatch reads a header row followed by one conversion per row. Rows are
// converted in order on the calling goroutine. The call fails as a whole only
// for unreadable input or a cancelled context.
func (s *BulkConversionService) ProcessBatch(ctx context.Context, input io.Reader) (*domain.BatchResult, error) {
	if input == nil {
		return nil, apperrors.NewInputError("Bulk input is empty", nil)
	}

	reader := csv.NewReader(input)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, apperrors.NewInputError("Bulk input is empty", nil)
	}
	if err != nil {
		return nil, apperrors.NewInputError("Failed to read bulk input header", err)
	}
	columns, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.BulkRowResult, 0)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			s.LogError(ctx, err, "Failed to read bulk input", slog.Int("rows_read", len(rows)))
			return nil, apperrors.NewInputError("Failed to read bulk input", err)
		}

		row := s.processRow(ctx, columns, record)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, apperrors.NewInputError("Bulk input contains no records", nil)
	}

	result := domain.NewBatchResult(rows, s.now().UTC())
	s.LogInfo(ctx, "Bulk conversion completed",
		slog.Int("total", result.TotalRecords),
		slog.Int("successful", result.SuccessfulCount),
		slog.Int("failed", result.FailedCount))
	return &result, nil
}

func (s *BulkConversionService) processRow(ctx context.Context, columns map[string]int, record []string) domain.BulkRowResult {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	row := domain.BulkRowResult{TransactionID: field(ColumnTransactionID)}
	fail := func(msg string) domain.BulkRowResult {
		row.Success = false
		row.ErrorMessage = msg
		metrics.BulkRowsTotal.WithLabelValues(metrics.OutcomeFailure).Inc()
		s.LogInfo(ctx, "Bulk row failed", slog.String("transaction_id", row.TransactionID), slog.String("reason", msg))
		return row
	}

	rawAmount := field(ColumnAmount)
	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		return fail(fmt.Sprintf("Invalid amount: '%s'", rawAmount))
	}
	if !amount.IsPositive() {
		return fail("Amount must be positive")
	}

	var requestedAt *time.Time
	if rawDate := field(ColumnConversionDate); rawDate != "" {
		parsed, err := domain.ParseConversionDate(rawDate)
		if err != nil {
			return fail(fmt.Sprintf("Invalid conversion date: '%s'", rawDate))
		}
		requestedAt = &parsed
	}

	converted, err := s.converter.Convert(ctx, domain.ConversionRequest{
		SourceCurrency: field(ColumnSourceCurrency),
		TargetCurrency: field(ColumnTargetCurrency),
		Amount:         amount,
		RequestedAt:    requestedAt,
	})
	if err != nil {
		return fail(apperrors.UserMessage(err))
	}

	row.Success = true
	row.ConvertedAmount = &converted.ConvertedAmount
	row.ConvertedAt = &converted.ConvertedAt
	metrics.BulkRowsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	s.LogInfo(ctx, "Bulk row converted", slog.String("transaction_id", row.TransactionID))
	return row
}

// indexColumns maps each known column to its position in header.
func indexColumns(header []string) (map[string]int, error) {
	known := []string{ColumnTransactionID, ColumnSourceCurrency, ColumnTargetCurrency, ColumnAmount, ColumnConversionDate}

	columns := make(map[string]int, len(known))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		for _, k := range known {
			if _, seen := columns[k]; !seen && strings.EqualFold(name, k) {
				columns[k] = i
			}
		}
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewInputError("Missing required columns: "+strings.Join(missing, ", "), nil)
	}
	return columns, nil
}
