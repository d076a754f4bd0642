package services_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/seadmustafa/FXAPI/internal/apperrors"
	"github.com/seadmustafa/FXAPI/internal/core/domain"
	"github.com/seadmustafa/FXAPI/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var processedAt = time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)

func newBulkService(converter *MockConversionWriter) *services.BulkConversionService {
	return services.NewBulkConversionService(converter, services.WithBulkClock(func() time.Time { return processedAt }))
}

func convertedRecord(amount string, at time.Time) *domain.ConversionRecord {
	return &domain.ConversionRecord{
		TransactionID:   "generated",
		ConvertedAmount: decimal.RequireFromString(amount),
		ConvertedAt:     at,
	}
}

func TestProcessBatch_PartialFailure(t *testing.T) {
	converter := new(MockConversionWriter)
	converter.On("Convert", mock.Anything, mock.MatchedBy(func(req domain.ConversionRequest) bool {
		return req.SourceCurrency == "USD" && req.TargetCurrency == "EUR" && req.Amount.Equal(decimal.RequireFromString("100.00"))
	})).Return(convertedRecord("90.9091", processedAt), nil).Once()

	input := "transactionId,sourceCurrency,targetCurrency,amount,conversionDate\n" +
		"T1,USD,EUR,100.00,\n" +
		"T2,USD,EUR,-10.00,\n"

	result, err := newBulkService(converter).ProcessBatch(context.Background(), strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalRecords)
	assert.Equal(t, 1, result.SuccessfulCount)
	assert.Equal(t, 1, result.FailedCount)
	assert.Equal(t, processedAt, result.ProcessedAt)
	require.Len(t, result.Rows, 2)

	assert.Equal(t, "T1", result.Rows[0].TransactionID)
	assert.True(t, result.Rows[0].Success)
	require.NotNil(t, result.Rows[0].ConvertedAmount)
	assert.Equal(t, "90.9091", result.Rows[0].ConvertedAmount.String())
	assert.Empty(t, result.Rows[0].ErrorMessage)

	assert.Equal(t, "T2", result.Rows[1].TransactionID)
	assert.False(t, result.Rows[1].Success)
	assert.Equal(t, "Amount must be positive", result.Rows[1].ErrorMessage)
	assert.Nil(t, result.Rows[1].ConvertedAmount)

	converter.AssertNumberOfCalls(t, "Convert", 1)
}

func TestProcessBatch_EmptyInput(t *testing.T) {
	converter := new(MockConversionWriter)
	svc := newBulkService(converter)

	for name, input := range map[string]io.Reader{
		"nil reader":   nil,
		"empty":        strings.NewReader(""),
		"header only":  strings.NewReader("transactionId,sourceCurrency,targetCurrency,amount,conversionDate\n"),
		"missing cols": strings.NewReader("id,from,to\n1,USD,EUR\n"),
	} {
		t.Run(name, func(t *testing.T) {
			result, err := svc.ProcessBatch(context.Background(), input)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, apperrors.ErrInput)
		})
	}
	converter.AssertNotCalled(t, "Convert", mock.Anything, mock.Anything)
}

func TestProcessBatch_UnreadableStreamFailsWholeBatch(t *testing.T) {
	converter := new(MockConversionWriter)
	converter.On("Convert", mock.Anything, mock.Anything).Return(convertedRecord("1", processedAt), nil)

	input := io.MultiReader(
		strings.NewReader("transactionId,sourceCurrency,targetCurrency,amount\nT1,USD,EUR,1\n"),
		iotest.ErrReader(errors.New("connection reset")),
	)

	result, err := newBulkService(converter).ProcessBatch(context.Background(), input)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrInput)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestProcessBatch_HeaderIsCaseInsensitiveAndValuesTrimmed(t *testing.T) {
	converter := new(MockConversionWriter)
	wantDate := time.Date(2024, 2, 29, 10, 15, 0, 0, time.UTC)
	converter.On("Convert", mock.Anything, mock.MatchedBy(func(req domain.ConversionRequest) bool {
		return req.SourceCurrency == "gbp" && req.TargetCurrency == "usd" &&
			req.RequestedAt != nil && req.RequestedAt.Equal(wantDate)
	})).Return(convertedRecord("12.94118", wantDate), nil).Once()

	input := "ConversionDate , AMOUNT,TargetCurrency,SOURCECURRENCY,TransactionID\n" +
		"2024-02-29T10:15:00 , 10 , usd , gbp , T9 \n"

	result, err := newBulkService(converter).ProcessBatch(context.Background(), strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.True(t, result.Rows[0].Success)
	assert.Equal(t, "T9", result.Rows[0].TransactionID)
	require.NotNil(t, result.Rows[0].ConvertedAt)
	assert.Equal(t, wantDate, *result.Rows[0].ConvertedAt)
}

func TestProcessBatch_RowLevelFailures(t *testing.T) {
	converter := new(MockConversionWriter)
	converter.On("Convert", mock.Anything, mock.MatchedBy(func(req domain.ConversionRequest) bool {
		return req.SourceCurrency == "USD" && req.TargetCurrency == "USD"
	})).Return(nil, apperrors.NewValidationError("Source and target currencies must be different"))
	converter.On("Convert", mock.Anything, mock.MatchedBy(func(req domain.ConversionRequest) bool {
		return req.TargetCurrency == "JPY"
	})).Return(nil, apperrors.New(apperrors.KindTransientProvider, "Upstream rate service unavailable"))
	converter.On("Convert", mock.Anything, mock.Anything).Return(convertedRecord("5", processedAt), nil)

	input := strings.Join([]string{
		"transactionId,sourceCurrency,targetCurrency,amount,conversionDate",
		"A,USD,USD,10,",
		"B,USD,EUR,abc,",
		"C,USD,EUR,0,",
		"D,USD,EUR,5,yesterday",
		"E,USD,JPY,5,",
		"F,USD,EUR",
		"A,USD,GBP,5,2024-01-02",
	}, "\n")

	result, err := newBulkService(converter).ProcessBatch(context.Background(), strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, result.Rows, 7)
	messages := make([]string, len(result.Rows))
	for i, row := range result.Rows {
		messages[i] = row.ErrorMessage
	}
	assert.Equal(t, []string{
		"Source and target currencies must be different",
		"Invalid amount: 'abc'",
		"Amount must be positive",
		"Invalid conversion date: 'yesterday'",
		"Upstream rate service unavailable",
		"Invalid amount: ''",
		"",
	}, messages)
	assert.Equal(t, 1, result.SuccessfulCount)
	assert.Equal(t, 6, result.FailedCount)
	assert.Equal(t, "A", result.Rows[6].TransactionID)
	assert.True(t, result.Rows[6].Success)
}

func TestProcessBatch_CancelledContextAbortsBatch(t *testing.T) {
	converter := new(MockConversionWriter)
	ctx, cancel := context.WithCancel(context.Background())
	converter.On("Convert", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return(convertedRecord("1", processedAt), nil)

	input := "transactionId,sourceCurrency,targetCurrency,amount\nT1,USD,EUR,1\nT2,USD,EUR,2\n"

	result, err := newBulkService(converter).ProcessBatch(ctx, strings.NewReader(input))

	assert.Nil(t, result)
	assert.ErrorIs(t, err, context.Canceled)
	converter.AssertNumberOfCalls(t, "Convert", 1)
}
