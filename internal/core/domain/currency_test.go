package domain_test

import (
	"testing"
	"time"

	"github.com/seadmustafa/FXAPI/internal/apperrors"
	"github.com/seadmustafa/FXAPI/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeCurrencyCode(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    domain.CurrencyCode
		wantErr bool
	}{
		{name: "already normalized", raw: "USD", want: "USD"},
		{name: "lower case", raw: "eur", want: "EUR"},
		{name: "surrounding whitespace", raw: "  gbp ", want: "GBP"},
		{name: "too short", raw: "US", wantErr: true},
		{name: "too long", raw: "USDT", wantErr: true},
		{name: "digits", raw: "U5D", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.NormalizeCurrencyCode(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsValidCurrencyCode(t *testing.T) {
	assert.True(t, domain.IsValidCurrencyCode("JPY"))
	assert.False(t, domain.IsValidCurrencyCode("jpy"))
}

func TestNewBatchResult_Counts(t *testing.T) {
	amount := decimal.NewFromInt(90)
	rows := []domain.BulkRowResult{
		{TransactionID: "t1", Success: true, ConvertedAmount: &amount},
		{TransactionID: "t2", Success: false, ErrorMessage: "Amount must be positive"},
		{TransactionID: "t2", Success: true, ConvertedAmount: &amount},
	}
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	result := domain.NewBatchResult(rows, now)

	assert.Equal(t, 3, result.TotalRecords)
	assert.Equal(t, 2, result.SuccessfulCount)
	assert.Equal(t, 1, result.FailedCount)
	assert.Equal(t, now, result.ProcessedAt)
	assert.Equal(t, rows, result.Rows)
}

func TestPage_TotalPages(t *testing.T) {
	assert.Equal(t, 3, domain.Page[int]{Size: 10, TotalElements: 21}.TotalPages())
	assert.Equal(t, 2, domain.Page[int]{Size: 10, TotalElements: 20}.TotalPages())
	assert.Equal(t, 0, domain.Page[int]{Size: 10}.TotalPages())
	assert.Equal(t, 0, domain.Page[int]{TotalElements: 5}.TotalPages())
}

func TestParseConversionDate(t *testing.T) {
	want := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)

	for _, raw := range []string{"2024-03-01T10:30:00Z", "2024-03-01T12:30:00+02:00", "2024-03-01T10:30:00", "2024-03-01 10:30:00"} {
		got, err := domain.ParseConversionDate(raw)
		assert.NoError(t, err, raw)
		assert.True(t, want.Equal(got), raw)
	}

	day, err := domain.ParseConversionDate("2024-03-01")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), day)

	_, err = domain.ParseConversionDate("01/03/2024")
	assert.Error(t, err)
}
