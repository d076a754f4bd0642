package mapping

import (
	"testing"
	"time"

	"github.com/seadmustafa/FXAPI/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestConversionHistoryMapping(t *testing.T) {
	record := domain.ConversionRecord{
		TransactionID:   "tx-1",
		SourceCurrency:  "USD",
		TargetCurrency:  "EUR",
		Amount:          decimal.RequireFromString("125"),
		ConvertedAmount: decimal.RequireFromString("100"),
		Rate:            decimal.RequireFromString("0.8"),
		ConvertedAt:     time.Date(2024, 3, 1, 13, 0, 0, 0, time.FixedZone("CET", 3600)),
	}

	model := ToModelConversionHistory(record)
	assert.Equal(t, "USD", model.SourceCurrency)
	assert.Equal(t, time.UTC, model.ConversionDate.Location())
	assert.True(t, model.ExchangeRate.Equal(record.Rate))

	back := ToDomainConversionRecord(model)
	assert.Equal(t, record.TransactionID, back.TransactionID)
	assert.True(t, back.ConvertedAt.Equal(record.ConvertedAt))
	assert.Len(t, ToDomainConversionRecords(nil), 0)
}
