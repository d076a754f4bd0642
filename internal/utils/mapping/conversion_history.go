package mapping

import (
	"github.com/seadmustafa/FXAPI/internal/core/domain"
	"github.com/seadmustafa/FXAPI/internal/models"
)

// ToModelConversionHistory converts a domain ConversionRecord to a model ConversionHistory
func ToModelConversionHistory(d domain.ConversionRecord) models.ConversionHistory {
	return models.ConversionHistory{
		TransactionID:   d.TransactionID,
		SourceCurrency:  d.SourceCurrency.String(),
		TargetCurrency:  d.TargetCurrency.String(),
		Amount:          d.Amount,
		ConvertedAmount: d.ConvertedAmount,
		ExchangeRate:    d.Rate,
		ConversionDate:  d.ConvertedAt.UTC(),
	}
}

// ToDomainConversionRecord converts a model ConversionHistory to a domain ConversionRecord
func ToDomainConversionRecord(m models.ConversionHistory) domain.ConversionRecord {
	return domain.ConversionRecord{
		TransactionID:   m.TransactionID,
		SourceCurrency:  domain.CurrencyCode(m.SourceCurrency),
		TargetCurrency:  domain.CurrencyCode(m.TargetCurrency),
		Amount:          m.Amount,
		ConvertedAmount: m.ConvertedAmount,
		Rate:            m.ExchangeRate,
		ConvertedAt:     m.ConversionDate.UTC(),
	}
}

// ToDomainConversionRecords converts a slice of model rows.
func ToDomainConversionRecords(ms []models.ConversionHistory) []domain.ConversionRecord {
	records := make([]domain.ConversionRecord, len(ms))
	for i, m := range ms {
		records[i] = ToDomainConversionRecord(m)
	}
	return records
}
