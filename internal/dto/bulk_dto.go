package dto

import (
	"time"

	"github.com/seadmustafa/FXAPI/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BulkRowResponse is the outcome of one uploaded row.
type BulkRowResponse struct {
	TransactionID   string           `json:"transactionId"`
	Success         bool             `json:"success"`
	ConvertedAmount *decimal.Decimal `json:"convertedAmount,omitempty"`
	ErrorMessage    string           `json:"errorMessage,omitempty"`
	ConversionDate  *time.Time       `json:"conversionDate,omitempty"`
}

// BulkConversionResponse summarizes a processed bulk file.
type BulkConversionResponse struct {
	TotalRecords          int               `json:"totalRecords"`
	SuccessfulConversions int               `json:"successfulConversions"`
	FailedConversions     int               `json:"failedConversions"`
	ProcessedAt           time.Time         `json:"processedAt"`
	Results               []BulkRowResponse `json:"results"`
}

// ToBulkConversionResponse converts a domain.BatchResult.
func ToBulkConversionResponse(result *domain.BatchResult) BulkConversionResponse {
	rows := make([]BulkRowResponse, len(result.Rows))
	for i, row := range result.Rows {
		rows[i] = BulkRowResponse{
			TransactionID:   row.TransactionID,
			Success:         row.Success,
			ConvertedAmount: row.ConvertedAmount,
			ErrorMessage:    row.ErrorMessage,
			ConversionDate:  row.ConvertedAt,
		}
	}
	return BulkConversionResponse{
		TotalRecords:          result.TotalRecords,
		SuccessfulConversions: result.SuccessfulCount,
		FailedConversions:     result.FailedCount,
		ProcessedAt:           result.ProcessedAt,
		Results:               rows,
	}
}
