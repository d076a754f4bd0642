package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BulkRowResult is the outcome of one row of a bulk conversion file.
// TransactionID is whatever the caller supplied and may repeat.
type BulkRowResult struct {
	TransactionID   string           `json:"transactionId"`
	Success         bool             `json:"success"`
	ConvertedAmount *decimal.Decimal `json:"convertedAmount,omitempty"`
	ErrorMessage    string           `json:"errorMessage,omitempty"`
	ConvertedAt     *time.Time       `json:"conversionDate,omitempty"`
}

// BatchResult aggregates the per-row outcomes of one bulk file.
type BatchResult struct {
	TotalRecords    int             `json:"totalRecords"`
	SuccessfulCount int             `json:"successfulConversions"`
	FailedCount     int             `json:"failedConversions"`
	ProcessedAt     time.Time       `json:"processedAt"`
	Rows            []BulkRowResult `json:"results"`
}

// NewBatchResult computes the aggregate counts from rows.
func NewBatchResult(rows []BulkRowResult, processedAt time.Time) BatchResult {
	result := BatchResult{
		TotalRecords: len(rows),
		ProcessedAt:  processedAt,
		Rows:         rows,
	}
	for _, row := range rows {
		if row.Success {
			result.SuccessfulCount++
		} else {
			result.FailedCount++
		}
	}
	return result
}
