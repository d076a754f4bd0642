package dto

import (
	"time"

	"github.com/seadmustafa/FXAPI/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConversionRequest defines the body of a single conversion.
type ConversionRequest struct {
	SourceCurrency string           `json:"sourceCurrency" binding:"required,currencycode"`
	TargetCurrency string           `json:"targetCurrency" binding:"required,currencycode"`
	Amount         *decimal.Decimal `json:"amount" binding:"required"`
	ConversionDate string           `json:"conversionDate"` // Optional, RFC 3339 or local ISO date-time
}

// ToDomain converts the request into a domain.ConversionRequest.
func (r ConversionRequest) ToDomain() (domain.ConversionRequest, error) {
	req := domain.ConversionRequest{
		SourceCurrency: r.SourceCurrency,
		TargetCurrency: r.TargetCurrency,
	}
	if r.Amount != nil {
		req.Amount = *r.Amount
	}
	if r.ConversionDate != "" {
		at, err := domain.ParseConversionDate(r.ConversionDate)
		if err != nil {
			return req, err
		}
		req.RequestedAt = &at
	}
	return req, nil
}

// ConversionResponse defines the data returned for one conversion.
// History entries use the same shape.
type ConversionResponse struct {
	TransactionID   string          `json:"transactionId"`
	SourceCurrency  string          `json:"sourceCurrency"`
	TargetCurrency  string          `json:"targetCurrency"`
	Amount          decimal.Decimal `json:"amount"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`
	ConversionDate  time.Time       `json:"conversionDate"`
}

// ToConversionResponse converts a domain.ConversionRecord to ConversionResponse DTO
func ToConversionResponse(record *domain.ConversionRecord) ConversionResponse {
	return ConversionResponse{
		TransactionID:   record.TransactionID,
		SourceCurrency:  string(record.SourceCurrency),
		TargetCurrency:  string(record.TargetCurrency),
		Amount:          record.Amount,
		ConvertedAmount: record.ConvertedAmount,
		ExchangeRate:    record.Rate,
		ConversionDate:  record.ConvertedAt,
	}
}

// HistoryPageResponse is one page of conversion history.
type HistoryPageResponse struct {
	Content       []ConversionResponse `json:"content"`
	Page          int                  `json:"page"`
	Size          int                  `json:"size"`
	TotalElements int64                `json:"totalElements"`
	TotalPages    int                  `json:"totalPages"`
}

// ToHistoryPageResponse converts a page of records.
func ToHistoryPageResponse(page *domain.Page[domain.ConversionRecord]) HistoryPageResponse {
	content := make([]ConversionResponse, len(page.Items))
	for i := range page.Items {
		content[i] = ToConversionResponse(&page.Items[i])
	}
	return HistoryPageResponse{
		Content:       content,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages(),
	}
}
