package services

import (
	"context"
	"io"
	"time"

	"github.com/seadmustafa/FXAPI/internal/core/domain"
)

// ConversionWriterSvc defines conversion operations that produce history
type ConversionWriterSvc interface {
	// Convert converts one amount and records the result.
	Convert(ctx context.Context, req domain.ConversionRequest) (*domain.ConversionRecord, error)
}

// ConversionReaderSvc defines read operations over conversion history
type ConversionReaderSvc interface {
	// GetConversionHistory returns conversions made on the given calendar date
	// (UTC), newest first.
	GetConversionHistory(ctx context.Context, date time.Time, page, size int) (*domain.Page[domain.ConversionRecord], error)
}

// ConversionSvcFacade combines all conversion-related service interfaces
type ConversionSvcFacade interface {
	ConversionWriterSvc
	ConversionReaderSvc
}

// BulkConversionSvc converts every row of a tabular input.
type BulkConversionSvc interface {
	ProcessBatch(ctx context.Context, input io.Reader) (*domain.BatchResult, error)
}
