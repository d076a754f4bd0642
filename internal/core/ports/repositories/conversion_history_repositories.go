package repositories

import (
	"context"
	"time"

	"github.com/seadmustafa/FXAPI/internal/core/domain"
)

// ConversionHistoryWriter defines write operations for conversion history
type ConversionHistoryWriter interface {
	// Save persists a completed conversion. Storage failures are reported as
	// apperrors.ErrPersistence.
	Save(ctx context.Context, record domain.ConversionRecord) error
}

// ConversionHistoryReader defines read operations for conversion history
type ConversionHistoryReader interface {
	// FindByDateRange returns one page of conversions whose ConvertedAt lies in
	// [start, endInclusive], newest first.
	FindByDateRange(ctx context.Context, start, endInclusive time.Time, page, size int) (domain.Page[domain.ConversionRecord], error)
}

// ConversionHistoryRepositoryFacade combines all conversion history repository interfaces
type ConversionHistoryRepositoryFacade interface {
	ConversionHistoryWriter
	ConversionHistoryReader
}
