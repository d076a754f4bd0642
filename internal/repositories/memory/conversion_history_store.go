// Package memory keeps conversion history in process memory. Nothing
// survives a restart.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/seadmustafa/FXAPI/internal/apperrors"
	"github.com/seadmustafa/FXAPI/internal/core/domain"
	portsrepo "github.com/seadmustafa/FXAPI/internal/core/ports/repositories"
)

// ConversionHistoryStore is an in-memory ConversionHistoryRepositoryFacade.
type ConversionHistoryStore struct {
	mu      sync.RWMutex
	records []domain.ConversionRecord
	ids     map[string]struct{}
}

// NewConversionHistoryStore returns an empty store.
func NewConversionHistoryStore() *ConversionHistoryStore {
	return &ConversionHistoryStore{ids: make(map[string]struct{})}
}

var _ portsrepo.ConversionHistoryRepositoryFacade = (*ConversionHistoryStore)(nil)

// Save appends record. A repeated transaction id is rejected.
func (m *ConversionHistoryStore) Save(ctx context.Context, record domain.ConversionRecord) error {
	if err := ctx.Err(); err != nil {
		return apperrors.NewPersistenceError("failed to save conversion", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, dup := m.ids[record.TransactionID]; dup {
		return apperrors.NewPersistenceError("transaction id "+record.TransactionID+" already recorded", nil)
	}
	m.ids[record.TransactionID] = struct{}{}
	m.records = append(m.records, record)
	return nil
}

// FindByDateRange returns one page of conversions in [start, endInclusive],
// newest first. Equal timestamps keep the most recently saved first.
func (m *ConversionHistoryStore) FindByDateRange(ctx context.Context, start, endInclusive time.Time, page, size int) (domain.Page[domain.ConversionRecord], error) {
	result := domain.Page[domain.ConversionRecord]{Page: page, Size: size, Items: []domain.ConversionRecord{}}
	if err := ctx.Err(); err != nil {
		return result, apperrors.NewPersistenceError("failed to query conversions", err)
	}

	m.mu.RLock()
	matched := make([]domain.ConversionRecord, 0)
	for i := len(m.records) - 1; i >= 0; i-- {
		at := m.records[i].ConvertedAt
		if !at.Before(start) && !at.After(endInclusive) {
			matched = append(matched, m.records[i])
		}
	}
	m.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].ConvertedAt.After(matched[j].ConvertedAt)
	})

	result.TotalElements = int64(len(matched))
	from := page * size
	if size <= 0 || from >= len(matched) {
		return result, nil
	}
	to := from + size
	if to > len(matched) {
		to = len(matched)
	}
	result.Items = append(result.Items, matched[from:to]...)
	return result, nil
}

// Len returns the number of stored conversions.
func (m *ConversionHistoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}
