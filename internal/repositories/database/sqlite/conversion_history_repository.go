// Package sqlite stores conversion history in an embedded SQLite database
// through gorm.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/seadmustafa/FXAPI/internal/apperrors"
	"github.com/seadmustafa/FXAPI/internal/core/domain"
	portsrepo "github.com/seadmustafa/FXAPI/internal/core/ports/repositories"
	"github.com/seadmustafa/FXAPI/internal/models"
	"github.com/seadmustafa/FXAPI/internal/utils/mapping"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormConversionHistoryRepository implements ConversionHistoryRepositoryFacade on gorm.
type GormConversionHistoryRepository struct {
	db *gorm.DB
}

// Open opens (or creates) the database at path and migrates the schema.
// Use ":memory:" for a throwaway database.
func Open(ctx context.Context, path string) (*GormConversionHistoryRepository, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite handle: %w", err)
	}
	// SQLite serializes writers, and an in-memory database lives on one connection.
	sqlDB.SetMaxOpenConns(1)

	repo := &GormConversionHistoryRepository{db: db}
	if err := repo.Migrate(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return repo, nil
}

// Migrate creates or updates the conversion_history table.
func (r *GormConversionHistoryRepository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&models.ConversionHistory{}); err != nil {
		return fmt.Errorf("sqlite migrate: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (r *GormConversionHistoryRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var _ portsrepo.ConversionHistoryRepositoryFacade = (*GormConversionHistoryRepository)(nil)

// Save inserts a conversion. A repeated transaction id is rejected.
func (r *GormConversionHistoryRepository) Save(ctx context.Context, record domain.ConversionRecord) error {
	row := mapping.ToModelConversionHistory(record)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.NewPersistenceError("transaction id "+record.TransactionID+" already recorded", err)
		}
		return apperrors.NewPersistenceError("failed to save conversion", err)
	}
	return nil
}

// FindByDateRange returns one page of conversions in [start, endInclusive],
// newest first.
func (r *GormConversionHistoryRepository) FindByDateRange(ctx context.Context, start, endInclusive time.Time, page, size int) (domain.Page[domain.ConversionRecord], error) {
	result := domain.Page[domain.ConversionRecord]{Page: page, Size: size, Items: []domain.ConversionRecord{}}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inRange := tx.Model(&models.ConversionHistory{}).
			Where("conversion_date >= ? AND conversion_date <= ?", start.UTC(), endInclusive.UTC())

		if err := inRange.Session(&gorm.Session{}).Count(&result.TotalElements).Error; err != nil {
			return fmt.Errorf("count: %w", err)
		}
		if result.TotalElements == 0 {
			return nil
		}

		var rows []models.ConversionHistory
		err := inRange.Session(&gorm.Session{}).
			Order("conversion_date DESC").
			Order("id DESC").
			Limit(size).
			Offset(page * size).
			Find(&rows).Error
		if err != nil {
			return fmt.Errorf("query: %w", err)
		}
		result.Items = mapping.ToDomainConversionRecords(rows)
		return nil
	})
	if err != nil {
		return result, apperrors.NewPersistenceError("failed to query conversions", err)
	}
	return result, nil
}
