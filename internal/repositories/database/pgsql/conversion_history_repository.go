package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seadmustafa/FXAPI/internal/apperrors"
	"github.com/seadmustafa/FXAPI/internal/core/domain"
	portsrepo "github.com/seadmustafa/FXAPI/internal/core/ports/repositories"
	"github.com/seadmustafa/FXAPI/internal/models"
	"github.com/seadmustafa/FXAPI/internal/utils/mapping"
)

const uniqueViolationCode = "23505"

// PgxConversionHistoryRepository implements ConversionHistoryRepositoryFacade using pgxpool.
type PgxConversionHistoryRepository struct {
	BaseRepository
}

// NewPgxConversionHistoryRepository creates a new PgxConversionHistoryRepository.
func NewPgxConversionHistoryRepository(db *pgxpool.Pool) *PgxConversionHistoryRepository {
	return &PgxConversionHistoryRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ConversionHistoryRepositoryFacade = (*PgxConversionHistoryRepository)(nil)

// Save inserts a conversion. A repeated transaction id is rejected.
func (r *PgxConversionHistoryRepository) Save(ctx context.Context, record domain.ConversionRecord) error {
	row := mapping.ToModelConversionHistory(record)

	_, err := r.Pool.Exec(ctx, `
		INSERT INTO conversion_history (
			transaction_id, source_currency, target_currency,
			amount, converted_amount, exchange_rate, conversion_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		row.TransactionID, row.SourceCurrency, row.TargetCurrency,
		row.Amount, row.ConvertedAmount, row.ExchangeRate, row.ConversionDate,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewPersistenceError("transaction id "+record.TransactionID+" already recorded", err)
		}
		return apperrors.NewPersistenceError("failed to save conversion", err)
	}
	return nil
}

// FindByDateRange returns one page of conversions in [start, endInclusive],
// newest first. The count and the page come from the same snapshot.
func (r *PgxConversionHistoryRepository) FindByDateRange(ctx context.Context, start, endInclusive time.Time, page, size int) (domain.Page[domain.ConversionRecord], error) {
	result := domain.Page[domain.ConversionRecord]{Page: page, Size: size, Items: []domain.ConversionRecord{}}

	tx, err := r.BeginReadOnly(ctx)
	if err != nil {
		return result, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM conversion_history WHERE conversion_date BETWEEN $1 AND $2`,
		start, endInclusive,
	).Scan(&result.TotalElements)
	if err != nil {
		return result, apperrors.NewPersistenceError("failed to count conversions", err)
	}
	if result.TotalElements == 0 {
		return result, nil
	}

	rows, err := tx.Query(ctx, `
		SELECT
			id, transaction_id, source_currency, target_currency,
			amount, converted_amount, exchange_rate, conversion_date
		FROM conversion_history
		WHERE conversion_date BETWEEN $1 AND $2
		ORDER BY conversion_date DESC, id DESC
		LIMIT $3 OFFSET $4`,
		start, endInclusive, size, pageOffset(page, size),
	)
	if err != nil {
		return result, apperrors.NewPersistenceError("failed to query conversions", err)
	}

	history, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ConversionHistory, error) {
		var m models.ConversionHistory
		err := row.Scan(
			&m.ID, &m.TransactionID, &m.SourceCurrency, &m.TargetCurrency,
			&m.Amount, &m.ConvertedAmount, &m.ExchangeRate, &m.ConversionDate,
		)
		return m, err
	})
	if err != nil {
		return result, apperrors.NewPersistenceError("failed to read conversions", err)
	}

	result.Items = mapping.ToDomainConversionRecords(history)
	return result, nil
}

func pageOffset(page, size int) int64 {
	return int64(page) * int64(size)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
