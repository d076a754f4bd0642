package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/seadmustafa/FXAPI/internal/core/ports/repositories"
)

// NewRepositoryProvider builds every repository on one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		HistoryRepo: NewPgxConversionHistoryRepository(dbPool),
	}
}
