package pgsql

import (
	portsrepo "github.com/cryptojournal/cryptojournal_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider builds every repository over the shared connection pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		AccountRepo: newPgxAccountRepository(dbPool),
		TradeRepo:   newPgxTradeRepository(dbPool),
		JournalRepo: newPgxJournalRepository(dbPool),
		TagRepo:     newPgxTagRepository(dbPool),
		FeatureRepo: newPgxFeatureRepository(dbPool),
		UserRepo:    newPgxUserRepository(dbPool),
	}
}
