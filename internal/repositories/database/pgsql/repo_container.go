package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/pharmago/pharmago_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider builds every pgsql repository over the shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:      newPgxUserRepository(dbPool),
		CustomerRepo:  newPgxCustomerRepository(dbPool),
		AdminRepo:     newPgxAdminRepository(dbPool),
		WorkspaceRepo: newPgxWorkspaceRepository(dbPool),
		PositionRepo:  newPgxPositionRepository(dbPool),
	}
}
