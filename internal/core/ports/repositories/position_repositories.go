package repositories

import (
	"context"

	"github.com/pharmago/pharmago_backend/internal/core/domain"
)

// ListPositionsFilter narrows and orders position listings. Keyword searches
// name and code.
type ListPositionsFilter struct {
	Keyword     string
	WorkspaceID *int64
	IsDefault   *bool
	OrderAsc    bool
}

// PositionRepository is the persistence port for the role and
// permission-action catalog.
type PositionRepository interface {
	CreatePosition(ctx context.Context, position domain.Position) (*domain.Position, error)
	FindPositionByID(ctx context.Context, positionID int64) (*domain.Position, error)
	CountPositions(ctx context.Context, filter ListPositionsFilter) (int, error)
	FindPositions(ctx context.Context, filter ListPositionsFilter, limit, offset int) ([]domain.Position, error)
	UpdatePosition(ctx context.Context, position domain.Position) error
	DeletePosition(ctx context.Context, positionID int64) error
	// ReplaceActions swaps the action set aggregated by a position.
	ReplaceActions(ctx context.Context, positionID int64, actionIDs []int64) error

	CreateAction(ctx context.Context, action domain.Action) (*domain.Action, error)
	FindActions(ctx context.Context) ([]domain.Action, error)
}
