package services

import (
	"context"

	"github.com/pharmago/pharmago_backend/internal/core/domain"
	"github.com/pharmago/pharmago_backend/internal/dto"
	"github.com/pharmago/pharmago_backend/pkg/pagination"
)

// PositionSvcFacade is the role/action catalog service surface.
type PositionSvcFacade interface {
	CreatePosition(ctx context.Context, req dto.CreatePositionRequest, actor domain.Actor) (*domain.Position, error)
	GetPositionByID(ctx context.Context, positionID int64) (*domain.Position, error)
	ListPositions(ctx context.Context, query dto.ListPositionsQuery, page pagination.Params) ([]domain.Position, pagination.Meta, error)
	UpdatePosition(ctx context.Context, positionID int64, req dto.UpdatePositionRequest, actor domain.Actor) (*domain.Position, error)
	DeletePosition(ctx context.Context, positionID int64, actor domain.Actor) error

	CreateAction(ctx context.Context, req dto.CreateActionRequest, actor domain.Actor) (*domain.Action, error)
	ListActions(ctx context.Context) ([]domain.Action, error)
}
