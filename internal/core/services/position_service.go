package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/pharmago/pharmago_backend/internal/core/domain"
	portsrepo "github.com/pharmago/pharmago_backend/internal/core/ports/repositories"
	portssvc "github.com/pharmago/pharmago_backend/internal/core/ports/services"
	"github.com/pharmago/pharmago_backend/internal/dto"
	"github.com/pharmago/pharmago_backend/pkg/pagination"
)

type positionService struct {
	BaseService
	positionRepo portsrepo.PositionRepository
}

// NewPositionService creates the role/action catalog service.
func NewPositionService(positionRepo portsrepo.PositionRepository) portssvc.PositionSvcFacade {
	return &positionService{positionRepo: positionRepo}
}

func (s *positionService) CreatePosition(ctx context.Context, req dto.CreatePositionRequest, actor domain.Actor) (*domain.Position, error) {
	position := domain.Position{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		WorkspaceID: req.WorkspaceID,
		ActionIDs:   req.ActionIDs,
		CreatedAt:   time.Now(),
	}
	position.Normalize()

	created, err := s.positionRepo.CreatePosition(ctx, position)
	if err != nil {
		return nil, err
	}
	if len(req.ActionIDs) > 0 {
		if err := s.positionRepo.ReplaceActions(ctx, created.PositionID, req.ActionIDs); err != nil {
			return nil, err
		}
		created.ActionIDs = req.ActionIDs
	}

	s.LogInfo(ctx, "position created", slog.Int64("position_id", created.PositionID))
	return created, nil
}

func (s *positionService) GetPositionByID(ctx context.Context, positionID int64) (*domain.Position, error) {
	return s.positionRepo.FindPositionByID(ctx, positionID)
}

func (s *positionService) ListPositions(ctx context.Context, query dto.ListPositionsQuery, page pagination.Params) ([]domain.Position, pagination.Meta, error) {
	filter := portsrepo.ListPositionsFilter{
		Keyword:     query.Keyword,
		WorkspaceID: query.WorkspaceID,
		IsDefault:   query.IsDefault,
		OrderAsc:    query.OrderBy == "asc",
	}

	count, err := s.positionRepo.CountPositions(ctx, filter)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	window, err := page.Window(count)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	positions, err := s.positionRepo.FindPositions(ctx, filter, window.Limit, window.Offset)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return positions, page.Meta(count), nil
}

func (s *positionService) UpdatePosition(ctx context.Context, positionID int64, req dto.UpdatePositionRequest, actor domain.Actor) (*domain.Position, error) {
	position, err := s.positionRepo.FindPositionByID(ctx, positionID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		position.Name = *req.Name
	}
	if req.Description != nil {
		position.Description = req.Description
	}

	now := time.Now()
	position.UpdatedAt = &now
	position.Normalize()

	if err := s.positionRepo.UpdatePosition(ctx, *position); err != nil {
		return nil, err
	}
	if req.ActionIDs != nil {
		if err := s.positionRepo.ReplaceActions(ctx, positionID, *req.ActionIDs); err != nil {
			return nil, err
		}
		position.ActionIDs = *req.ActionIDs
	}
	return position, nil
}

func (s *positionService) DeletePosition(ctx context.Context, positionID int64, actor domain.Actor) error {
	if _, err := s.positionRepo.FindPositionByID(ctx, positionID); err != nil {
		return err
	}
	if err := s.positionRepo.DeletePosition(ctx, positionID); err != nil {
		return err
	}
	s.LogInfo(ctx, "position deleted", slog.Int64("position_id", positionID))
	return nil
}

func (s *positionService) CreateAction(ctx context.Context, req dto.CreateActionRequest, actor domain.Actor) (*domain.Action, error) {
	action := domain.Action{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
	}
	return s.positionRepo.CreateAction(ctx, action)
}

func (s *positionService) ListActions(ctx context.Context) ([]domain.Action, error) {
	return s.positionRepo.FindActions(ctx)
}
