package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/pharmago/pharmago_backend/internal/apperrors"
	"github.com/pharmago/pharmago_backend/internal/core/domain"
	portsrepo "github.com/pharmago/pharmago_backend/internal/core/ports/repositories"
	portssvc "github.com/pharmago/pharmago_backend/internal/core/ports/services"
	"github.com/pharmago/pharmago_backend/internal/dto"
	"github.com/pharmago/pharmago_backend/pkg/pagination"
)

type workspaceService struct {
	BaseService
	workspaceRepo portsrepo.WorkspaceRepository
}

// NewWorkspaceService creates the tenant container service.
func NewWorkspaceService(workspaceRepo portsrepo.WorkspaceRepository) portssvc.WorkspaceSvcFacade {
	return &workspaceService{workspaceRepo: workspaceRepo}
}

func (s *workspaceService) CreateWorkspace(ctx context.Context, req dto.CreateWorkspaceRequest, actor domain.Actor) (*domain.Workspace, error) {
	now := time.Now()
	workspace := domain.Workspace{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		ParentID:    req.ParentID,
		OwnerID:     req.OwnerID,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			CreatedBy: actor.AuditRef(),
		},
	}
	// The creating staff user owns the workspace unless an owner was named.
	if workspace.OwnerID == nil {
		workspace.OwnerID = actor.AuditRef()
	}

	created, err := s.workspaceRepo.CreateWorkspace(ctx, workspace)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "workspace created", slog.Int64("workspace_id", created.WorkspaceID))
	return created, nil
}

func (s *workspaceService) GetWorkspaceByID(ctx context.Context, workspaceID int64) (*domain.Workspace, error) {
	return s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
}

func (s *workspaceService) ListWorkspaces(ctx context.Context, query dto.ListWorkspacesQuery, page pagination.Params) ([]domain.Workspace, pagination.Meta, error) {
	filter := portsrepo.ListWorkspacesFilter{
		Keyword:  query.Keyword,
		ParentID: query.ParentID,
		OwnerID:  query.OwnerID,
		OrderAsc: query.OrderBy == "asc",
	}

	count, err := s.workspaceRepo.CountWorkspaces(ctx, filter)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	window, err := page.Window(count)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	workspaces, err := s.workspaceRepo.FindWorkspaces(ctx, filter, window.Limit, window.Offset)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return workspaces, page.Meta(count), nil
}

func (s *workspaceService) UpdateWorkspace(ctx context.Context, workspaceID int64, req dto.UpdateWorkspaceRequest, actor domain.Actor) (*domain.Workspace, error) {
	workspace, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		workspace.Name = *req.Name
	}
	if req.Description != nil {
		workspace.Description = req.Description
	}
	if req.ParentID != nil {
		workspace.ParentID = req.ParentID
	}
	if req.OwnerID != nil {
		workspace.OwnerID = req.OwnerID
	}
	if req.IsDelete != nil {
		workspace.IsDelete = *req.IsDelete
	}

	now := time.Now()
	workspace.Touch(now, actor)
	workspace.Reconcile(now)

	if err := s.workspaceRepo.UpdateWorkspace(ctx, *workspace); err != nil {
		return nil, err
	}
	return workspace, nil
}

func (s *workspaceService) DeleteWorkspace(ctx context.Context, workspaceID int64, actor domain.Actor, hard bool) error {
	workspace, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		return err
	}

	if hard {
		return s.workspaceRepo.HardDeleteWorkspace(ctx, workspaceID)
	}

	if err := workspace.MarkDeleted(time.Now(), actor); err != nil {
		return err
	}
	if err := s.workspaceRepo.UpdateWorkspace(ctx, *workspace); err != nil {
		return err
	}

	s.LogInfo(ctx, "workspace soft deleted", slog.Int64("workspace_id", workspaceID))
	return nil
}

func (s *workspaceService) AddMember(ctx context.Context, workspaceID int64, req dto.AddMemberRequest, actor domain.Actor) (*dto.WorkspaceMembersResponse, error) {
	if req.UserID == nil && req.CustomerID == nil {
		return nil, apperrors.NewAppError(apperrors.ErrValidation, "either user_id or customer_id is required", nil)
	}
	if _, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID); err != nil {
		return nil, err
	}

	now := time.Now()
	if req.UserID != nil {
		if _, err := s.workspaceRepo.AddUserMember(ctx, workspaceID, *req.UserID, now); err != nil {
			return nil, err
		}
	}
	if req.CustomerID != nil {
		if _, err := s.workspaceRepo.AddCustomerMember(ctx, workspaceID, *req.CustomerID, now); err != nil {
			return nil, err
		}
	}
	return s.ListMembers(ctx, workspaceID)
}

func (s *workspaceService) RemoveUserMember(ctx context.Context, workspaceID, userID int64, actor domain.Actor) error {
	return s.workspaceRepo.MarkUserLeft(ctx, workspaceID, userID, time.Now())
}

func (s *workspaceService) RemoveCustomerMember(ctx context.Context, workspaceID, customerID int64, actor domain.Actor) error {
	return s.workspaceRepo.MarkCustomerLeft(ctx, workspaceID, customerID, time.Now())
}

func (s *workspaceService) ListMembers(ctx context.Context, workspaceID int64) (*dto.WorkspaceMembersResponse, error) {
	users, err := s.workspaceRepo.FindUserMembers(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	customers, err := s.workspaceRepo.FindCustomerMembers(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	return &dto.WorkspaceMembersResponse{Users: users, Customers: customers}, nil
}

func (s *workspaceService) AssignPositions(ctx context.Context, workspaceUserID int64, positionIDs []int64, actor domain.Actor) error {
	return s.workspaceRepo.ReplacePositions(ctx, workspaceUserID, positionIDs)
}
