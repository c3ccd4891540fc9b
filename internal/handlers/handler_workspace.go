package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/pharmago/pharmago_backend/internal/core/ports/services"
	"github.com/pharmago/pharmago_backend/internal/dto"
	"github.com/pharmago/pharmago_backend/internal/middleware"
	"github.com/pharmago/pharmago_backend/pkg/pagination"
	"github.com/pharmago/pharmago_backend/pkg/response"
)

// workspaceHandler handles workspace and membership requests.
type workspaceHandler struct {
	workspaceService portssvc.WorkspaceSvcFacade
}

func newWorkspaceHandler(ws portssvc.WorkspaceSvcFacade) *workspaceHandler {
	return &workspaceHandler{workspaceService: ws}
}

func registerWorkspaceRoutes(rg *gin.RouterGroup, workspaceService portssvc.WorkspaceSvcFacade) {
	h := newWorkspaceHandler(workspaceService)

	workspaces := rg.Group("/workspaces", middleware.RequireManage())
	{
		workspaces.POST("", h.createWorkspace)
		workspaces.GET("", h.listWorkspaces)
		workspaces.GET("/:id", h.getWorkspace)
		workspaces.PUT("/:id", h.updateWorkspace)
		workspaces.DELETE("/:id", h.deleteWorkspace)

		workspaces.GET("/:id/members", h.listMembers)
		workspaces.POST("/:id/members", h.addMember)
		workspaces.DELETE("/:id/members/users/:userID", h.removeUserMember)
		workspaces.DELETE("/:id/members/customers/:customerID", h.removeCustomerMember)
		workspaces.PUT("/memberships/:membershipID/positions", h.assignPositions)
	}
}

// createWorkspace godoc
// @Summary Create a workspace
// @Tags workspaces
// @Accept json
// @Produce json
// @Param workspace body dto.CreateWorkspaceRequest true "Workspace details"
// @Success 201 {object} response.Envelope{data=dto.WorkspaceResponse}
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope "Code already in use"
// @Security BearerAuth
// @Router /workspaces [post]
func (h *workspaceHandler) createWorkspace(c *gin.Context) {
	var req dto.CreateWorkspaceRequest
	if !bindJSON(c, &req) {
		return
	}

	workspace, err := h.workspaceService.CreateWorkspace(c.Request.Context(), req, middleware.ActorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToWorkspaceResponse(workspace))
}

// getWorkspace godoc
// @Summary Get a workspace
// @Tags workspaces
// @Produce json
// @Param id path int true "Workspace ID"
// @Success 200 {object} response.Envelope{data=dto.WorkspaceResponse}
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /workspaces/{id} [get]
func (h *workspaceHandler) getWorkspace(c *gin.Context) {
	workspaceID, ok := pathID(c, "id")
	if !ok {
		return
	}

	workspace, err := h.workspaceService.GetWorkspaceByID(c.Request.Context(), workspaceID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ToWorkspaceResponse(workspace))
}

// listWorkspaces godoc
// @Summary List workspaces
// @Tags workspaces
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Page size" default(10)
// @Param keyword query string false "Substring search over name and code"
// @Param parent_id query int false "Parent workspace filter"
// @Param owner_id query int false "Owner filter"
// @Success 200 {object} response.Envelope{data=[]dto.WorkspaceResponse,metadata=pagination.Meta}
// @Failure 404 {object} response.Envelope "Page out of range"
// @Security BearerAuth
// @Router /workspaces [get]
func (h *workspaceHandler) listWorkspaces(c *gin.Context) {
	var query dto.ListWorkspacesQuery
	if !bindQuery(c, &query) {
		return
	}

	workspaces, meta, err := h.workspaceService.ListWorkspaces(c.Request.Context(), query, pagination.Parse(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OKWithMeta(c, dto.ToWorkspaceResponses(workspaces), meta)
}

// updateWorkspace godoc
// @Summary Update a workspace
// @Tags workspaces
// @Accept json
// @Produce json
// @Param id path int true "Workspace ID"
// @Param workspace body dto.UpdateWorkspaceRequest true "Fields to update"
// @Success 200 {object} response.Envelope{data=dto.WorkspaceResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /workspaces/{id} [put]
func (h *workspaceHandler) updateWorkspace(c *gin.Context) {
	workspaceID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateWorkspaceRequest
	if !bindJSON(c, &req) {
		return
	}

	workspace, err := h.workspaceService.UpdateWorkspace(c.Request.Context(), workspaceID, req, middleware.ActorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ToWorkspaceResponse(workspace))
}

// deleteWorkspace godoc
// @Summary Delete a workspace
// @Description Soft deletes by default; pass hard=true to physically remove the row.
// @Tags workspaces
// @Produce json
// @Param id path int true "Workspace ID"
// @Param hard query bool false "Hard delete"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope "Already deleted"
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /workspaces/{id} [delete]
func (h *workspaceHandler) deleteWorkspace(c *gin.Context) {
	workspaceID, ok := pathID(c, "id")
	if !ok {
		return
	}

	err := h.workspaceService.DeleteWorkspace(c.Request.Context(), workspaceID, middleware.ActorFromContext(c), hardDeleteRequested(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Deleted(c)
}

// listMembers godoc
// @Summary List workspace members
// @Tags workspaces
// @Produce json
// @Param id path int true "Workspace ID"
// @Success 200 {object} response.Envelope{data=dto.WorkspaceMembersResponse}
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /workspaces/{id}/members [get]
func (h *workspaceHandler) listMembers(c *gin.Context) {
	workspaceID, ok := pathID(c, "id")
	if !ok {
		return
	}

	members, err := h.workspaceService.ListMembers(c.Request.Context(), workspaceID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, members)
}

// addMember godoc
// @Summary Add a workspace member
// @Description Adds a staff user or a customer to the workspace.
// @Tags workspaces
// @Accept json
// @Produce json
// @Param id path int true "Workspace ID"
// @Param member body dto.AddMemberRequest true "Member to add"
// @Success 201 {object} response.Envelope{data=dto.WorkspaceMembersResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope "Already a member"
// @Security BearerAuth
// @Router /workspaces/{id}/members [post]
func (h *workspaceHandler) addMember(c *gin.Context) {
	workspaceID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.AddMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	members, err := h.workspaceService.AddMember(c.Request.Context(), workspaceID, req, middleware.ActorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, members)
}

// removeUserMember godoc
// @Summary Remove a staff member
// @Description Stamps left_at on the open membership; history is retained.
// @Tags workspaces
// @Produce json
// @Param id path int true "Workspace ID"
// @Param userID path int true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /workspaces/{id}/members/users/{userID} [delete]
func (h *workspaceHandler) removeUserMember(c *gin.Context) {
	workspaceID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "userID")
	if !ok {
		return
	}

	if err := h.workspaceService.RemoveUserMember(c.Request.Context(), workspaceID, userID, middleware.ActorFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Deleted(c)
}

// removeCustomerMember godoc
// @Summary Remove a customer member
// @Tags workspaces
// @Produce json
// @Param id path int true "Workspace ID"
// @Param customerID path int true "Customer ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /workspaces/{id}/members/customers/{customerID} [delete]
func (h *workspaceHandler) removeCustomerMember(c *gin.Context) {
	workspaceID, ok := pathID(c, "id")
	if !ok {
		return
	}
	customerID, ok := pathID(c, "customerID")
	if !ok {
		return
	}

	if err := h.workspaceService.RemoveCustomerMember(c.Request.Context(), workspaceID, customerID, middleware.ActorFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Deleted(c)
}

// assignPositions godoc
// @Summary Assign positions to a staff membership
// @Description Replaces the position set of the membership.
// @Tags workspaces
// @Accept json
// @Produce json
// @Param membershipID path int true "Workspace user membership ID"
// @Param positions body dto.AssignPositionsRequest true "Position ids"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /workspaces/memberships/{membershipID}/positions [put]
func (h *workspaceHandler) assignPositions(c *gin.Context) {
	membershipID, ok := pathID(c, "membershipID")
	if !ok {
		return
	}
	var req dto.AssignPositionsRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.workspaceService.AssignPositions(c.Request.Context(), membershipID, req.PositionIDs, middleware.ActorFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil)
}
