package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/pharmago/pharmago_backend/internal/core/ports/services"
	"github.com/pharmago/pharmago_backend/internal/dto"
	"github.com/pharmago/pharmago_backend/internal/middleware"
	"github.com/pharmago/pharmago_backend/pkg/pagination"
	"github.com/pharmago/pharmago_backend/pkg/response"
)

// positionHandler handles role and permission-action catalog requests.
type positionHandler struct {
	positionService portssvc.PositionSvcFacade
}

func newPositionHandler(ps portssvc.PositionSvcFacade) *positionHandler {
	return &positionHandler{positionService: ps}
}

func registerPositionRoutes(rg *gin.RouterGroup, positionService portssvc.PositionSvcFacade) {
	h := newPositionHandler(positionService)

	positions := rg.Group("/positions", middleware.RequireManage())
	{
		positions.POST("", h.createPosition)
		positions.GET("", h.listPositions)
		positions.GET("/:id", h.getPosition)
		positions.PUT("/:id", h.updatePosition)
		positions.DELETE("/:id", h.deletePosition)
	}

	actions := rg.Group("/actions", middleware.RequireManage())
	{
		actions.POST("", h.createAction)
		actions.GET("", h.listActions)
	}
}

// createPosition godoc
// @Summary Create a position
// @Description Creates a role; without a workspace it becomes a global default.
// @Tags positions
// @Accept json
// @Produce json
// @Param position body dto.CreatePositionRequest true "Position details"
// @Success 201 {object} response.Envelope{data=dto.PositionResponse}
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope "Code already in use"
// @Security BearerAuth
// @Router /positions [post]
func (h *positionHandler) createPosition(c *gin.Context) {
	var req dto.CreatePositionRequest
	if !bindJSON(c, &req) {
		return
	}

	position, err := h.positionService.CreatePosition(c.Request.Context(), req, middleware.ActorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToPositionResponse(position))
}

// getPosition godoc
// @Summary Get a position
// @Tags positions
// @Produce json
// @Param id path int true "Position ID"
// @Success 200 {object} response.Envelope{data=dto.PositionResponse}
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /positions/{id} [get]
func (h *positionHandler) getPosition(c *gin.Context) {
	positionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	position, err := h.positionService.GetPositionByID(c.Request.Context(), positionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ToPositionResponse(position))
}

// listPositions godoc
// @Summary List positions
// @Tags positions
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Page size" default(10)
// @Param keyword query string false "Substring search over name and code"
// @Param workspace_id query int false "Workspace filter"
// @Param is_default query bool false "Global default filter"
// @Success 200 {object} response.Envelope{data=[]dto.PositionResponse,metadata=pagination.Meta}
// @Failure 404 {object} response.Envelope "Page out of range"
// @Security BearerAuth
// @Router /positions [get]
func (h *positionHandler) listPositions(c *gin.Context) {
	var query dto.ListPositionsQuery
	if !bindQuery(c, &query) {
		return
	}

	positions, meta, err := h.positionService.ListPositions(c.Request.Context(), query, pagination.Parse(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OKWithMeta(c, dto.ToPositionResponses(positions), meta)
}

// updatePosition godoc
// @Summary Update a position
// @Tags positions
// @Accept json
// @Produce json
// @Param id path int true "Position ID"
// @Param position body dto.UpdatePositionRequest true "Fields to update"
// @Success 200 {object} response.Envelope{data=dto.PositionResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /positions/{id} [put]
func (h *positionHandler) updatePosition(c *gin.Context) {
	positionID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdatePositionRequest
	if !bindJSON(c, &req) {
		return
	}

	position, err := h.positionService.UpdatePosition(c.Request.Context(), positionID, req, middleware.ActorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ToPositionResponse(position))
}

// deletePosition godoc
// @Summary Delete a position
// @Tags positions
// @Produce json
// @Param id path int true "Position ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /positions/{id} [delete]
func (h *positionHandler) deletePosition(c *gin.Context) {
	positionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.positionService.DeletePosition(c.Request.Context(), positionID, middleware.ActorFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Deleted(c)
}

// createAction godoc
// @Summary Add an action to the catalog
// @Tags actions
// @Accept json
// @Produce json
// @Param action body dto.CreateActionRequest true "Action details"
// @Success 201 {object} response.Envelope{data=domain.Action}
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope "Code already in use"
// @Security BearerAuth
// @Router /actions [post]
func (h *positionHandler) createAction(c *gin.Context) {
	var req dto.CreateActionRequest
	if !bindJSON(c, &req) {
		return
	}

	action, err := h.positionService.CreateAction(c.Request.Context(), req, middleware.ActorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, action)
}

// listActions godoc
// @Summary List the action catalog
// @Tags actions
// @Produce json
// @Success 200 {object} response.Envelope{data=[]domain.Action}
// @Security BearerAuth
// @Router /actions [get]
func (h *positionHandler) listActions(c *gin.Context) {
	actions, err := h.positionService.ListActions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, actions)
}
