package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	portssvc "github.com/pharmago/pharmago_backend/internal/core/ports/services"
	"github.com/pharmago/pharmago_backend/internal/dto"
	"github.com/pharmago/pharmago_backend/internal/middleware"
	"github.com/pharmago/pharmago_backend/pkg/pagination"
	"github.com/pharmago/pharmago_backend/pkg/response"
)

// userHandler handles HTTP requests related to staff users.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{userService: us}
}

// registerUserRoutes registers all staff user routes. The whole group is
// gated on the manage audience.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	users := rg.Group("/users", middleware.RequireManage())
	{
		users.POST("", h.createUser)
		users.GET("", h.listUsers)
		users.GET("/:id", h.getUser)
		users.PUT("/:id", h.updateUser)
		users.DELETE("/:id", h.deleteUser)
	}
}

// createUser godoc
// @Summary Create a staff user
// @Description Creates a staff user; the business code is generated from the new id.
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "User details"
// @Success 201 {object} response.Envelope{data=dto.UserResponse}
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope "Phone number already in use"
// @Security BearerAuth
// @Router /users [post]
func (h *userHandler) createUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req, middleware.ActorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToUserResponse(user))
}

// getUser godoc
// @Summary Get a staff user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} response.Envelope{data=dto.UserResponse}
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *userHandler) getUser(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ToUserResponse(user))
}

// listUsers godoc
// @Summary List staff users
// @Description Paginated listing with keyword/type/status filters.
// @Tags users
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Page size" default(10)
// @Param keyword query string false "Substring search over phone, name, code, email"
// @Param type query string false "User type filter"
// @Param status query string false "Status filter"
// @Success 200 {object} response.Envelope{data=[]dto.UserResponse,metadata=pagination.Meta}
// @Failure 404 {object} response.Envelope "Page out of range"
// @Security BearerAuth
// @Router /users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	var query dto.ListUsersQuery
	if !bindQuery(c, &query) {
		return
	}

	users, meta, err := h.userService.ListUsers(c.Request.Context(), query, pagination.Parse(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OKWithMeta(c, dto.ToUserResponses(users), meta)
}

// updateUser godoc
// @Summary Update a staff user
// @Description Partial update; is_delete may be toggled to restore an account.
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param user body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} response.Envelope{data=dto.UserResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /users/{id} [put]
func (h *userHandler) updateUser(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), userID, req, middleware.ActorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ToUserResponse(user))
}

// deleteUser godoc
// @Summary Delete a staff user
// @Description Soft deletes by default; pass hard=true to physically remove the row.
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Param hard query bool false "Hard delete"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope "Already deleted"
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *userHandler) deleteUser(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	err := h.userService.DeleteUser(c.Request.Context(), userID, middleware.ActorFromContext(c), hardDeleteRequested(c))
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("user delete failed",
			slog.Int64("user_id", userID), slog.String("error", err.Error()))
		response.Error(c, err)
		return
	}
	response.Deleted(c)
}
