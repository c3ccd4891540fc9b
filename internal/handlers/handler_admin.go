package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/pharmago/pharmago_backend/internal/core/ports/services"
	"github.com/pharmago/pharmago_backend/internal/dto"
	"github.com/pharmago/pharmago_backend/internal/middleware"
	"github.com/pharmago/pharmago_backend/pkg/response"
)

// adminHandler handles system operator management. All routes are staff
// gated; admins themselves never log in through the public pipeline.
type adminHandler struct {
	adminService portssvc.AdminSvcFacade
}

func newAdminHandler(as portssvc.AdminSvcFacade) *adminHandler {
	return &adminHandler{adminService: as}
}

func registerAdminRoutes(rg *gin.RouterGroup, adminService portssvc.AdminSvcFacade) {
	h := newAdminHandler(adminService)

	admins := rg.Group("/admins", middleware.RequireManage())
	{
		admins.POST("", h.createAdmin)
		admins.GET("", h.listAdmins)
		admins.GET("/:id", h.getAdmin)
		admins.DELETE("/:id", h.deleteAdmin)
	}
}

// createAdmin godoc
// @Summary Create an admin
// @Tags admins
// @Accept json
// @Produce json
// @Param admin body dto.CreateAdminRequest true "Admin details"
// @Success 201 {object} response.Envelope{data=dto.AdminResponse}
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope "Username already in use"
// @Security BearerAuth
// @Router /admins [post]
func (h *adminHandler) createAdmin(c *gin.Context) {
	var req dto.CreateAdminRequest
	if !bindJSON(c, &req) {
		return
	}

	admin, err := h.adminService.CreateAdmin(c.Request.Context(), req.Username, req.Password, req.FullName, req.IsProtected)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToAdminResponse(admin))
}

// getAdmin godoc
// @Summary Get an admin
// @Tags admins
// @Produce json
// @Param id path int true "Admin ID"
// @Success 200 {object} response.Envelope{data=dto.AdminResponse}
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /admins/{id} [get]
func (h *adminHandler) getAdmin(c *gin.Context) {
	adminID, ok := pathID(c, "id")
	if !ok {
		return
	}

	admin, err := h.adminService.GetAdminByID(c.Request.Context(), adminID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ToAdminResponse(admin))
}

// listAdmins godoc
// @Summary List admins
// @Tags admins
// @Produce json
// @Success 200 {object} response.Envelope{data=[]dto.AdminResponse}
// @Security BearerAuth
// @Router /admins [get]
func (h *adminHandler) listAdmins(c *gin.Context) {
	admins, err := h.adminService.ListAdmins(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ToAdminResponses(admins))
}

// deleteAdmin godoc
// @Summary Delete an admin
// @Description Physical deletion. Protected admins and the last remaining admin are refused.
// @Tags admins
// @Produce json
// @Param id path int true "Admin ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope "Protected or last admin"
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /admins/{id} [delete]
func (h *adminHandler) deleteAdmin(c *gin.Context) {
	adminID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.adminService.DeleteAdmin(c.Request.Context(), adminID); err != nil {
		response.Error(c, err)
		return
	}
	response.Deleted(c)
}
