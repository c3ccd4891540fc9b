package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/pharmago/pharmago_backend/internal/apperrors"
	portssvc "github.com/pharmago/pharmago_backend/internal/core/ports/services"
	"github.com/pharmago/pharmago_backend/internal/dto"
	"github.com/pharmago/pharmago_backend/internal/middleware"
	"github.com/pharmago/pharmago_backend/pkg/pagination"
	"github.com/pharmago/pharmago_backend/pkg/response"
)

// customerHandler handles HTTP requests related to customers. Management
// endpoints are staff-gated; the /me endpoints serve the customer audience.
type customerHandler struct {
	customerService portssvc.CustomerSvcFacade
}

func newCustomerHandler(cs portssvc.CustomerSvcFacade) *customerHandler {
	return &customerHandler{customerService: cs}
}

func registerCustomerRoutes(rg *gin.RouterGroup, customerService portssvc.CustomerSvcFacade) {
	h := newCustomerHandler(customerService)

	customers := rg.Group("/customers", middleware.RequireManage())
	{
		customers.POST("", h.createCustomer)
		customers.GET("", h.listCustomers)
		customers.GET("/:id", h.getCustomer)
		customers.PUT("/:id", h.updateCustomer)
		customers.DELETE("/:id", h.deleteCustomer)
	}

	me := rg.Group("/me", middleware.RequireCustomer())
	{
		me.GET("", h.getOwnProfile)
		me.PUT("", h.updateOwnProfile)
	}
}

// createCustomer godoc
// @Summary Create a customer
// @Description Creates a customer; the acting staff user becomes representative unless one is named.
// @Tags customers
// @Accept json
// @Produce json
// @Param customer body dto.CreateCustomerRequest true "Customer details"
// @Success 201 {object} response.Envelope{data=dto.CustomerResponse}
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope "Phone number already in use"
// @Security BearerAuth
// @Router /customers [post]
func (h *customerHandler) createCustomer(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), req, middleware.ActorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToCustomerResponse(customer))
}

// getCustomer godoc
// @Summary Get a customer
// @Tags customers
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} response.Envelope{data=dto.CustomerResponse}
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /customers/{id} [get]
func (h *customerHandler) getCustomer(c *gin.Context) {
	customerID, ok := pathID(c, "id")
	if !ok {
		return
	}

	customer, err := h.customerService.GetCustomerByID(c.Request.Context(), customerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ToCustomerResponse(customer))
}

// listCustomers godoc
// @Summary List customers
// @Tags customers
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Page size" default(10)
// @Param keyword query string false "Substring search over phone, name, code, email"
// @Param status query string false "Status filter"
// @Param representative query int false "Representative user id filter"
// @Success 200 {object} response.Envelope{data=[]dto.CustomerResponse,metadata=pagination.Meta}
// @Failure 404 {object} response.Envelope "Page out of range"
// @Security BearerAuth
// @Router /customers [get]
func (h *customerHandler) listCustomers(c *gin.Context) {
	var query dto.ListCustomersQuery
	if !bindQuery(c, &query) {
		return
	}

	customers, meta, err := h.customerService.ListCustomers(c.Request.Context(), query, pagination.Parse(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OKWithMeta(c, dto.ToCustomerResponses(customers), meta)
}

// updateCustomer godoc
// @Summary Update a customer
// @Tags customers
// @Accept json
// @Produce json
// @Param id path int true "Customer ID"
// @Param customer body dto.UpdateCustomerRequest true "Fields to update"
// @Success 200 {object} response.Envelope{data=dto.CustomerResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /customers/{id} [put]
func (h *customerHandler) updateCustomer(c *gin.Context) {
	customerID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), customerID, req, middleware.ActorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ToCustomerResponse(customer))
}

// deleteCustomer godoc
// @Summary Delete a customer
// @Description Soft deletes by default; pass hard=true to physically remove the row.
// @Tags customers
// @Produce json
// @Param id path int true "Customer ID"
// @Param hard query bool false "Hard delete"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope "Already deleted"
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /customers/{id} [delete]
func (h *customerHandler) deleteCustomer(c *gin.Context) {
	customerID, ok := pathID(c, "id")
	if !ok {
		return
	}

	err := h.customerService.DeleteCustomer(c.Request.Context(), customerID, middleware.ActorFromContext(c), hardDeleteRequested(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Deleted(c)
}

// getOwnProfile godoc
// @Summary Get own customer profile
// @Tags customers
// @Produce json
// @Success 200 {object} response.Envelope{data=dto.CustomerResponse}
// @Failure 401 {object} response.Envelope
// @Security BearerAuth
// @Router /me [get]
func (h *customerHandler) getOwnProfile(c *gin.Context) {
	principal, ok := middleware.GetPrincipalFromContext(c)
	if !ok || principal.Customer == nil {
		response.Error(c, apperrors.NewAppError(apperrors.ErrUnauthorized, "authentication required", nil))
		return
	}
	response.OK(c, dto.ToCustomerResponse(principal.Customer))
}

// updateOwnProfile godoc
// @Summary Update own customer profile
// @Description Customers may update their own profile; the deletion flag is not self-serviceable.
// @Tags customers
// @Accept json
// @Produce json
// @Param customer body dto.UpdateCustomerRequest true "Fields to update"
// @Success 200 {object} response.Envelope{data=dto.CustomerResponse}
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Security BearerAuth
// @Router /me [put]
func (h *customerHandler) updateOwnProfile(c *gin.Context) {
	principal, ok := middleware.GetPrincipalFromContext(c)
	if !ok || principal.Customer == nil {
		response.Error(c, apperrors.NewAppError(apperrors.ErrUnauthorized, "authentication required", nil))
		return
	}
	var req dto.UpdateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}
	// Customers cannot toggle their own deletion or reassign their
	// representative.
	req.IsDelete = nil
	req.Representative = nil

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), principal.ID(), req, principal.Actor())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ToCustomerResponse(customer))
}
