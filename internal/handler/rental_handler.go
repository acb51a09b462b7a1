package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/internal/models"
	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/internal/service"
	appErrors "github.com/VISWAJIT-PS/photo-lens-connect-sub001/pkg/errors"
	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/pkg/response"
)

// RentalHandler exposes equipment rental endpoints.
type RentalHandler struct {
	rentals *service.RentalService
}

// NewRentalHandler constructs RentalHandler.
func NewRentalHandler(rentals *service.RentalService) *RentalHandler {
	return &RentalHandler{rentals: rentals}
}

// List godoc
// @Summary List rental orders
// @Tags Rentals
// @Produce json
// @Param customerId query string false "Filter by customer"
// @Param status query string false "Filter by status"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /rentals [get]
func (h *RentalHandler) List(c *gin.Context) {
	var filter models.RentalFilter
	filter.CustomerID = c.Query("customerId")
	if raw := c.Query("status"); raw != "" {
		status := models.RentalStatus(raw)
		filter.Status = &status
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}

	rentals, pagination, err := h.rentals.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rentals, pagination)
}

// Get godoc
// @Summary Get rental order detail
// @Tags Rentals
// @Produce json
// @Param id path string true "Rental ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /rentals/{id} [get]
func (h *RentalHandler) Get(c *gin.Context) {
	rental, err := h.rentals.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rental, nil)
}

// Create godoc
// @Summary Request an equipment rental
// @Tags Rentals
// @Accept json
// @Produce json
// @Param payload body service.CreateRentalRequest true "Rental payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /rentals [post]
func (h *RentalHandler) Create(c *gin.Context) {
	var req service.CreateRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	rental, err := h.rentals.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, rental)
}

// Activate godoc
// @Summary Hand over the rented equipment
// @Tags Rentals
// @Produce json
// @Param id path string true "Rental ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /rentals/{id}/activate [post]
func (h *RentalHandler) Activate(c *gin.Context) {
	rental, err := h.rentals.Activate(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rental, nil)
}

// Return godoc
// @Summary Close a rental after the equipment is returned
// @Tags Rentals
// @Produce json
// @Param id path string true "Rental ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /rentals/{id}/return [post]
func (h *RentalHandler) Return(c *gin.Context) {
	rental, err := h.rentals.Return(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rental, nil)
}

// Cancel godoc
// @Summary Cancel a requested rental
// @Tags Rentals
// @Produce json
// @Param id path string true "Rental ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /rentals/{id}/cancel [post]
func (h *RentalHandler) Cancel(c *gin.Context) {
	rental, err := h.rentals.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rental, nil)
}
