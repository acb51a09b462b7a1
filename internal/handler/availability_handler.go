package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/internal/service"
	appErrors "github.com/VISWAJIT-PS/photo-lens-connect-sub001/pkg/errors"
	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/pkg/response"
)

// AvailabilityHandler exposes recurring-slot and blocked-date endpoints.
type AvailabilityHandler struct {
	availability *service.AvailabilityService
}

// NewAvailabilityHandler constructs AvailabilityHandler.
func NewAvailabilityHandler(availability *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

// ListSlots godoc
// @Summary List a photographer's recurring availability slots
// @Tags Availability
// @Produce json
// @Param id path string true "Photographer ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /photographers/{id}/availability [get]
func (h *AvailabilityHandler) ListSlots(c *gin.Context) {
	slots, err := h.availability.ListSlots(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slots, nil)
}

// AddSlot godoc
// @Summary Add a recurring availability slot
// @Tags Availability
// @Accept json
// @Produce json
// @Param payload body service.SlotRequest true "Slot payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /availability [post]
func (h *AvailabilityHandler) AddSlot(c *gin.Context) {
	var req service.SlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	slot, err := h.availability.AddSlot(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, slot)
}

// UpdateSlot godoc
// @Summary Update a recurring availability slot
// @Tags Availability
// @Accept json
// @Produce json
// @Param id path string true "Slot ID"
// @Param payload body service.SlotRequest true "Slot payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /availability/{id} [put]
func (h *AvailabilityHandler) UpdateSlot(c *gin.Context) {
	var req service.SlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	slot, err := h.availability.UpdateSlot(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slot, nil)
}

// ToggleSlot godoc
// @Summary Toggle a slot's active flag
// @Tags Availability
// @Produce json
// @Param id path string true "Slot ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /availability/{id}/toggle [post]
func (h *AvailabilityHandler) ToggleSlot(c *gin.Context) {
	slot, err := h.availability.ToggleSlot(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slot, nil)
}

// DeleteSlot godoc
// @Summary Delete a recurring availability slot
// @Tags Availability
// @Param id path string true "Slot ID"
// @Success 204 "No Content"
// @Security BearerAuth
// @Router /availability/{id} [delete]
func (h *AvailabilityHandler) DeleteSlot(c *gin.Context) {
	if err := h.availability.DeleteSlot(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListBlockedDates godoc
// @Summary List a photographer's blocked dates
// @Tags Availability
// @Produce json
// @Param id path string true "Photographer ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /photographers/{id}/blocked-dates [get]
func (h *AvailabilityHandler) ListBlockedDates(c *gin.Context) {
	dates, err := h.availability.ListBlockedDates(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dates, nil)
}

// BlockDate godoc
// @Summary Block a date and mirror it on the calendar
// @Tags Availability
// @Accept json
// @Produce json
// @Param payload body service.BlockDateRequest true "Blocked date payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /blocked-dates [post]
func (h *AvailabilityHandler) BlockDate(c *gin.Context) {
	var req service.BlockDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	blocked, err := h.availability.BlockDate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, blocked)
}

// UnblockDate godoc
// @Summary Remove a blocked date and its calendar mirror
// @Tags Availability
// @Param id path string true "Blocked date ID"
// @Success 204 "No Content"
// @Security BearerAuth
// @Router /blocked-dates/{id} [delete]
func (h *AvailabilityHandler) UnblockDate(c *gin.Context) {
	if err := h.availability.UnblockDate(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
