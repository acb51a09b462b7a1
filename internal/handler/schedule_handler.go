package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/internal/service"
	appErrors "github.com/VISWAJIT-PS/photo-lens-connect-sub001/pkg/errors"
	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/pkg/response"
)

// ScheduleHandler exposes the calendar projection endpoints.
type ScheduleHandler struct {
	schedules *service.ScheduleService
}

// NewScheduleHandler constructs ScheduleHandler.
func NewScheduleHandler(schedules *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules}
}

// Month godoc
// @Summary Month calendar grid for a photographer
// @Tags Schedule
// @Produce json
// @Param id path string true "Photographer ID"
// @Param date query string false "Any date inside the month (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /photographers/{id}/schedule/month [get]
func (h *ScheduleHandler) Month(c *gin.Context) {
	ref, err := parseDateQuery(c, "date")
	if err != nil {
		response.Error(c, err)
		return
	}
	view, err := h.schedules.MonthView(c.Request.Context(), c.Param("id"), ref)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Week godoc
// @Summary Week calendar grid for a photographer
// @Tags Schedule
// @Produce json
// @Param id path string true "Photographer ID"
// @Param date query string false "Any date inside the week (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /photographers/{id}/schedule/week [get]
func (h *ScheduleHandler) Week(c *gin.Context) {
	ref, err := parseDateQuery(c, "date")
	if err != nil {
		response.Error(c, err)
		return
	}
	view, err := h.schedules.WeekView(c.Request.Context(), c.Param("id"), ref)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Day godoc
// @Summary Hourly day view for a photographer
// @Tags Schedule
// @Produce json
// @Param id path string true "Photographer ID"
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /photographers/{id}/schedule/day [get]
func (h *ScheduleHandler) Day(c *gin.Context) {
	date, err := parseDateQuery(c, "date")
	if err != nil {
		response.Error(c, err)
		return
	}
	view, err := h.schedules.DayView(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Tabs godoc
// @Summary Past and upcoming bookings for a photographer
// @Tags Schedule
// @Produce json
// @Param id path string true "Photographer ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /photographers/{id}/schedule/tabs [get]
func (h *ScheduleHandler) Tabs(c *gin.Context) {
	tabs, err := h.schedules.Tabs(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tabs, nil)
}

func parseDateQuery(c *gin.Context, key string) (time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return time.Now().UTC(), nil
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, key+" must be YYYY-MM-DD")
	}
	return date, nil
}
