package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/internal/middleware"
	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/internal/models"
	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/internal/service"
	appErrors "github.com/VISWAJIT-PS/photo-lens-connect-sub001/pkg/errors"
	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/pkg/response"
)

// PhotographerHandler exposes the marketplace directory endpoints.
type PhotographerHandler struct {
	photographers *service.PhotographerService
}

// NewPhotographerHandler constructs PhotographerHandler.
func NewPhotographerHandler(photographers *service.PhotographerService) *PhotographerHandler {
	return &PhotographerHandler{photographers: photographers}
}

// List godoc
// @Summary Browse photographers
// @Tags Photographers
// @Produce json
// @Param specialty query string false "Filter by specialty"
// @Param location query string false "Filter by location"
// @Param search query string false "Search by name"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /photographers [get]
func (h *PhotographerHandler) List(c *gin.Context) {
	var filter models.PhotographerFilter
	filter.Specialty = c.Query("specialty")
	filter.Location = c.Query("location")
	filter.Search = strings.TrimSpace(c.Query("search"))
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}

	photographers, pagination, err := h.photographers.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, photographers, pagination)
}

// Get godoc
// @Summary Get photographer profile
// @Tags Photographers
// @Produce json
// @Param id path string true "Photographer ID"
// @Success 200 {object} response.Envelope
// @Router /photographers/{id} [get]
func (h *PhotographerHandler) Get(c *gin.Context) {
	photographer, err := h.photographers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, photographer, nil)
}

// Create godoc
// @Summary Create photographer profile
// @Tags Photographers
// @Accept json
// @Produce json
// @Param payload body service.PhotographerRequest true "Profile payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /photographers [post]
func (h *PhotographerHandler) Create(c *gin.Context) {
	var req service.PhotographerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	photographer, err := h.photographers.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, photographer)
}

// Update godoc
// @Summary Update photographer profile
// @Tags Photographers
// @Accept json
// @Produce json
// @Param id path string true "Photographer ID"
// @Param payload body service.PhotographerRequest true "Profile payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /photographers/{id} [put]
func (h *PhotographerHandler) Update(c *gin.Context) {
	var req service.PhotographerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	photographer, err := h.photographers.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, photographer, nil)
}

// AddFavorite godoc
// @Summary Save a photographer to favorites
// @Tags Favorites
// @Param id path string true "Photographer ID"
// @Success 204 "No Content"
// @Security BearerAuth
// @Router /photographers/{id}/favorite [post]
func (h *PhotographerHandler) AddFavorite(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.photographers.AddFavorite(c.Request.Context(), claims.UserID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// RemoveFavorite godoc
// @Summary Remove a photographer from favorites
// @Tags Favorites
// @Param id path string true "Photographer ID"
// @Success 204 "No Content"
// @Security BearerAuth
// @Router /photographers/{id}/favorite [delete]
func (h *PhotographerHandler) RemoveFavorite(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.photographers.RemoveFavorite(c.Request.Context(), claims.UserID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListFavorites godoc
// @Summary List the current user's favorite photographers
// @Tags Favorites
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /favorites [get]
func (h *PhotographerHandler) ListFavorites(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	favorites, err := h.photographers.ListFavorites(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, favorites, nil)
}
