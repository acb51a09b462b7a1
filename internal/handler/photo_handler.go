package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/internal/middleware"
	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/internal/service"
	appErrors "github.com/VISWAJIT-PS/photo-lens-connect-sub001/pkg/errors"
	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/pkg/response"
)

// PhotoHandler exposes photo delivery endpoints: events, uploads and signed
// downloads.
type PhotoHandler struct {
	photos *service.PhotoService
}

// NewPhotoHandler constructs PhotoHandler.
func NewPhotoHandler(photos *service.PhotoService) *PhotoHandler {
	return &PhotoHandler{photos: photos}
}

// CreateEvent godoc
// @Summary Open a photo delivery event
// @Tags Photos
// @Accept json
// @Produce json
// @Param payload body service.CreateEventRequest true "Event payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /events [post]
func (h *PhotoHandler) CreateEvent(c *gin.Context) {
	var req service.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	event, err := h.photos.CreateEvent(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, event)
}

// GetEvent godoc
// @Summary Get a delivery event
// @Tags Photos
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /events/{id} [get]
func (h *PhotoHandler) GetEvent(c *gin.Context) {
	event, err := h.photos.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event, nil)
}

// ListPhotos godoc
// @Summary List photos delivered under an event
// @Tags Photos
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /events/{id}/photos [get]
func (h *PhotoHandler) ListPhotos(c *gin.Context) {
	photos, err := h.photos.ListPhotos(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, photos, nil)
}

// UploadPhoto godoc
// @Summary Upload a photo to an event
// @Tags Photos
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Event ID"
// @Param file formData file true "Image file"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /events/{id}/photos [post]
func (h *PhotoHandler) UploadPhoto(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file is required"))
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload"))
		return
	}
	defer f.Close()

	photo, err := h.photos.UploadPhoto(c.Request.Context(), c.Param("id"), fileHeader.Filename, fileHeader.Size, f)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, photo)
}

// IssueLink godoc
// @Summary Issue a time-limited signed download link
// @Tags Photos
// @Produce json
// @Param id path string true "Photo ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /photos/{id}/link [post]
func (h *PhotoHandler) IssueLink(c *gin.Context) {
	link, err := h.photos.IssueDownloadLink(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, link, nil)
}

// Download godoc
// @Summary Redeem a signed link and stream the photo
// @Tags Photos
// @Produce octet-stream
// @Param token query string true "Signed download token"
// @Success 200 {file} binary
// @Router /photos/download [get]
func (h *PhotoHandler) Download(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}

	var userID *string
	if claims, ok := middleware.CurrentClaims(c); ok {
		userID = &claims.UserID
	}

	f, fileName, err := h.photos.RedeemDownloadLink(c.Request.Context(), token, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer f.Close()

	c.FileAttachment(f.Name(), fileName)
}
