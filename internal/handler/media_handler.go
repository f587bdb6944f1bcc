package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	apperrors "profilehub/internal/errors"
	"profilehub/internal/service"
	"profilehub/internal/storage"
)

// MediaHandler streams stored profile pictures.
type MediaHandler struct {
	media service.MediaService
	log   logrus.FieldLogger
}

// NewMediaHandler creates a media handler.
func NewMediaHandler(media service.MediaService, log logrus.FieldLogger) *MediaHandler {
	return &MediaHandler{media: media, log: log}
}

// Serve godoc
// @Summary Fetch a stored profile picture
// @Tags media
// @Produce image/png,image/jpeg,image/gif
// @Param name path string true "Stored file name"
// @Success 200 {file} file
// @Failure 404 {object} errors.ErrorResponse
// @Router /uploads/{name} [get]
func (h *MediaHandler) Serve(c echo.Context) error {
	rc, info, err := h.media.Open(c.Request().Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) || errors.Is(err, storage.ErrInvalidKey) {
			return echo.NewHTTPError(http.StatusNotFound, apperrors.ErrorResponse{
				Message: "File not found.",
				Code:    "NOT_FOUND",
			})
		}
		return fail(c, h.log, "serve media", err, http.StatusNotFound)
	}
	defer rc.Close()

	contentType := info.ContentType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	if info.Size > 0 {
		c.Response().Header().Set(echo.HeaderContentLength, strconv.FormatInt(info.Size, 10))
	}
	if info.LastModified != nil {
		c.Response().Header().Set(echo.HeaderLastModified, info.LastModified.UTC().Format(http.TimeFormat))
	}
	c.Response().Header().Set("Cache-Control", "public, max-age=86400")
	return c.Stream(http.StatusOK, contentType, rc)
}
