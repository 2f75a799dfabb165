package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Thomas_Hospital_BackEnd/internal/media"
	"github.com/njprem/Thomas_Hospital_BackEnd/internal/service"
	"github.com/njprem/Thomas_Hospital_BackEnd/internal/util"
)

type ProfileImageHandler struct {
	images *service.ProfileImageService
}

// RegisterProfileImages mounts the avatar upload. A nil images service keeps
// the route but answers 503.
func RegisterProfileImages(e *echo.Echo, sessions *service.SessionService, images *service.ProfileImageService) {
	handler := &ProfileImageHandler{images: images}

	protected := e.Group(BasePath, RequireAuth(sessions))
	protected.PUT("/profile-image/:id", handler.upload)
}

func (h *ProfileImageHandler) upload(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid user id"))
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("image upload required"))
	}
	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("unable to read upload"))
	}
	defer src.Close()

	user, err := h.images.Upload(c.Request().Context(), id, media.Upload{
		Reader:      src,
		Size:        fileHeader.Size,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
	})
	if err != nil {
		return writeError(c, "upload profile image", err)
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"user":    user,
		"message": "Profile image updated successfully!",
	})
}
