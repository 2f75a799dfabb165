package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Thomas_Hospital_BackEnd/internal/service"
	"github.com/njprem/Thomas_Hospital_BackEnd/internal/util"
)

type SessionHandler struct {
	sessions *service.SessionService
	admins   *service.AdminService
}

func RegisterSession(e *echo.Echo, sessions *service.SessionService, admins *service.AdminService) {
	handler := &SessionHandler{sessions: sessions, admins: admins}

	protected := e.Group(BasePath, RequireAuth(sessions))
	protected.POST("/refresh-token", handler.refresh)
}

// refresh issues a new token for the user named in the body. Without a body
// the token's own subject is refreshed. Any authenticated staff member may
// refresh for another user; there are no per-role permissions.
func (h *SessionHandler) refresh(c echo.Context) error {
	var req RefreshTokenRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	subjectID := req.User.ID
	if subjectID == 0 {
		subjectID, _ = CurrentSubject(c)
	}
	if subjectID <= 0 {
		return c.JSON(http.StatusBadRequest, util.Error("user id is required"))
	}

	session, err := h.sessions.Refresh(c.Request().Context(), subjectID, h.admins.Exists)
	if err != nil {
		return writeError(c, "refresh token", err)
	}

	return c.JSON(http.StatusOK, RefreshTokenResponse{
		Token:      session.Token,
		Expiration: session.ExpirationMillis(),
	})
}
