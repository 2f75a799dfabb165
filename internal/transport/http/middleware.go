package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Thomas_Hospital_BackEnd/internal/service"
	"github.com/njprem/Thomas_Hospital_BackEnd/internal/util"
)

const (
	contextSubjectKey      = "session.subject_id"
	contextVerificationKey = "session.verification"

	// headerSessionExpired tells clients that the request was let through on
	// an expired token and a refresh is due.
	headerSessionExpired = "X-Session-Expired"
)

// RequireAuth admits a request only when its Authorization header carries a
// token the session service verifies.
func RequireAuth(sessions *service.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			verification, err := sessions.Verify(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				switch {
				case errors.Is(err, service.ErrMissingToken):
					return c.JSON(http.StatusForbidden, util.Error("no token provided"))
				case errors.Is(err, service.ErrTokenExpired):
					return c.JSON(http.StatusUnauthorized, util.Error("token expired"))
				default:
					return c.JSON(http.StatusUnauthorized, util.Error("unauthorized"))
				}
			}
			if verification.Expired {
				c.Response().Header().Set(headerSessionExpired, "true")
			}
			c.Set(contextSubjectKey, verification.SubjectID)
			c.Set(contextVerificationKey, verification)
			return next(c)
		}
	}
}

func CurrentSubject(c echo.Context) (int64, bool) {
	id, ok := c.Get(contextSubjectKey).(int64)
	return id, ok
}

func CurrentVerification(c echo.Context) (*service.Verification, bool) {
	v, ok := c.Get(contextVerificationKey).(*service.Verification)
	return v, ok && v != nil
}
