package http

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// BasePath is where the staff API is mounted.
const BasePath = "/thomas"

const healthTimeout = 2 * time.Second

type RouterOptions struct {
	AllowOrigins []string
	// BodyLimit caps request bodies ("6M", "512K"). Empty leaves them unbounded.
	BodyLimit string
	// Ping backs /health. Nil reports the service as up.
	Ping func(context.Context) error
}

func NewRouter(opts RouterOptions) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	registerLogging(e)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())
	e.Use(staffCORS(opts.AllowOrigins))
	if opts.BodyLimit != "" {
		e.Use(middleware.BodyLimit(opts.BodyLimit))
	}

	e.GET("/health", health(opts.Ping))
	return e
}

// staffCORS lets browsers send bearer tokens and read the session headers.
// Credentials are only allowed when every origin is named.
func staffCORS(origins []string) echo.MiddlewareFunc {
	withCredentials := len(origins) > 0
	for _, origin := range origins {
		if origin == "*" {
			withCredentials = false
		}
	}
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderAuthorization,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderOrigin,
		},
		ExposeHeaders:    []string{headerSessionExpired, echo.HeaderXRequestID},
		AllowCredentials: withCredentials,
	})
}

func health(ping func(context.Context) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
			defer cancel()
			if err := ping(ctx); err != nil {
				log.Printf("health: store unreachable: %v", err)
				return c.JSON(http.StatusServiceUnavailable, echo.Map{"ok": false, "error": "store unavailable"})
			}
		}
		return c.JSON(http.StatusOK, echo.Map{"ok": true})
	}
}
