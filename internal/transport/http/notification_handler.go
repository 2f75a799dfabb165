package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Thomas_Hospital_BackEnd/internal/service"
	"github.com/njprem/Thomas_Hospital_BackEnd/internal/util"
)

type NotificationHandler struct {
	notifications *service.NotificationService
}

func RegisterNotifications(e *echo.Echo, sessions *service.SessionService, notifications *service.NotificationService) {
	handler := &NotificationHandler{notifications: notifications}

	protected := e.Group(BasePath, RequireAuth(sessions))
	protected.GET("/get-notifications", handler.list)
	protected.POST("/notifications", handler.create)
	protected.DELETE("/delete-notifications/:id", handler.delete)
	protected.DELETE("/delete-all-notifications", handler.clear)
}

func (h *NotificationHandler) list(c echo.Context) error {
	items, err := h.notifications.List(c.Request().Context())
	if err != nil {
		return writeError(c, "list notifications", err)
	}
	return c.JSON(http.StatusOK, NotificationsResponse{Notifications: nonNil(items)})
}

func (h *NotificationHandler) create(c echo.Context) error {
	var req CreateNotificationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	created, err := h.notifications.Create(c.Request().Context(), req.PatientID, req.Message)
	if err != nil {
		return writeError(c, "create notification", err)
	}
	return c.JSON(http.StatusCreated, util.Data("notification", created))
}

func (h *NotificationHandler) delete(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid notification id"))
	}
	if err := h.notifications.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, "delete notification", err)
	}
	return c.JSON(http.StatusOK, util.Message("Notification deleted successfully"))
}

func (h *NotificationHandler) clear(c echo.Context) error {
	if err := h.notifications.ClearAll(c.Request().Context()); err != nil {
		return writeError(c, "clear notifications", err)
	}
	return c.JSON(http.StatusOK, util.Message("All notifications cleared"))
}
