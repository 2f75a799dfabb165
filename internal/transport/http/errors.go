package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Thomas_Hospital_BackEnd/internal/domain"
	"github.com/njprem/Thomas_Hospital_BackEnd/internal/service"
	"github.com/njprem/Thomas_Hospital_BackEnd/internal/util"
)

const genericFailure = "something went wrong, please try again"

var badRequestErrors = []error{
	service.ErrAdminTooYoung,
	service.ErrPasswordMismatch,
	service.ErrInvalidDOB,
	service.ErrMissingFields,
	service.ErrEmptyNotification,
	service.ErrInvalidImage,
	domain.ErrInvalidColumn,
}

// writeError maps a service error to a response. Anything unrecognised is
// logged with its detail and answered with a generic message.
func writeError(c echo.Context, op string, err error) error {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return c.JSON(http.StatusBadRequest, util.Error(target.Error()))
		}
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, util.Error(err.Error()))
	case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrNumberTaken):
		return c.JSON(http.StatusConflict, util.Error(err.Error()))
	case errors.Is(err, domain.ErrDuplicate):
		return c.JSON(http.StatusConflict, util.Error("admin with the same email or number already exists"))
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, util.Error("user not found"))
	case errors.Is(err, service.ErrImageTooLarge):
		return c.JSON(http.StatusRequestEntityTooLarge, util.Error(err.Error()))
	case errors.Is(err, service.ErrImagesDisabled):
		return c.JSON(http.StatusServiceUnavailable, util.Error(err.Error()))
	}

	log.Printf("%s: %v", op, err)
	return c.JSON(http.StatusInternalServerError, util.Error(genericFailure))
}
