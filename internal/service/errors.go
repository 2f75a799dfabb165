package service

import (
	"errors"

	"github.com/njprem/Thomas_Hospital_BackEnd/internal/domain"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminTooYoung      = errors.New("admin must be at least 1 year old")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidDOB         = errors.New("invalid date of birth")
	ErrMissingFields      = errors.New("missing required fields")
	ErrEmailTaken         = errors.New("admin with the same email already exists")
	ErrNumberTaken        = errors.New("admin with the same number already exists")
	ErrUserNotFound       = errors.New("user not found")
)

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
