package domain

import "errors"

var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicate     = errors.New("record already exists")
	ErrInvalidColumn = errors.New("invalid column")
	ErrReadOnly      = errors.New("table is read-only")
	ErrPersistence   = errors.New("persistence failure")
)
