package ports

import (
	"context"

	"github.com/njprem/Thomas_Hospital_BackEnd/internal/domain"
)

// TableHandle names a logical table and its primary-key column. Several
// handles may point at the same physical data, for example a base table and
// a read-only view over it.
type TableHandle struct {
	name       string
	primaryKey string
	readOnly   bool
	generated  []string
}

// NewTableHandle describes a writable table. Generated columns are filled in
// by the database and are left out of inserts while they hold a zero value.
func NewTableHandle(name, primaryKey string, generated ...string) TableHandle {
	return TableHandle{
		name:       name,
		primaryKey: primaryKey,
		generated:  append([]string(nil), generated...),
	}
}

// NewViewHandle describes a view. Only reads are permitted through it.
func NewViewHandle(name, primaryKey string) TableHandle {
	return TableHandle{name: name, primaryKey: primaryKey, readOnly: true}
}

func (h TableHandle) Name() string       { return h.name }
func (h TableHandle) PrimaryKey() string { return h.primaryKey }
func (h TableHandle) ReadOnly() bool     { return h.readOnly }

func (h TableHandle) IsGenerated(column string) bool {
	for _, c := range h.generated {
		if c == column {
			return true
		}
	}
	return false
}

// TableStore is the uniform CRUD contract every entity is accessed through.
//
// Find and FindAll never fail on an empty result. Update reports
// domain.ErrNotFound for a missing id instead of creating a row, while Delete
// of a missing id is a no-op. Mutations on a view report domain.ErrReadOnly.
// Store failures are reported as domain.ErrPersistence.
type TableStore[T domain.Identifiable] interface {
	Handle() TableHandle
	Find(ctx context.Context, column string, value any) ([]T, error)
	FindAll(ctx context.Context) ([]T, error)
	Insert(ctx context.Context, record T) (*T, error)
	Update(ctx context.Context, id int64, changes domain.Record) (*T, error)
	Delete(ctx context.Context, id int64) error
	ClearAll(ctx context.Context) error
}
