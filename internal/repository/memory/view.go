package memory

import (
	"context"
	"fmt"

	"github.com/njprem/Thomas_Hospital_BackEnd/internal/domain"
	"github.com/njprem/Thomas_Hospital_BackEnd/internal/repository/ports"
)

// View is a read-only projection of another in-memory table, recomputed on
// every read the way a database view is.
type View[S, T domain.Identifiable] struct {
	handle  ports.TableHandle
	source  *Table[S]
	project func(S) T
}

var _ ports.TableStore[domain.PatientNotification] = (*View[domain.Notification, domain.PatientNotification])(nil)

func NewView[S, T domain.Identifiable](handle ports.TableHandle, source *Table[S], project func(S) T) (*View[S, T], error) {
	if !handle.ReadOnly() {
		return nil, fmt.Errorf("memory: view %s: handle must be read-only", handle.Name())
	}
	if _, err := NewTable[T](handle); err != nil {
		return nil, err
	}
	return &View[S, T]{handle: handle, source: source, project: project}, nil
}

func (v *View[S, T]) Handle() ports.TableHandle {
	return v.handle
}

func (v *View[S, T]) Find(ctx context.Context, column string, value any) ([]T, error) {
	snapshot, err := v.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.Find(ctx, column, value)
}

func (v *View[S, T]) FindAll(ctx context.Context) ([]T, error) {
	snapshot, err := v.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.FindAll(ctx)
}

func (v *View[S, T]) Insert(context.Context, T) (*T, error) {
	return nil, v.readOnly("insert")
}

func (v *View[S, T]) Update(context.Context, int64, domain.Record) (*T, error) {
	return nil, v.readOnly("update")
}

func (v *View[S, T]) Delete(context.Context, int64) error {
	return v.readOnly("delete")
}

func (v *View[S, T]) ClearAll(context.Context) error {
	return v.readOnly("clear")
}

func (v *View[S, T]) snapshot(ctx context.Context) (*Table[T], error) {
	rows, err := v.source.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	snapshot, err := NewTable[T](v.handle)
	if err != nil {
		return nil, err
	}
	projected := make([]T, 0, len(rows))
	for _, row := range rows {
		projected = append(projected, v.project(row))
	}
	snapshot.Seed(projected...)
	return snapshot, nil
}

func (v *View[S, T]) readOnly(op string) error {
	return fmt.Errorf("%s %s: %w", op, v.handle.Name(), domain.ErrReadOnly)
}
