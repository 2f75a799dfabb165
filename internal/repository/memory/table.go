// Package memory keeps table rows in process memory. It backs local runs
// without a database and the service tests; it enforces primary-key
// uniqueness only, exactly like a table without secondary constraints.
package memory

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jmoiron/sqlx/reflectx"

	"github.com/njprem/Thomas_Hospital_BackEnd/internal/domain"
	"github.com/njprem/Thomas_Hospital_BackEnd/internal/repository/ports"
)

var timeType = reflect.TypeOf(time.Time{})

type Table[T domain.Identifiable] struct {
	handle  ports.TableHandle
	columns map[string][]int
	now     func() time.Time

	mu     sync.RWMutex
	rows   map[int64]T
	nextID int64
}

type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock sets the time source used for generated timestamp columns.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

var _ ports.TableStore[domain.User] = (*Table[domain.User])(nil)

func NewTable[T domain.Identifiable](handle ports.TableHandle, opts ...Option) (*Table[T], error) {
	o := options{now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		opt(&o)
	}

	var zero T
	typ := reflect.TypeOf(zero)
	if typ == nil || typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("memory: table %s: entity must be a struct, got %v", handle.Name(), typ)
	}

	tm := reflectx.NewMapperFunc("db", strings.ToLower).TypeMap(typ)
	columns := make(map[string][]int, len(tm.Tree.Children))
	for _, fi := range tm.Tree.Children {
		if fi == nil || fi.Name == "" || fi.Embedded {
			continue
		}
		columns[fi.Name] = fi.Index
	}
	pk, ok := columns[handle.PrimaryKey()]
	if !ok {
		return nil, fmt.Errorf("memory: table %s: primary key %q is not a mapped column", handle.Name(), handle.PrimaryKey())
	}
	if typ.FieldByIndex(pk).Type.Kind() != reflect.Int64 {
		return nil, fmt.Errorf("memory: table %s: primary key %q must be int64", handle.Name(), handle.PrimaryKey())
	}

	return &Table[T]{
		handle:  handle,
		columns: columns,
		now:     o.now,
		rows:    make(map[int64]T),
	}, nil
}

func (t *Table[T]) Handle() ports.TableHandle {
	return t.handle
}

// Seed stores rows as they are, bypassing the read-only check. It is how a
// view gets its contents.
func (t *Table[T]) Seed(records ...T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, r := range records {
		t.rows[r.PrimaryKey()] = r
		if r.PrimaryKey() > t.nextID {
			t.nextID = r.PrimaryKey()
		}
	}
}

func (t *Table[T]) Find(ctx context.Context, column string, value any) ([]T, error) {
	index, ok := t.columns[column]
	if !ok {
		return nil, t.invalidColumn(column)
	}
	if err := ctx.Err(); err != nil {
		return nil, t.fail("find", err)
	}

	t.mu.RLock()
	defer t.mu.RUnlock()
	items := make([]T, 0)
	for _, id := range t.sortedIDsLocked() {
		row := t.rows[id]
		if matches(reflect.ValueOf(row).FieldByIndex(index), value) {
			items = append(items, row)
		}
	}
	return items, nil
}

func (t *Table[T]) FindAll(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, t.fail("find all", err)
	}

	t.mu.RLock()
	defer t.mu.RUnlock()
	items := make([]T, 0, len(t.rows))
	for _, id := range t.sortedIDsLocked() {
		items = append(items, t.rows[id])
	}
	return items, nil
}

func (t *Table[T]) Insert(ctx context.Context, record T) (*T, error) {
	if t.handle.ReadOnly() {
		return nil, t.readOnly("insert")
	}
	if err := ctx.Err(); err != nil {
		return nil, t.fail("insert", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	row := reflect.New(reflect.TypeOf(record)).Elem()
	row.Set(reflect.ValueOf(record))

	id := record.PrimaryKey()
	if id == 0 {
		t.nextID++
		id = t.nextID
		row.FieldByIndex(t.columns[t.handle.PrimaryKey()]).SetInt(id)
	} else if _, exists := t.rows[id]; exists {
		return nil, fmt.Errorf("insert %s: %w", t.handle.Name(), domain.ErrDuplicate)
	} else if id > t.nextID {
		t.nextID = id
	}

	for name, index := range t.columns {
		field := row.FieldByIndex(index)
		if t.handle.IsGenerated(name) && field.Type() == timeType && field.IsZero() {
			field.Set(reflect.ValueOf(t.now()))
		}
	}

	stored := row.Interface().(T)
	t.rows[id] = stored
	return &stored, nil
}

func (t *Table[T]) Update(ctx context.Context, id int64, changes domain.Record) (*T, error) {
	if t.handle.ReadOnly() {
		return nil, t.readOnly("update")
	}
	for key := range changes {
		if _, ok := t.columns[key]; !ok || key == t.handle.PrimaryKey() {
			return nil, t.invalidColumn(key)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, t.fail("update", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	current, ok := t.rows[id]
	if !ok {
		return nil, fmt.Errorf("update %s: %w", t.handle.Name(), domain.ErrNotFound)
	}
	row := reflect.New(reflect.TypeOf(current)).Elem()
	row.Set(reflect.ValueOf(current))
	for key, value := range changes {
		if err := assign(row.FieldByIndex(t.columns[key]), value); err != nil {
			return nil, t.fail("update", err)
		}
	}

	updated := row.Interface().(T)
	t.rows[id] = updated
	return &updated, nil
}

func (t *Table[T]) Delete(ctx context.Context, id int64) error {
	if t.handle.ReadOnly() {
		return t.readOnly("delete")
	}
	if err := ctx.Err(); err != nil {
		return t.fail("delete", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.rows, id)
	return nil
}

func (t *Table[T]) ClearAll(ctx context.Context) error {
	if t.handle.ReadOnly() {
		return t.readOnly("clear")
	}
	if err := ctx.Err(); err != nil {
		return t.fail("clear", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = make(map[int64]T)
	return nil
}

func (t *Table[T]) sortedIDsLocked() []int64 {
	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (t *Table[T]) fail(op string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", domain.ErrPersistence, op, t.handle.Name(), err)
}

func (t *Table[T]) invalidColumn(name string) error {
	return fmt.Errorf("%w: %q on %s", domain.ErrInvalidColumn, name, t.handle.Name())
}

func (t *Table[T]) readOnly(op string) error {
	return fmt.Errorf("%s %s: %w", op, t.handle.Name(), domain.ErrReadOnly)
}

// matches compares loosely, the way a SQL equality on a text parameter does:
// 42 and "42" are equal.
func matches(field reflect.Value, value any) bool {
	for field.Kind() == reflect.Pointer {
		if field.IsNil() {
			return isNil(value)
		}
		field = field.Elem()
	}
	if isNil(value) {
		return false
	}
	want := reflect.ValueOf(value)
	for want.Kind() == reflect.Pointer {
		want = want.Elem()
	}
	if field.Type() == timeType {
		w, ok := want.Interface().(time.Time)
		return ok && field.Interface().(time.Time).Equal(w)
	}
	return fmt.Sprint(field.Interface()) == fmt.Sprint(want.Interface())
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

var errIncompatibleValue = errors.New("incompatible value")

func assign(field reflect.Value, value any) error {
	if isNil(value) {
		field.Set(reflect.Zero(field.Type()))
		return nil
	}
	v := reflect.ValueOf(value)
	target := field.Type()
	pointer := target.Kind() == reflect.Pointer
	if pointer {
		target = target.Elem()
	}
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}

	switch {
	case v.Type().AssignableTo(target):
	case isNumeric(v.Kind()) && isNumeric(target.Kind()):
		v = v.Convert(target)
	default:
		return fmt.Errorf("%w: cannot store %T in %s", errIncompatibleValue, value, field.Type())
	}

	if pointer {
		p := reflect.New(target)
		p.Elem().Set(v)
		field.Set(p)
		return nil
	}
	field.Set(v)
	return nil
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
