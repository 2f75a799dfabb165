package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jmoiron/sqlx"

	"github.com/njprem/Thomas_Hospital_BackEnd/internal/domain"
	"github.com/njprem/Thomas_Hospital_BackEnd/internal/repository/ports"
)

// Table is the sqlx implementation of ports.TableStore. Columns are taken
// from the db tags of T; every statement is a single round trip and relies
// on the database for atomicity.
type Table[T domain.Identifiable] struct {
	db      *sqlx.DB
	handle  ports.TableHandle
	columns []column
	byName  map[string]column

	table      string
	selectList string
}

type column struct {
	name  string
	index []int
}

var _ ports.TableStore[domain.User] = (*Table[domain.User])(nil)

func NewTable[T domain.Identifiable](db *sqlx.DB, handle ports.TableHandle) (*Table[T], error) {
	if db == nil {
		return nil, errors.New("postgres: database is required")
	}
	if strings.TrimSpace(handle.Name()) == "" || strings.TrimSpace(handle.PrimaryKey()) == "" {
		return nil, errors.New("postgres: table name and primary key are required")
	}

	var zero T
	typ := reflect.TypeOf(zero)
	if typ == nil || typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("postgres: table %s: entity must be a struct, got %v", handle.Name(), typ)
	}

	tm := db.Mapper.TypeMap(typ)
	columns := make([]column, 0, len(tm.Tree.Children))
	byName := make(map[string]column, len(tm.Tree.Children))
	quoted := make([]string, 0, len(tm.Tree.Children))
	for _, fi := range tm.Tree.Children {
		if fi == nil || fi.Name == "" || fi.Embedded {
			continue
		}
		c := column{name: fi.Name, index: fi.Index}
		columns = append(columns, c)
		byName[c.name] = c
		quoted = append(quoted, quoteIdent(c.name))
	}
	if _, ok := byName[handle.PrimaryKey()]; !ok {
		return nil, fmt.Errorf("postgres: table %s: primary key %q is not a mapped column", handle.Name(), handle.PrimaryKey())
	}

	return &Table[T]{
		db:         db,
		handle:     handle,
		columns:    columns,
		byName:     byName,
		table:      quoteIdent(handle.Name()),
		selectList: strings.Join(quoted, ", "),
	}, nil
}

func (r *Table[T]) Handle() ports.TableHandle {
	return r.handle
}

func (r *Table[T]) Find(ctx context.Context, column string, value any) ([]T, error) {
	if _, ok := r.byName[column]; !ok {
		return nil, r.invalidColumn(column)
	}
	query := r.db.Rebind(fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = ?",
		r.selectList, r.table, quoteIdent(column),
	))
	items := make([]T, 0)
	if err := r.db.SelectContext(ctx, &items, query, value); err != nil {
		return nil, r.fail("find", err)
	}
	return items, nil
}

func (r *Table[T]) FindAll(ctx context.Context) ([]T, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY %s",
		r.selectList, r.table, quoteIdent(r.handle.PrimaryKey()),
	)
	items := make([]T, 0)
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, r.fail("find all", err)
	}
	return items, nil
}

func (r *Table[T]) Insert(ctx context.Context, record T) (*T, error) {
	if r.handle.ReadOnly() {
		return nil, r.readOnly("insert")
	}

	value := reflect.ValueOf(record)
	names := make([]string, 0, len(r.columns))
	args := make([]any, 0, len(r.columns))
	for _, c := range r.columns {
		if c.name == r.handle.PrimaryKey() && record.PrimaryKey() == 0 {
			continue
		}
		field := value.FieldByIndex(c.index)
		if r.handle.IsGenerated(c.name) && field.IsZero() {
			continue
		}
		names = append(names, quoteIdent(c.name))
		args = append(args, field.Interface())
	}

	var query string
	if len(names) == 0 {
		query = fmt.Sprintf("INSERT INTO %s DEFAULT VALUES RETURNING %s", r.table, r.selectList)
	} else {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(names)), ", ")
		query = r.db.Rebind(fmt.Sprintf(
			"INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
			r.table, strings.Join(names, ", "), placeholders, r.selectList,
		))
	}

	var inserted T
	if err := r.db.GetContext(ctx, &inserted, query, args...); err != nil {
		return nil, r.fail("insert", err)
	}
	return &inserted, nil
}

func (r *Table[T]) Update(ctx context.Context, id int64, changes domain.Record) (*T, error) {
	if r.handle.ReadOnly() {
		return nil, r.readOnly("update")
	}
	if len(changes) == 0 {
		return r.get(ctx, id)
	}

	keys := make([]string, 0, len(changes))
	for key := range changes {
		if _, ok := r.byName[key]; !ok || key == r.handle.PrimaryKey() {
			return nil, r.invalidColumn(key)
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	assignments := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys)+1)
	for _, key := range keys {
		assignments = append(assignments, quoteIdent(key)+" = ?")
		args = append(args, changes[key])
	}
	args = append(args, id)

	query := r.db.Rebind(fmt.Sprintf(
		"UPDATE %s SET %s WHERE %s = ? RETURNING %s",
		r.table, strings.Join(assignments, ", "), quoteIdent(r.handle.PrimaryKey()), r.selectList,
	))

	var updated T
	if err := r.db.GetContext(ctx, &updated, query, args...); err != nil {
		return nil, r.fail("update", err)
	}
	return &updated, nil
}

func (r *Table[T]) Delete(ctx context.Context, id int64) error {
	if r.handle.ReadOnly() {
		return r.readOnly("delete")
	}
	query := r.db.Rebind(fmt.Sprintf(
		"DELETE FROM %s WHERE %s = ?",
		r.table, quoteIdent(r.handle.PrimaryKey()),
	))
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return r.fail("delete", err)
	}
	return nil
}

func (r *Table[T]) ClearAll(ctx context.Context) error {
	if r.handle.ReadOnly() {
		return r.readOnly("clear")
	}
	if _, err := r.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", r.table)); err != nil {
		return r.fail("clear", err)
	}
	return nil
}

func (r *Table[T]) get(ctx context.Context, id int64) (*T, error) {
	items, err := r.Find(ctx, r.handle.PrimaryKey(), id)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%s %d: %w", r.handle.Name(), id, domain.ErrNotFound)
	}
	return &items[0], nil
}

func (r *Table[T]) fail(op string, err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%s %s: %w", op, r.handle.Name(), domain.ErrNotFound)
	case isUniqueViolation(err):
		return fmt.Errorf("%s %s: %w", op, r.handle.Name(), domain.ErrDuplicate)
	default:
		return fmt.Errorf("%w: %s %s: %w", domain.ErrPersistence, op, r.handle.Name(), err)
	}
}

func (r *Table[T]) invalidColumn(name string) error {
	return fmt.Errorf("%w: %q on %s", domain.ErrInvalidColumn, name, r.handle.Name())
}

func (r *Table[T]) readOnly(op string) error {
	return fmt.Errorf("%s %s: %w", op, r.handle.Name(), domain.ErrReadOnly)
}

func quoteIdent(name string) string {
	return pgx.Identifier{name}.Sanitize()
}
