package postgres

import (
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// New opens a connection pool with the named driver. "pgx" (the default)
// uses jackc/pgx, "postgres" uses lib/pq.
func New(driver, dsn string) (*sqlx.DB, error) {
	name, err := driverName(driver)
	if err != nil {
		return nil, err
	}
	return sqlx.Connect(name, dsn)
}

func driverName(driver string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "pgx":
		return "pgx", nil
	case "postgres", "pq":
		return "postgres", nil
	default:
		return "", fmt.Errorf("postgres: unsupported driver %q", driver)
	}
}
