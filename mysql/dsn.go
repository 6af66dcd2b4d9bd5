package mysql

import (
	"context"
	"database/sql"
	"fmt"

	mysqldriver "github.com/go-sql-driver/mysql"
)

// BuildDSN assembles a MySQL data-source-name string using the driver's own
// Config type, which takes care of escaping the user, password, and network
// address correctly rather than hand-formatting a connection string.
func BuildDSN(user, password, host string, port int, schemaName string) string {
	cfg := mysqldriver.NewConfig()
	cfg.User = user
	cfg.Passwd = password
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%d", host, port)
	cfg.DBName = schemaName
	cfg.ParseTime = true
	return cfg.FormatDSN()
}

// VerifyReachable opens (but never queries) a connection to confirm the
// target schema is reachable before an operator runs the generated SQL
// script by hand. This is a connectivity check only; the core migration
// engine never executes generated SQL against a database.
func VerifyReachable(ctx context.Context, dsn string) error {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("mysql: opening connection: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("mysql: target unreachable: %w", err)
	}
	return nil
}
