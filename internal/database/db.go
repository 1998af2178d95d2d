// Package database provides database connection management.
package database

import (
	"context"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/at-ishikawa/grevocab/internal/config"
	"github.com/at-ishikawa/grevocab/schemas"
)

// Open opens a connection for the configured SQL driver.
func Open(cfg config.StorageConfig) (*sqlx.DB, error) {
	driverName, dsn, err := dataSourceName(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database connection: %w", err)
	}

	dbCfg := cfg.Database
	if dbCfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(dbCfg.MaxOpenConns)
	}
	if dbCfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(dbCfg.MaxIdleConns)
	}
	if dbCfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(dbCfg.ConnMaxLifetime) * time.Second)
	}

	return db, nil
}

func dataSourceName(cfg config.StorageConfig) (string, string, error) {
	dbCfg := cfg.Database
	switch cfg.Driver {
	case config.StorageDriverMySQL:
		mysqlCfg := mysql.NewConfig()
		mysqlCfg.User = dbCfg.Username
		mysqlCfg.Passwd = dbCfg.Password
		mysqlCfg.Net = "tcp"
		mysqlCfg.Addr = fmt.Sprintf("%s:%d", dbCfg.Host, dbCfg.Port)
		mysqlCfg.DBName = dbCfg.Database
		if dbCfg.TLS {
			mysqlCfg.TLSConfig = "true"
		}
		if len(dbCfg.Params) > 0 {
			mysqlCfg.Params = dbCfg.Params
		}
		return "mysql", mysqlCfg.FormatDSN(), nil

	case config.StorageDriverPostgres:
		query := url.Values{}
		query.Set("sslmode", "disable")
		if dbCfg.TLS {
			query.Set("sslmode", "require")
		}
		for k, v := range dbCfg.Params {
			query.Set(k, v)
		}
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(dbCfg.Username, dbCfg.Password),
			Host:     dbCfg.Host + ":" + strconv.Itoa(dbCfg.Port),
			Path:     "/" + dbCfg.Database,
			RawQuery: query.Encode(),
		}
		return "postgres", u.String(), nil

	case config.StorageDriverSQLite:
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return "", "", fmt.Errorf("create database directory: %w", err)
			}
		}
		return "sqlite", cfg.Path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", nil
	}
	return "", "", fmt.Errorf("storage driver %q is not a database driver", cfg.Driver)
}

// Migrate creates the progress tables if they do not exist yet.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	files, err := fs.Glob(schemas.Migrations, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, file := range files {
		contents, err := fs.ReadFile(schemas.Migrations, file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}
		for _, stmt := range splitStatements(string(contents)) {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("apply migration %s: %w", file, err)
			}
		}
	}
	return nil
}

func splitStatements(sql string) []string {
	var stmts []string
	for _, stmt := range strings.Split(sql, ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// RunInTx runs fn within a database transaction.
// If fn returns an error, the transaction is rolled back; otherwise, it is committed.
func RunInTx(ctx context.Context, db *sqlx.DB, fn func(ctx context.Context, tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback transaction: %w (original error: %v)", rbErr, err)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// BuildMultiRowInsert returns an INSERT statement with one "?" group per row.
func BuildMultiRowInsert(table string, columns []string, rows int) string {
	group := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ") + ")"
	groups := make([]string, rows)
	for i := range groups {
		groups[i] = group
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", table, strings.Join(columns, ", "), strings.Join(groups, ", "))
}
