package postgres

import (
	"context"
	"database/sql"
	"embed"
	"io/fs"
	"sort"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
)

//go:embed migration/*.sql
var migrationFS embed.FS

// DB represents the database connection pool.
type DB struct {
	sqlDB  *sql.DB
	ctx    context.Context
	cancel func()

	url string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// NewDB returns new database
func NewDB(url string) *DB {
	db := &DB{
		url: url,
	}

	db.ctx, db.cancel = context.WithCancel(context.Background())

	return db
}

// Open opens the connection pool and applies pending migrations.
func (db *DB) Open() (err error) {
	if db.url == "" {
		return errors.New("url required")
	}

	if db.sqlDB != nil {
		return nil
	}

	if db.sqlDB, err = sql.Open("pgx", db.url); err != nil {
		return errors.Wrap(err, "sql.Open")
	}

	if db.MaxOpenConns > 0 {
		db.sqlDB.SetMaxOpenConns(db.MaxOpenConns)
	}
	if db.MaxIdleConns > 0 {
		db.sqlDB.SetMaxIdleConns(db.MaxIdleConns)
	}
	if db.ConnMaxLifetime > 0 {
		db.sqlDB.SetConnMaxLifetime(db.ConnMaxLifetime)
	}

	if err := db.sqlDB.PingContext(db.ctx); err != nil {
		return errors.Wrap(err, "ping")
	}

	if err := db.migrate(); err != nil {
		return errors.Wrap(err, "migrate")
	}

	return nil
}

func (db *DB) migrate() error {
	if _, err := db.sqlDB.ExecContext(db.ctx, `CREATE TABLE IF NOT EXISTS migrations (name TEXT PRIMARY KEY);`); err != nil {
		return errors.Wrap(err, "cannot create migrations table")
	}

	names, err := fs.Glob(migrationFS, "migration/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(names)

	for _, name := range names {
		if err := db.migrateFile(name); err != nil {
			return errors.Wrapf(err, "migration error: name=%q", name)
		}
	}

	return nil
}

func (db *DB) migrateFile(name string) error {
	tx, err := db.sqlDB.BeginTx(db.ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var n int
	if err := tx.QueryRowContext(db.ctx, `SELECT COUNT(*) FROM migrations WHERE name = $1`, name).Scan(&n); err != nil {
		return err
	}
	if n != 0 {
		return nil
	}

	buf, err := fs.ReadFile(migrationFS, name)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(db.ctx, string(buf)); err != nil {
		return err
	}

	if _, err := tx.ExecContext(db.ctx, `INSERT INTO migrations (name) VALUES ($1)`, name); err != nil {
		return err
	}

	return tx.Commit()
}

// Close closes the connection pool
func (db *DB) Close() error {
	if db.sqlDB == nil {
		return nil
	}

	db.cancel()

	return db.sqlDB.Close()
}
