package bolt

import (
	"context"
	"time"

	"github.com/asdine/storm/v3"
	"github.com/go-errors/errors"
	bbolt "go.etcd.io/bbolt"

	"github.com/quantonganh/newsletter"
)

const openTimeout = 1 * time.Second

// DB represents a database
type DB struct {
	path    string
	stormDB *storm.DB
	ctx     context.Context
	cancel  func()
}

// NewDB returns new database
func NewDB(path string) *DB {
	db := &DB{
		path: path,
	}

	db.ctx, db.cancel = context.WithCancel(context.Background())

	return db
}

// Open opens new database connection
func (db *DB) Open() error {
	if db.path == "" {
		return errors.New("path required")
	}

	stormDB, err := storm.Open(db.path, storm.BoltOptions(0600, &bbolt.Options{Timeout: openTimeout}))
	if err != nil {
		return errors.Errorf("failed to open %s: %v", db.path, err)
	}
	db.stormDB = stormDB

	return db.stormDB.Init(&newsletter.Subscription{})
}

// Close closes database connection
func (db *DB) Close() error {
	db.cancel()

	if db.stormDB != nil {
		return db.stormDB.Close()
	}

	return nil
}
