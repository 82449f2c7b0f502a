// Package store persists a rentroll.Registry in a SQL database.
//
// Two drivers are supported: "sqlite" (modernc.org/sqlite, a file path as dsn)
// and "postgres" (github.com/lib/pq, a connection url as dsn). The whole
// registry is rewritten by Save and rebuilt by Load.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	_ "github.com/lib/pq"  // register postgres driver
	_ "modernc.org/sqlite" // register sqlite driver
)

// Store is a SQL backed registry store.
type Store struct {
	db     *sql.DB
	driver string
	log    logrus.FieldLogger
}

// Open opens or creates the database and its schema.
func Open(ctx context.Context, driver, dsn string, log logrus.FieldLogger) (*Store, error) {
	source := dsn
	switch driver {
	case "sqlite":
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("creating database dir: %w", err)
			}
		}
		source = dsn + "?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)"
	case "postgres":
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to %s database: %w", driver, err)
	}
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	log.WithField("driver", driver).Debug("database opened")
	return &Store{db: db, driver: driver, log: log}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// rebind rewrites '?' placeholders into the driver's syntax.
func (s *Store) rebind(query string) string {
	if s.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// exec runs a statement within tx.
func (s *Store) exec(ctx context.Context, tx *sql.Tx, query string, args ...any) error {
	_, err := tx.ExecContext(ctx, s.rebind(query), args...)
	return err
}

// lastNumber is implemented by sequences that can report their state.
type lastNumber interface {
	Last() int64
}
