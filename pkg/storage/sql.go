package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync/atomic"
	"time"
)

// SQLDialect selects placeholder and DDL syntax.
type SQLDialect int

const (
	// DialectSQLite uses ? placeholders.
	DialectSQLite SQLDialect = iota
	// DialectPostgreSQL uses $1, $2 placeholders.
	DialectPostgreSQL
)

// DefaultTable is the snapshot table name.
const DefaultTable = "dot_snapshots"

// SQLBackend stores snapshots in a database/sql table:
//
//	CREATE TABLE dot_snapshots (
//	    key        TEXT PRIMARY KEY,
//	    data       BLOB NOT NULL,
//	    updated_at BIGINT NOT NULL
//	);
//
// updated_at holds Unix milliseconds. PostgreSQL uses BYTEA for data.
type SQLBackend struct {
	db      *sql.DB
	table   string
	dialect SQLDialect
	ownsDB  bool
	closed  atomic.Bool
}

var _ Backend = (*SQLBackend)(nil)

// SQLOption configures an SQLBackend.
type SQLOption func(*SQLBackend)

// WithTable sets the table name. Default: "dot_snapshots".
func WithTable(name string) SQLOption {
	return func(b *SQLBackend) {
		if name != "" {
			b.table = name
		}
	}
}

// WithDialect sets the SQL dialect. Default: DialectSQLite.
func WithDialect(d SQLDialect) SQLOption {
	return func(b *SQLBackend) { b.dialect = d }
}

// NewSQL wraps db. The caller keeps ownership of db; Close does not close
// it. Call CreateTable before first use unless the table already exists.
func NewSQL(db *sql.DB, opts ...SQLOption) *SQLBackend {
	b := &SQLBackend{db: db, table: DefaultTable, dialect: DialectSQLite}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// DialectFor maps a database/sql driver name to its dialect.
func DialectFor(driver string) SQLDialect {
	switch driver {
	case "postgres", "pgx":
		return DialectPostgreSQL
	default:
		return DialectSQLite
	}
}

// CreateTable creates the snapshot table if it does not exist.
func (b *SQLBackend) CreateTable(ctx context.Context) error {
	blob := "BLOB"
	if b.dialect == DialectPostgreSQL {
		blob = "BYTEA"
	}
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			key TEXT PRIMARY KEY,
			data %s NOT NULL,
			updated_at BIGINT NOT NULL
		)
	`, b.table, blob)
	if _, err := b.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create table %s: %w", b.table, err)
	}
	return nil
}

func (b *SQLBackend) placeholder(n int) string {
	if b.dialect == DialectPostgreSQL {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// Load implements Backend.
func (b *SQLBackend) Load(ctx context.Context, key string) ([]byte, error) {
	if b.closed.Load() {
		return nil, ErrClosed
	}

	query := fmt.Sprintf(`SELECT data FROM %s WHERE key = %s`, b.table, b.placeholder(1))

	var data []byte
	err := b.db.QueryRowContext(ctx, query, key).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

// Save implements Backend.
func (b *SQLBackend) Save(ctx context.Context, key string, data []byte) error {
	if b.closed.Load() {
		return ErrClosed
	}
	if data == nil {
		data = []byte{}
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (key, data, updated_at)
		VALUES (%s, %s, %s)
		ON CONFLICT (key) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at
	`, b.table, b.placeholder(1), b.placeholder(2), b.placeholder(3))

	_, err := b.db.ExecContext(ctx, query, key, data, time.Now().UnixMilli())
	return err
}

// Delete implements Backend.
func (b *SQLBackend) Delete(ctx context.Context, key string) error {
	if b.closed.Load() {
		return ErrClosed
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE key = %s`, b.table, b.placeholder(1))
	_, err := b.db.ExecContext(ctx, query, key)
	return err
}

// Keys implements Backend.
func (b *SQLBackend) Keys(ctx context.Context) ([]string, error) {
	if b.closed.Load() {
		return nil, ErrClosed
	}

	rows, err := b.db.QueryContext(ctx, fmt.Sprintf(`SELECT key FROM %s ORDER BY key`, b.table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Close implements Backend. The database is closed only if Open created it.
func (b *SQLBackend) Close() error {
	if b.closed.Swap(true) {
		return nil
	}
	if b.ownsDB {
		return b.db.Close()
	}
	return nil
}
