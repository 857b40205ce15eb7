// Package database centralises sqlx connection helpers and the small
// data-access surface the API uses.  The default driver is
// go-sql-driver/mysql, which also works with MariaDB when configured for
// the MySQL wire protocol.
//
// Public entry points:
//
//	Open(dsn)                              – pool with conservative sizes.
//	OpenWithOptions(dsn, maxOpen, maxIdle) – fine-grained control.
//	(*DB).FetchOne / FetchAll / Insert     – parameterised access only.
//
// Open helpers Ping the database before returning so callers can fail
// fast during bootstrap.  The pool is opened once at startup and shared
// by every request; callers Close() it on shutdown.
//
// Every statement goes through bound parameters.  Interpolating caller
// input into SQL text is the injection vector this package exists to
// close, so no helper accepts pre-formatted SQL values.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// defaultQueryTimeout bounds any single statement that arrives without a
// caller deadline, so a wedged server turns into a 5xx instead of a hung
// connection.
const defaultQueryTimeout = 5 * time.Second

var (
	// ErrNotFound reports that a FetchOne matched no row.  It is a
	// distinct result, never conflated with a query failure.
	ErrNotFound = errors.New("database: no matching row")

	// ErrDuplicate reports a unique-key violation on Insert.
	ErrDuplicate = errors.New("database: duplicate key")
)

// DB wraps the process-wide sqlx pool.
type DB struct {
	*sqlx.DB
	queryTimeout time.Duration
}

// Open returns a *DB with sane defaults: 15 max open, 5 idle, and a
// 30-minute connection lifetime.  Suitable for the process-wide pool and
// for test setups.
func Open(dsn string) (*DB, error) {
	return OpenWithOptions(dsn, 15, 5)
}

// OpenWithOptions lets callers tune maxOpen and maxIdle.
func OpenWithOptions(dsn string, maxOpen, maxIdle int) (*DB, error) {
	db, err := sqlx.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, err
	}
	return &DB{DB: db, queryTimeout: defaultQueryTimeout}, nil
}

// Wrap adapts an existing *sqlx.DB (tests inject sqlmock through here).
func Wrap(db *sqlx.DB) *DB {
	return &DB{DB: db, queryTimeout: defaultQueryTimeout}
}

// FetchOne runs a parameterised query expected to return at most one row
// and scans it into dest.  Returns ErrNotFound when no row matched.
func (d *DB) FetchOne(ctx context.Context, dest any, query string, args ...any) error {
	ctx, cancel := d.deadline(ctx)
	defer cancel()

	err := d.GetContext(ctx, dest, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("database: fetch one: %w", err)
	}
	return nil
}

// FetchAll runs a parameterised query and scans every row into dest,
// which must be a pointer to a slice.  Zero rows is not an error.
func (d *DB) FetchAll(ctx context.Context, dest any, query string, args ...any) error {
	ctx, cancel := d.deadline(ctx)
	defer cancel()

	if err := d.SelectContext(ctx, dest, query, args...); err != nil {
		return fmt.Errorf("database: fetch all: %w", err)
	}
	return nil
}

// Insert writes one row built from cols into table and returns the
// generated id.  Column order is made deterministic so the statement
// text is stable for logging and tests.  Unique-key violations map to
// ErrDuplicate so callers can translate them for users.
func (d *DB) Insert(ctx context.Context, table string, cols map[string]any) (int64, error) {
	if len(cols) == 0 {
		return 0, errors.New("database: insert with no columns")
	}

	names := make([]string, 0, len(cols))
	for k := range cols {
		names = append(names, k)
	}
	sort.Strings(names)

	args := make([]any, 0, len(names))
	marks := make([]string, 0, len(names))
	for _, k := range names {
		args = append(args, cols[k])
		marks = append(marks, "?")
	}

	q := "INSERT INTO " + table +
		" (" + strings.Join(names, ", ") + ") VALUES (" + strings.Join(marks, ", ") + ")"

	ctx, cancel := d.deadline(ctx)
	defer cancel()

	res, err := d.ExecContext(ctx, q, args...)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrDuplicate
		}
		return 0, fmt.Errorf("database: insert into %s: %w", table, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("database: insert id: %w", err)
	}
	return id, nil
}

// deadline attaches the default query timeout unless the caller already
// set a tighter one.
func (d *DB) deadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d.queryTimeout)
}

// isDuplicateKey recognises the MySQL/MariaDB unique-violation error
// (1062) without importing driver-specific types.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Error 1062") || strings.Contains(msg, "Duplicate entry")
}
