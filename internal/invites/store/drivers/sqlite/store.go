package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dwellhq/dwell/internal/invites/store"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type Store struct {
	db  *sql.DB
	dsn string
}

// DSN builds a connection string for a database file with the pragmas the
// service depends on. The pragmas ride in the DSN so every pooled
// connection gets them, not just the first one:
//   - foreign_keys: invites/residents reference units
//   - WAL + busy_timeout: concurrent redeemers queue on the invite row
//     instead of failing immediately with SQLITE_BUSY
func DSN(path string) string {
	return "file:" + path +
		"?_pragma=foreign_keys(1)" +
		"&_pragma=journal_mode(WAL)" +
		"&_pragma=busy_timeout(10000)"
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, dsn: dsn}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, mapBusy(err)
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	// Ensure rollback is called if we panic or return early with error
	defer func() {
		_ = tx.Rollback() // safe to call even after commit
	}()

	if err := fn(tx); err != nil {
		return err // rollback happens in defer
	}

	return mapBusy(tx.Commit())
}

func (s *Store) Units() store.Units         { return &unitsRepo{db: s.db} }
func (s *Store) Invites() store.Invites     { return &invitesRepo{db: s.db} }
func (s *Store) Residents() store.Residents { return &residentsRepo{db: s.db} }

// querier is the subset of *sql.DB / *sql.Tx the repos need, so the same
// repo code serves both the root store and transaction scopes.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scannable lets the row mappers accept both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// mapNotFound translates the driver's no-rows signal into the store sentinel.
func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return mapBusy(err)
}

// mapConstraint translates unique-constraint violations. Discrimination is
// by SQLite result code, never by error message text.
func mapConstraint(err error) error {
	if err == nil {
		return nil
	}
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return store.ErrAlreadyExists
		}
	}
	return mapBusy(err)
}

// mapBusy translates lock contention into the retryable store sentinel.
func mapBusy(err error) error {
	if err == nil {
		return nil
	}
	var se *sqlite.Error
	if errors.As(err, &se) {
		// Compare primary result codes; busy comes in extended flavours
		// (BUSY_RECOVERY, BUSY_SNAPSHOT, BUSY_TIMEOUT).
		switch se.Code() & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return store.ErrBusy
		}
	}
	return err
}

// Timestamps are stored as unix seconds so SQL-side comparisons (the
// redemption predicate, the stats rollup) are plain integer comparisons.

func toUnix(t time.Time) int64 { return t.UTC().Unix() }

func fromUnix(n int64) time.Time { return time.Unix(n, 0).UTC() }

func toUnixPtr(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: toUnix(*t), Valid: true}
}

func fromUnixPtr(n sql.NullInt64) *time.Time {
	if !n.Valid {
		return nil
	}
	t := fromUnix(n.Int64)
	return &t
}

func toNullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func fromNullInt64(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func fromNullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}
