package core

// store.go persists applications through database/sql.
//
// The default backend is an embedded SQLite file (modernc.org/sqlite, no cgo).
// A PostgreSQL backend (pgx stdlib driver) is available for deployments that
// already run one. Both share the same statements apart from placeholders
// and the CREATE TABLE text. One *sql.DB is opened at startup and shared by
// every request; SQLite serializes concurrent writers itself and waits up to
// the configured busy timeout before reporting "database is locked".

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	_ "modernc.org/sqlite"             // registers the "sqlite" database/sql driver

	"github.com/JonMunkholm/leadsite/internal/config"
)

// ErrApplicationNotFound is returned by Get for an unknown id.
var ErrApplicationNotFound = errors.New("application not found")

// Dialect holds the per-backend SQL differences.
type Dialect struct {
	Name       string
	driverName string
	schema     string
	numbered   bool // $1-style placeholders instead of ?
}

var (
	SQLite   = Dialect{Name: config.DriverSQLite, driverName: "sqlite", schema: sqliteSchema}
	Postgres = Dialect{Name: config.DriverPostgres, driverName: "pgx", schema: postgresSchema, numbered: true}
)

// DialectFor returns the dialect for a configured driver name.
func DialectFor(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case config.DriverSQLite:
		return SQLite, nil
	case config.DriverPostgres:
		return Postgres, nil
	default:
		return Dialect{}, fmt.Errorf("unknown store driver %q", driver)
	}
}

// bind rewrites ? placeholders for dialects that number them.
func (d Dialect) bind(query string) string {
	if !d.numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Store is the append-only applications table.
type Store struct {
	db      *sql.DB
	dialect Dialect

	insertSQL string
	getSQL    string
	countSQL  string
}

// NewStore wraps an open database. The schema must already exist.
func NewStore(db *sql.DB, d Dialect) *Store {
	if db == nil {
		panic("core: store requires a database handle")
	}
	insertSQL := d.bind(`
		INSERT INTO applications (name, phone, email, format, "date", message)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id, "timestamp"`)
	getSQL := d.bind(`
		SELECT id, name, phone, email, format, "date", message, "timestamp"
		FROM applications
		WHERE id = ?`)

	return &Store{
		db:        db,
		dialect:   d,
		insertSQL: insertSQL,
		getSQL:    getSQL,
		countSQL:  `SELECT COUNT(*) FROM applications`,
	}
}

// Open connects to the configured backend, verifies the connection and
// creates the schema. The caller owns the returned Store and must Close it.
func Open(ctx context.Context, cfg config.StoreConfig) (*Store, error) {
	d, err := DialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	dsn := cfg.URL
	if d.Name == config.DriverSQLite {
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create store directory: %w", err)
			}
		}
		dsn = sqliteDSN(cfg.Path, cfg.BusyTimeout)
	}

	db, err := sql.Open(d.driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", d.Name, err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s store: %w", d.Name, err)
	}

	if err := CreateSchema(ctx, db, d); err != nil {
		db.Close()
		return nil, err
	}

	return NewStore(db, d), nil
}

// sqliteDSN builds a modernc.org/sqlite DSN with per-connection pragmas.
func sqliteDSN(path string, busy time.Duration) string {
	q := url.Values{}
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busy.Milliseconds()))
	q.Add("_pragma", "journal_mode(WAL)")
	return "file:" + path + "?" + q.Encode()
}

// Dialect returns the backend the store talks to.
func (s *Store) Dialect() Dialect {
	return s.dialect
}

// Insert stores one application in a single statement and returns the row
// as stored, with its assigned id and timestamp. Any driver failure is
// returned as a *StorageError.
func (s *Store) Insert(ctx context.Context, in NewApplication) (Application, error) {
	var (
		id int64
		ts any
	)
	err := s.db.QueryRowContext(ctx, s.insertSQL,
		in.Name,
		in.Phone,
		in.Email,
		in.Format,
		in.Date,
		in.Message,
	).Scan(&id, &ts)
	if err != nil {
		return Application{}, NewStorageError("insert application", err)
	}

	// The row exists at this point; an unreadable timestamp is left zero.
	stamp, _ := parseTimestamp(ts)
	return in.application(id, stamp), nil
}

// Get loads one application by id.
func (s *Store) Get(ctx context.Context, id int64) (Application, error) {
	var (
		app Application
		ts  any
	)
	err := s.db.QueryRowContext(ctx, s.getSQL, id).Scan(
		&app.ID,
		&app.Name,
		&app.Phone,
		&app.Email,
		&app.Format,
		&app.Date,
		&app.Message,
		&ts,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Application{}, ErrApplicationNotFound
	}
	if err != nil {
		return Application{}, NewStorageError("get application", err)
	}

	app.Timestamp, err = parseTimestamp(ts)
	if err != nil {
		return Application{}, NewStorageError("get application", err)
	}
	return app, nil
}

// Count returns the number of stored applications.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, s.countSQL).Scan(&n); err != nil {
		return 0, NewStorageError("count applications", err)
	}
	return n, nil
}

// Ping checks that the store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return NewStorageError("ping", err)
	}
	return nil
}

// Close releases the pool. Call once on shutdown.
func (s *Store) Close() error {
	return s.db.Close()
}

// timestampLayouts are the text forms SQLite's CURRENT_TIMESTAMP and the
// drivers produce. All are UTC when no zone is present.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
}

// parseTimestamp accepts the timestamp column as the driver hands it back.
func parseTimestamp(v any) (time.Time, error) {
	var s string
	switch t := v.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return t.UTC(), nil
	case string:
		s = t
	case []byte:
		s = string(t)
	default:
		return time.Time{}, fmt.Errorf("unexpected timestamp type %T", v)
	}

	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}
