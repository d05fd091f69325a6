package core

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/leadsite/internal/config"
)

func strPtr(s string) *string { return &s }

// openTestStore opens a real SQLite store in a temp directory.
func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(context.Background(), config.StoreConfig{
		Driver:       config.DriverSQLite,
		Path:         filepath.Join(t.TempDir(), "data", "applications.sqlite"),
		BusyTimeout:  5 * time.Second,
		MaxOpenConns: 4,
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestDialectFor(t *testing.T) {
	d, err := DialectFor("sqlite")
	require.NoError(t, err)
	assert.Equal(t, SQLite, d)

	d, err = DialectFor("Postgres")
	require.NoError(t, err)
	assert.Equal(t, Postgres, d)

	_, err = DialectFor("mysql")
	assert.Error(t, err)
}

func TestDialect_Bind(t *testing.T) {
	q := "INSERT INTO t (a, b) VALUES (?, ?)"

	assert.Equal(t, q, SQLite.bind(q))
	assert.Equal(t, "INSERT INTO t (a, b) VALUES ($1, $2)", Postgres.bind(q))
}

func TestSQLiteDSN(t *testing.T) {
	dsn := sqliteDSN("data/applications.sqlite", 2*time.Second)

	assert.Contains(t, dsn, "file:data/applications.sqlite?")
	assert.Contains(t, dsn, "busy_timeout%282000%29")
	assert.Contains(t, dsn, "journal_mode%28WAL%29")
}

func TestStore_InsertWithMock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewStore(db, SQLite)

	mock.ExpectQuery(`INSERT INTO applications \(name, phone, email, format, "date", message\)`).
		WithArgs("Ana", "555-1234", "ana@example.com", nil, nil, "Hi").
		WillReturnRows(sqlmock.NewRows([]string{"id", "timestamp"}).AddRow(int64(7), "2024-05-01 10:00:00"))

	app, err := store.Insert(context.Background(), NewApplication{
		Name:    "Ana",
		Phone:   "555-1234",
		Email:   strPtr("ana@example.com"),
		Message: strPtr("Hi"),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7), app.ID)
	assert.Equal(t, "Ana", app.Name)
	assert.Nil(t, app.Format)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), app.Timestamp)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_InsertPostgresPlaceholders(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherFunc(
		func(expected, actual string) error {
			for _, want := range []string{"$1", "$6", `RETURNING id, "timestamp"`} {
				if !strings.Contains(actual, want) {
					return errors.New("unexpected query: " + actual)
				}
			}
			return nil
		})))
	require.NoError(t, err)
	defer db.Close()

	store := NewStore(db, Postgres)
	ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery("insert").
		WillReturnRows(sqlmock.NewRows([]string{"id", "timestamp"}).AddRow(int64(1), ts))

	app, err := store.Insert(context.Background(), NewApplication{Name: "Ana", Phone: "12345"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), app.ID)
	assert.Equal(t, ts, app.Timestamp)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_InsertFailureIsClassified(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewStore(db, SQLite)

	mock.ExpectQuery("INSERT INTO applications").
		WillReturnError(errors.New("database is locked (5) (SQLITE_BUSY)"))

	_, err = store.Insert(context.Background(), NewApplication{Name: "Ana", Phone: "12345"})

	var se *StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "STO001", se.Code.Code)
	assert.Equal(t, "insert application", se.Op)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_SQLiteRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Minute)
	app, err := store.Insert(ctx, NewApplication{
		Name:   "Ana",
		Phone:  "555-1234",
		Format: strPtr("Wedding"),
	})
	require.NoError(t, err)
	assert.Positive(t, app.ID)
	assert.True(t, app.Timestamp.After(before), "timestamp %v should be recent", app.Timestamp)

	got, err := store.Get(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, "555-1234", got.Phone)
	require.NotNil(t, got.Format)
	assert.Equal(t, "Wedding", *got.Format)
	assert.Nil(t, got.Email)
	assert.Nil(t, got.Date)
	assert.Nil(t, got.Message)
	assert.True(t, app.Timestamp.Equal(got.Timestamp), "insert %v, get %v", app.Timestamp, got.Timestamp)

	_, err = store.Get(ctx, app.ID+100)
	assert.ErrorIs(t, err, ErrApplicationNotFound)
}

func TestStore_IdsIncreaseAndDuplicatesAreKept(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	in := NewApplication{Name: "Ana", Phone: "12345"}

	first, err := store.Insert(ctx, in)
	require.NoError(t, err)
	second, err := store.Insert(ctx, in)
	require.NoError(t, err)

	assert.Greater(t, second.ID, first.ID)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestStore_ConcurrentInserts(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	const n = 20
	ids := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app, err := store.Insert(ctx, NewApplication{Name: "Ana", Phone: "12345"})
			if assert.NoError(t, err) {
				ids <- app.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "id %d assigned twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(n), count)
}

func TestStore_FailedInsertWritesNothing(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.db.ExecContext(ctx, `
		CREATE TRIGGER reject_all BEFORE INSERT ON applications
		BEGIN SELECT RAISE(ABORT, 'database or disk is full'); END`)
	require.NoError(t, err)

	_, err = store.Insert(ctx, NewApplication{Name: "Ana", Phone: "12345"})

	var se *StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "STO003", se.Code.Code)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStore_ClosedStore(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Close())

	_, err := store.Insert(context.Background(), NewApplication{Name: "Ana", Phone: "12345"})

	var se *StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "STO005", se.Code.Code)

	assert.Error(t, store.Ping(context.Background()))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.StoreConfig{Driver: "mysql"})
	assert.Error(t, err)
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		want time.Time
	}{
		{"sqlite text", "2024-05-01 10:00:00", want},
		{"bytes", []byte("2024-05-01 10:00:00"), want},
		{"rfc3339", "2024-05-01T12:00:00+02:00", want},
		{"time value", want.In(time.FixedZone("X", 3600)), want},
		{"null", nil, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTimestamp(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
		})
	}

	_, err := parseTimestamp("yesterday")
	assert.Error(t, err)
	_, err = parseTimestamp(42)
	assert.Error(t, err)
}
