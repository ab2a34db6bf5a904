package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

var tableNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLBackend stores entries in a key/value table.
// Statements are shared by PostgreSQL (lib/pq) and SQLite (modernc); only
// the placeholder style differs.
type SQLBackend struct {
	db        *sql.DB
	driver    string
	tableName string
	key       string
}

// NewPostgresBackend opens a PostgreSQL-backed cache table
func NewPostgresBackend(connStr, tableName, key string) (*SQLBackend, error) {
	return openSQLBackend("postgres", connStr, tableName, key)
}

// NewSQLiteBackend opens a SQLite-backed cache table
func NewSQLiteBackend(path, tableName, key string) (*SQLBackend, error) {
	return openSQLBackend("sqlite", path, tableName, key)
}

func openSQLBackend(driver, dsn, tableName, key string) (*SQLBackend, error) {
	if !tableNameRe.MatchString(tableName) {
		return nil, fmt.Errorf("invalid table name %q", tableName)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s connection: %w", driver, err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	b := &SQLBackend{db: db, driver: driver, tableName: tableName, key: key}
	if err := b.ensureTable(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure table: %w", err)
	}
	return b, nil
}

// ensureTable creates the cache table if it doesn't exist
func (b *SQLBackend) ensureTable() error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			cache_key TEXT PRIMARY KEY,
			payload TEXT NOT NULL,
			saved_at BIGINT NOT NULL
		)
	`, b.tableName)

	_, err := b.db.Exec(query)
	return err
}

func (b *SQLBackend) Get(ctx context.Context) ([]byte, error) {
	query := fmt.Sprintf(`SELECT payload FROM %s WHERE cache_key = %s`, b.tableName, b.arg(1))

	var payload string
	err := b.db.QueryRowContext(ctx, query, b.key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("select cache entry: %w", err)
	}
	return []byte(payload), nil
}

func (b *SQLBackend) Put(ctx context.Context, data []byte, _ time.Duration) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (cache_key, payload, saved_at)
		VALUES (%s, %s, %s)
		ON CONFLICT (cache_key) DO UPDATE SET
			payload = EXCLUDED.payload,
			saved_at = EXCLUDED.saved_at
	`, b.tableName, b.arg(1), b.arg(2), b.arg(3))

	if _, err := b.db.ExecContext(ctx, query, b.key, string(data), time.Now().UnixMilli()); err != nil {
		return fmt.Errorf("upsert cache entry: %w", err)
	}
	return nil
}

// arg returns the nth bind placeholder for the driver
func (b *SQLBackend) arg(n int) string {
	if b.driver == "postgres" {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// Close closes the database connection
func (b *SQLBackend) Close() error {
	return b.db.Close()
}
