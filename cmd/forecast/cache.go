package forecast

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const cacheSchema = `
CREATE TABLE IF NOT EXISTS forecasts (
	source     TEXT    NOT NULL,
	date       TEXT    NOT NULL,
	fetched_at INTEGER NOT NULL,
	payload    TEXT    NOT NULL,
	PRIMARY KEY (source, date)
);`

// Cache keeps fetched payloads in SQLite so repeated renders of the same day
// stay within the API quota.
type Cache struct {
	db     *sqlx.DB
	next   Service
	source string
	ttl    time.Duration
	now    func() time.Time
}

var _ Service = (*Cache)(nil)

// CachedForecast is one stored payload.
type CachedForecast struct {
	Source    string `db:"source"`
	Date      string `db:"date"`
	FetchedAt int64  `db:"fetched_at"`
	Payload   string `db:"payload"`
}

// OpenCache opens (creating if needed) the cache database at path. source
// keys the entries so several locations can share one file.
func OpenCache(path, source string, ttl time.Duration, next Service) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}
	if _, err := db.Exec(cacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating forecasts table: %w", err)
	}
	return &Cache{db: db, next: next, source: source, ttl: ttl, now: time.Now}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// Fetch serves a stored payload younger than the TTL, otherwise fetches from
// the wrapped service and stores the result.
func (c *Cache) Fetch(ctx context.Context, date time.Time) (*Payload, error) {
	day := date.Format(DateLayout)

	var row CachedForecast
	err := c.db.GetContext(ctx, &row,
		`SELECT source, date, fetched_at, payload FROM forecasts WHERE source = ? AND date = ?`,
		c.source, day)
	switch {
	case err == nil:
		if c.now().Sub(time.Unix(row.FetchedAt, 0)) < c.ttl {
			var p Payload
			if err := json.Unmarshal([]byte(row.Payload), &p); err == nil {
				return &p, nil
			}
		}
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("reading cache: %w", err)
	}

	p, err := c.next.Fetch(ctx, date)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	_, err = c.db.NamedExecContext(ctx, `
		INSERT INTO forecasts (source, date, fetched_at, payload)
		VALUES (:source, :date, :fetched_at, :payload)
		ON CONFLICT (source, date) DO UPDATE SET fetched_at = excluded.fetched_at, payload = excluded.payload`,
		CachedForecast{Source: c.source, Date: day, FetchedAt: c.now().Unix(), Payload: string(b)})
	if err != nil {
		return nil, fmt.Errorf("writing cache: %w", err)
	}
	return p, nil
}

// Entries lists the cached days of this source, newest first.
func (c *Cache) Entries(ctx context.Context) ([]CachedForecast, error) {
	var rows []CachedForecast
	err := c.db.SelectContext(ctx, &rows,
		`SELECT source, date, fetched_at, payload FROM forecasts WHERE source = ? ORDER BY date DESC`, c.source)
	if err != nil {
		return nil, fmt.Errorf("listing cache: %w", err)
	}
	return rows, nil
}
