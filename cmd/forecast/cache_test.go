package forecast

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

type countingService struct {
	calls   int
	payload *Payload
	err     error
}

func (s *countingService) Fetch(ctx context.Context, date time.Time) (*Payload, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.payload, nil
}

func openTestCache(t *testing.T, next Service) *Cache {
	t.Helper()
	c, err := OpenCache(filepath.Join(t.TempDir(), "cache", "forecast.db"), "willyweather:6833", time.Hour, next)
	if err != nil {
		t.Fatalf("OpenCache() error = %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCacheServesFreshEntries(t *testing.T) {
	stub := &countingService{payload: loadFixture(t)}
	c := openTestCache(t, stub)
	ctx := context.Background()

	first, err := c.Fetch(ctx, christmas)
	if err != nil {
		t.Fatalf("first Fetch() error = %v", err)
	}
	second, err := c.Fetch(ctx, christmas)
	if err != nil {
		t.Fatalf("second Fetch() error = %v", err)
	}
	if stub.calls != 1 {
		t.Errorf("upstream calls = %d, want 1", stub.calls)
	}
	if second.Location.Name != first.Location.Name ||
		len(second.Forecasts.Wind.Days[0].Entries) != len(first.Forecasts.Wind.Days[0].Entries) {
		t.Error("cached payload differs from the fetched one")
	}

	// Another day misses.
	if _, err := c.Fetch(ctx, christmas.AddDate(0, 0, 1)); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if stub.calls != 2 {
		t.Errorf("upstream calls = %d, want 2", stub.calls)
	}

	entries, err := c.Entries(ctx)
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if len(entries) != 2 || entries[0].Date != "2022-12-26" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestCacheRefetchesStaleEntries(t *testing.T) {
	stub := &countingService{payload: loadFixture(t)}
	c := openTestCache(t, stub)
	ctx := context.Background()

	if _, err := c.Fetch(ctx, christmas); err != nil {
		t.Fatal(err)
	}
	c.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := c.Fetch(ctx, christmas); err != nil {
		t.Fatal(err)
	}
	if stub.calls != 2 {
		t.Errorf("upstream calls = %d, want 2", stub.calls)
	}

	entries, err := c.Entries(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("entries = %d, want the refreshed row only", len(entries))
	}
}

func TestCacheDoesNotStoreFailures(t *testing.T) {
	boom := errors.New("quota exceeded")
	stub := &countingService{err: boom}
	c := openTestCache(t, stub)

	if _, err := c.Fetch(context.Background(), christmas); !errors.Is(err, boom) {
		t.Fatalf("Fetch() error = %v, want %v", err, boom)
	}
	entries, err := c.Entries(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("entries = %d after a failed fetch", len(entries))
	}
}
