// Package cache memoizes the tree's symbolic operations — Differentiate,
// Simplify, and their string forms — behind a SQLite-backed store, keyed by
// a fast non-cryptographic hash of the operation and its inputs. This is
// purely a performance layer on top of pkg/ast: the same inputs always
// produce the same outputs (§5, "pure functions of the input tree"), so
// caching changes nothing about observable behavior.
package cache

import (
	"database/sql"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/zeebo/xxh3"
	"golang.org/x/sync/singleflight"
)

// Cache wraps a SQLite connection holding memoized operation results, plus
// an in-flight request collapser so concurrent callers computing the same
// key share one computation (§5 — concurrent reads of the tree are safe,
// but repeating the same expensive Simplify/Differentiate pass is wasted
// work).
type Cache struct {
	db    *sql.DB
	group singleflight.Group
}

func dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	d := filepath.Join(home, ".cache", "symcalc")
	if err := os.MkdirAll(d, 0o755); err != nil {
		return "", fmt.Errorf("mkdir cache dir: %w", err)
	}
	return d, nil
}

// Open opens or creates the default on-disk memoization database.
func Open() (*Cache, error) {
	d, err := dir()
	if err != nil {
		return nil, err
	}
	return OpenPath(filepath.Join(d, "memo.db"))
}

// OpenPath opens a SQLite database at the given path.
func OpenPath(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	c := &Cache{db: db}
	if err := c.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return c, nil
}

// OpenMemory opens an in-memory database, for tests and short-lived processes.
func OpenMemory() (*Cache, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open memory db: %w", err)
	}
	c := &Cache{db: db}
	if err := c.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return c, nil
}

func (c *Cache) initSchema() error {
	_, err := c.db.Exec(`
	CREATE TABLE IF NOT EXISTS memo (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		created_at TEXT NOT NULL
	);`)
	return err
}

// Close closes the underlying database connection.
func (c *Cache) Close() error { return c.db.Close() }

// Key hashes an operation name and its expression-string inputs into a
// stable cache key. xxh3 is non-cryptographic but fast enough that hashing
// never dominates over the symbolic computation it's meant to avoid.
func Key(operation string, parts ...string) string {
	h := xxh3.New()
	h.Write([]byte(operation))
	for _, p := range parts {
		h.Write([]byte{0})
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// GetOrCompute returns the memoized value for key, computing and storing it
// via compute on a miss. Concurrent callers racing on the same key collapse
// onto a single compute call via singleflight.
func (c *Cache) GetOrCompute(key string, compute func() (string, error)) (string, error) {
	if v, ok := c.lookup(key); ok {
		return v, nil
	}
	v, err, _ := c.group.Do(key, func() (any, error) {
		if v, ok := c.lookup(key); ok {
			return v, nil
		}
		computed, err := compute()
		if err != nil {
			return "", err
		}
		if err := c.store(key, computed); err != nil {
			slog.Warn("cache.store.failed", "key", key, "err", err)
		}
		return computed, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *Cache) lookup(key string) (string, bool) {
	var v string
	err := c.db.QueryRow(`SELECT value FROM memo WHERE key = ?`, key).Scan(&v)
	if err != nil {
		return "", false
	}
	return v, true
}

func (c *Cache) store(key, value string) error {
	_, err := c.db.Exec(
		`INSERT INTO memo (key, value, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}
