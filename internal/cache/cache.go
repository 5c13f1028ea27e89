// Package cache stores computed recommendation results in Badger with a TTL,
// keyed per user so a ranking or rating change can drop a user's entries at once.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

const keyPrefix = "rec:"

// Options configures the cache.
type Options struct {
	Path     string        // Directory for the Badger files; ignored when InMemory
	InMemory bool          // Keep everything in RAM (tests)
	TTL      time.Duration // Entry lifetime; <= 0 disables writes
	Logger   *slog.Logger
}

// Cache is a TTL key-value cache for recommendation results.
type Cache struct {
	db     *badger.DB
	ttl    time.Duration
	logger *slog.Logger
}

// Open opens or creates the cache.
func Open(opts Options) (*Cache, error) {
	bopts := badger.DefaultOptions(opts.Path)
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	}
	bopts.Logger = nil
	bopts.CompactL0OnClose = true

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open badger cache: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger.Info("Recommendation cache opened", "path", opts.Path, "in_memory", opts.InMemory, "ttl", opts.TTL)

	return &Cache{db: db, ttl: opts.TTL, logger: logger}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Enabled reports whether entries are written at all.
func (c *Cache) Enabled() bool {
	return c.ttl > 0
}

// Key builds a user-scoped key from a digest of parts. Parts are JSON-encoded,
// so equal inputs always map to the same key.
func Key(userID string, parts ...any) (string, error) {
	h := sha256.New()
	for _, p := range parts {
		data, err := json.Marshal(p)
		if err != nil {
			return "", fmt.Errorf("encode key part: %w", err)
		}
		h.Write(data)
		h.Write([]byte{0})
	}
	return userPrefix(userID) + hex.EncodeToString(h.Sum(nil)), nil
}

// userPrefix hex-encodes the user ID so no ID can be a prefix of another's segment.
func userPrefix(userID string) string {
	return keyPrefix + hex.EncodeToString([]byte(userID)) + ":"
}

// Get decodes the entry at key into dest. It reports false on a miss or an
// expired entry.
func (c *Cache) Get(key string, dest any) (bool, error) {
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, dest)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read cache entry: %w", err)
	}
	return true, nil
}

// Set stores value at key for the configured TTL. A disabled cache is a no-op.
func (c *Cache) Set(key string, value any) error {
	if !c.Enabled() {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	return c.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry([]byte(key), data).WithTTL(c.ttl))
	})
}

// InvalidateUser drops every entry belonging to userID and returns how many were removed.
func (c *Cache) InvalidateUser(userID string) (int, error) {
	prefix := []byte(userPrefix(userID))

	var keys [][]byte
	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("scan user entries: %w", err)
	}
	if len(keys) == 0 {
		return 0, nil
	}

	wb := c.db.NewWriteBatch()
	defer wb.Cancel()
	for _, k := range keys {
		if err := wb.Delete(k); err != nil {
			return 0, fmt.Errorf("delete cache entry: %w", err)
		}
	}
	if err := wb.Flush(); err != nil {
		return 0, fmt.Errorf("flush cache deletes: %w", err)
	}

	c.logger.Debug("Invalidated cached recommendations", "user_id", userID, "entries", len(keys))
	return len(keys), nil
}

// RunGC reclaims value-log space until there is nothing left to collect.
func (c *Cache) RunGC() {
	for {
		if err := c.db.RunValueLogGC(0.5); err != nil {
			return
		}
	}
}
