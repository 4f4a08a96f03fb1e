// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package cache provides the TTL-bound disk cache shared by every
// SourceClient. Entries are keyed by (source_name, query?, path) and
// staleness is governed by a per-entry TTL, backed by an embedded
// key-value store rather than a hand-rolled flat-file-plus-mtime scheme.
package cache

import (
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"
)

// Cache is a TTL-bound key-value cache for raw SourceClient payloads.
type Cache struct {
	db *badger.DB
}

// Open opens (or creates) a Badger-backed cache rooted at dir. An empty dir
// opens an in-memory cache, useful for tests and for callers that disable
// caching entirely.
func Open(dir string) (c *Cache, err error) {
	opts := badger.DefaultOptions(dir)
	opts = opts.WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("could not open cache: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Key builds the cache key for (sourceName, query, path) as specified:
// query and path are optional qualifiers beyond the source name.
func Key(sourceName, query, path string) string {
	return sourceName + "\x00" + query + "\x00" + path
}

// Get returns the cached bytes for key if present and not expired. Badger
// enforces TTL internally (entries set via Put expire on their own), so a
// miss here always means "fetch fresh", matching the mtime+ttl contract.
func (c *Cache) Get(key string) (value []byte, ok bool) {
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, false
	}
	return value, true
}

// Put stores value under key with the given TTL. Writes are atomic at the
// Badger transaction level, the equivalent guarantee the write-temp-then-
// rename pattern gives a flat-file cache.
func (c *Cache) Put(key string, value []byte, ttl time.Duration) error {
	return c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(key), value).WithTTL(ttl)
		return txn.SetEntry(e)
	})
}
