// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package kvstore is a small key-value store on BadgerDB shared by the
// artifact cache and the poster cache. Keys are namespaced by prefix so both
// caches can live in one database directory.
package kvstore

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// ErrNotFound is returned by Get when a key is absent or expired.
var ErrNotFound = errors.New("kvstore: key not found")

// Key prefixes for the caches sharing the database.
const (
	PrefixArtifact = "artifact:"
	PrefixPoster   = "poster:"
)

// discardRatio is passed to badger's value log GC.
const discardRatio = 0.5

// Store wraps a badger.DB.
type Store struct {
	db       *badger.DB
	inMemory bool
}

// Open opens a store at path, or an in-memory store when path is empty.
func Open(path string) (*Store, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db at %q: %w", path, err)
	}
	return &Store{db: db, inMemory: path == ""}, nil
}

// Get returns a copy of the value stored under key.
func (s *Store) Get(key string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get %s: %w", key, err)
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Set stores value under key. A ttl of zero keeps the entry until deleted.
func (s *Store) Set(key string, value []byte, ttl time.Duration) error {
	return s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), value)
		if ttl > 0 {
			entry = entry.WithTTL(ttl)
		}
		if err := txn.SetEntry(entry); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
		return nil
	})
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

// CountPrefix returns the number of live keys under prefix.
func (s *Store) CountPrefix(prefix string) (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// RunGC runs one round of value log garbage collection. It reports whether
// a log file was rewritten.
func (s *Store) RunGC() (bool, error) {
	if s.inMemory {
		return false, nil
	}
	err := s.db.RunValueLogGC(discardRatio)
	if errors.Is(err, badger.ErrNoRewrite) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("value log gc: %w", err)
	}
	return true, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
