// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package cache

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/moodreel/internal/logging"
)

const badgerKeyPrefix = "catalog:"

// BadgerStore is a Store backed by BadgerDB entry TTLs.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadger opens a BadgerStore in dir, or fully in memory when dir is "".
func OpenBadger(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger cache: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// Get returns the stored bytes; Badger hides expired entries itself.
func (s *BadgerStore) Get(key string) ([]byte, bool) {
	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(badgerKeyPrefix + key))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			logging.Warn().Err(err).Str("key", key).Msg("Badger cache read failed")
		}
		return nil, false
	}
	return out, true
}

// Set stores value with a Badger TTL. Write failures are logged and dropped;
// a cache miss is always an acceptable outcome.
func (s *BadgerStore) Set(key string, value []byte, ttl time.Duration) {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry([]byte(badgerKeyPrefix+key), value).WithTTL(ttl))
	})
	if err != nil {
		logging.Warn().Err(err).Str("key", key).Msg("Badger cache write failed")
	}
}

// CollectGarbage rewrites value log files until Badger reports nothing left
// to reclaim. In-memory stores have no value log and return nil.
func (s *BadgerStore) CollectGarbage(discardRatio float64) error {
	for {
		err := s.db.RunValueLogGC(discardRatio)
		switch {
		case err == nil:
			continue
		case errors.Is(err, badger.ErrNoRewrite), errors.Is(err, badger.ErrGCInMemoryMode):
			return nil
		default:
			return fmt.Errorf("badger value log gc: %w", err)
		}
	}
}

// Close flushes and closes the database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
