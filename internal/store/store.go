// Package store persists per-server price caches in BoltDB. Persistence is
// whole-map per server: a sync batch loads everything for its server up
// front and writes everything back once when the batch ends.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/mogtools/ahsync/internal/domain"
)

// Bucket names
var (
	bucketMedians    = []byte("medians")
	bucketLastSales  = []byte("lastsales")
	bucketFetchTimes = []byte("fetchtimes")
)

// PriceStore implements domain.PriceStore using BoltDB. Keys are
// "{server}:{itemID}" so each server's price universe stays independent.
type PriceStore struct {
	db *bolt.DB
}

// Open opens (creating if needed) the price cache database under dir.
func Open(dir string) (*PriceStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "prices.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketMedians, bucketLastSales, bucketFetchTimes} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &PriceStore{db: db}, nil
}

func (s *PriceStore) Close() error {
	return s.db.Close()
}

// === Generic helpers ===

func itemKey(server string, itemID int) []byte {
	return []byte(server + ":" + strconv.Itoa(itemID))
}

// loadPrefix walks one server's entries in a bucket. Unparseable or
// non-positive item ids are skipped, not errors.
func (s *PriceStore) loadPrefix(bucket []byte, server string, visit func(itemID int, value string)) error {
	prefix := server + ":"
	return s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucket).Cursor()
		for k, v := c.Seek([]byte(prefix)); k != nil && strings.HasPrefix(string(k), prefix); k, v = c.Next() {
			itemID, err := strconv.Atoi(string(k)[len(prefix):])
			if err != nil || itemID <= 0 {
				continue
			}
			visit(itemID, string(v))
		}
		return nil
	})
}

// savePrefix replaces one server's entries in a bucket wholesale.
func (s *PriceStore) savePrefix(bucket []byte, server string, entries map[int]string) error {
	prefix := []byte(server + ":")
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)

		c := b.Cursor()
		for k, _ := c.Seek(prefix); k != nil && strings.HasPrefix(string(k), string(prefix)); k, _ = c.Next() {
			if err := b.Delete(k); err != nil {
				return err
			}
		}

		for itemID, value := range entries {
			if itemID <= 0 {
				continue
			}
			if err := b.Put(itemKey(server, itemID), []byte(value)); err != nil {
				return err
			}
		}
		return nil
	})
}

// === Medians ===

// LoadMedians returns the cached median display strings for server. The
// legacy "0" sentinel (and an empty value) normalizes to the "N/A" marker on
// the way out, so callers never have to second-guess a zero.
func (s *PriceStore) LoadMedians(server string) (map[int]string, error) {
	entries := make(map[int]string)
	err := s.loadPrefix(bucketMedians, server, func(itemID int, value string) {
		entries[itemID] = normalizeDisplay(value)
	})
	return entries, err
}

func (s *PriceStore) SaveMedians(server string, entries map[int]string) error {
	return s.savePrefix(bucketMedians, server, entries)
}

// === Last sales ===

func (s *PriceStore) LoadLastSales(server string) (map[int]string, error) {
	entries := make(map[int]string)
	err := s.loadPrefix(bucketLastSales, server, func(itemID int, value string) {
		entries[itemID] = normalizeDisplay(value)
	})
	return entries, err
}

func (s *PriceStore) SaveLastSales(server string, entries map[int]string) error {
	return s.savePrefix(bucketLastSales, server, entries)
}

// === Fetch times ===

// LoadFetchTimes returns the per-item last-fetch timestamps for server.
// Entries with a non-positive timestamp are dropped.
func (s *PriceStore) LoadFetchTimes(server string) (map[int]time.Time, error) {
	entries := make(map[int]time.Time)
	err := s.loadPrefix(bucketFetchTimes, server, func(itemID int, value string) {
		ts, err := strconv.ParseInt(value, 10, 64)
		if err != nil || ts <= 0 {
			return
		}
		entries[itemID] = time.Unix(ts, 0).UTC()
	})
	return entries, err
}

func (s *PriceStore) SaveFetchTimes(server string, entries map[int]time.Time) error {
	encoded := make(map[int]string, len(entries))
	for itemID, t := range entries {
		encoded[itemID] = strconv.FormatInt(t.Unix(), 10)
	}
	return s.savePrefix(bucketFetchTimes, server, encoded)
}

// InvalidateServer wipes everything cached for one server.
func (s *PriceStore) InvalidateServer(server string) error {
	for _, bucket := range [][]byte{bucketMedians, bucketLastSales, bucketFetchTimes} {
		if err := s.savePrefix(bucket, server, nil); err != nil {
			return err
		}
	}
	return nil
}

func normalizeDisplay(value string) string {
	if value == "" || value == "0" {
		return domain.PriceUnavailable
	}
	return value
}
