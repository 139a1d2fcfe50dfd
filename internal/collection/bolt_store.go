package collection

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/samvad-hq/blockpalettes/pkg/blockpalettes"
)

const (
	paletteBucket = "palettes"
	idKeyBytes    = 8
)

// boltStore implements a Store backed by BoltDB. Keys are big-endian palette ids so
// cursor order is id order.
type boltStore struct {
	db  *bolt.DB
	now func() time.Time
}

// openBolt initializes a BoltDB-backed Store.
func openBolt(path string, now func() time.Time) (*boltStore, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create collection directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(paletteBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	if now == nil {
		now = time.Now
	}
	return &boltStore{db: db, now: now}, nil
}

// Close closes the BoltDB store.
func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// Save stores p, replacing any earlier entry for the same id.
func (b *boltStore) Save(p blockpalettes.PaletteDetails) (Entry, error) {
	if p.ID == 0 {
		return Entry{}, fmt.Errorf("palette id must be positive")
	}

	entry := Entry{Palette: p, SavedAt: b.now().UTC()}
	value, err := json.Marshal(entry)
	if err != nil {
		return Entry{}, fmt.Errorf("encode palette %d: %w", p.ID, err)
	}

	err = b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(paletteBucket))
		if bucket == nil {
			return fmt.Errorf("palette bucket missing")
		}
		return bucket.Put(encodeID(p.ID), value)
	})
	if err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// Get returns the saved entry for id, if any.
func (b *boltStore) Get(id uint64) (Entry, bool, error) {
	var (
		entry Entry
		found bool
	)
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(paletteBucket))
		if bucket == nil {
			return fmt.Errorf("palette bucket missing")
		}
		value := bucket.Get(encodeID(id))
		if value == nil {
			return nil
		}
		if err := json.Unmarshal(value, &entry); err != nil {
			return fmt.Errorf("decode palette %d: %w", id, err)
		}
		found = true
		return nil
	})
	return entry, found, err
}

// List returns every saved entry ordered by palette id.
func (b *boltStore) List() ([]Entry, error) {
	var entries []Entry
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(paletteBucket))
		if bucket == nil {
			return fmt.Errorf("palette bucket missing")
		}
		return bucket.ForEach(func(k, v []byte) error {
			var entry Entry
			if err := json.Unmarshal(v, &entry); err != nil {
				return fmt.Errorf("decode palette %d: %w", decodeID(k), err)
			}
			entries = append(entries, entry)
			return nil
		})
	})
	return entries, err
}

// Remove deletes the entry for id and reports whether one existed.
func (b *boltStore) Remove(id uint64) (bool, error) {
	var existed bool
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(paletteBucket))
		if bucket == nil {
			return fmt.Errorf("palette bucket missing")
		}
		key := encodeID(id)
		if bucket.Get(key) == nil {
			return nil
		}
		existed = true
		return bucket.Delete(key)
	})
	return existed, err
}

func encodeID(id uint64) []byte {
	buf := make([]byte, idKeyBytes)
	binary.BigEndian.PutUint64(buf, id)
	return buf
}

func decodeID(key []byte) uint64 {
	if len(key) != idKeyBytes {
		return 0
	}
	return binary.BigEndian.Uint64(key)
}
