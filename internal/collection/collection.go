package collection

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samvad-hq/blockpalettes/pkg/blockpalettes"
)

// Package collection keeps palettes the user saved from the CLI. The client library never reads it.

// ErrDisabled is returned when saving into a collection that is switched off.
var ErrDisabled = errors.New("palette collection is disabled")

// Entry is a saved palette and when it was saved.
type Entry struct {
	Palette blockpalettes.PaletteDetails `json:"palette" yaml:"palette"`
	SavedAt time.Time                    `json:"saved_at" yaml:"saved_at"`
}

// Store persists saved palettes keyed by palette id.
type Store interface {
	Close() error
	Save(p blockpalettes.PaletteDetails) (Entry, error)
	Get(id uint64) (Entry, bool, error)
	List() ([]Entry, error)
	Remove(id uint64) (bool, error)
}

// NewStore creates the configured storage backend.
func NewStore(typ, path string) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt collection requires a path")
		}
		return openBolt(path, time.Now)
	default:
		return nil, fmt.Errorf("unsupported collection type %q", typ)
	}
}

type noopStore struct{}

func (noopStore) Close() error { return nil }
func (noopStore) Save(blockpalettes.PaletteDetails) (Entry, error) {
	return Entry{}, ErrDisabled
}
func (noopStore) Get(uint64) (Entry, bool, error) { return Entry{}, false, nil }
func (noopStore) List() ([]Entry, error)          { return nil, nil }
func (noopStore) Remove(uint64) (bool, error)     { return false, nil }
