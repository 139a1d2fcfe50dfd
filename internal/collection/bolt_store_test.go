package collection

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/samvad-hq/blockpalettes/pkg/blockpalettes"
)

func samplePalette(id uint64) blockpalettes.PaletteDetails {
	return blockpalettes.PaletteDetails{
		Palette: blockpalettes.Palette{
			ID:       id,
			UserID:   3,
			Date:     "2024-05-06 07:08:09",
			Likes:    12,
			Blocks:   []string{"stone", "dirt", "oak_log", "sand", "gravel", "glass"},
			Featured: true,
			TimeAgo:  "3 days ago",
		},
		Username: "builder",
	}
}

func TestBoltStoreSaveListRemove(t *testing.T) {
	fixed := time.Date(2025, time.March, 4, 5, 6, 7, 0, time.UTC)
	store, err := openBolt(filepath.Join(t.TempDir(), "nested", "collection.db"), func() time.Time { return fixed })
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	defer store.Close()

	for _, id := range []uint64{300, 7, 42} {
		if _, err := store.Save(samplePalette(id)); err != nil {
			t.Fatalf("Save(%d): %v", id, err)
		}
	}

	entries, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var ids []uint64
	for _, e := range entries {
		ids = append(ids, e.Palette.ID)
	}
	if diff := cmp.Diff([]uint64{7, 42, 300}, ids); diff != "" {
		t.Fatalf("List order mismatch (-want +got):\n%s", diff)
	}

	got, found, err := store.Get(42)
	if err != nil || !found {
		t.Fatalf("Get(42) found=%v err=%v", found, err)
	}
	want := Entry{Palette: samplePalette(42), SavedAt: fixed}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Get mismatch (-want +got):\n%s", diff)
	}

	removed, err := store.Remove(42)
	if err != nil || !removed {
		t.Fatalf("Remove(42) removed=%v err=%v", removed, err)
	}
	removed, err = store.Remove(42)
	if err != nil || removed {
		t.Fatalf("second Remove(42) removed=%v err=%v", removed, err)
	}
	if _, found, _ := store.Get(42); found {
		t.Fatalf("expected palette 42 to be gone")
	}
}

func TestBoltStoreRejectsZeroID(t *testing.T) {
	store, err := openBolt(filepath.Join(t.TempDir(), "collection.db"), nil)
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	defer store.Close()

	if _, err := store.Save(blockpalettes.PaletteDetails{}); err == nil {
		t.Fatalf("expected error for palette without id")
	}
}

func TestNewStoreSupportsNoop(t *testing.T) {
	store, err := NewStore("none", "")
	if err != nil {
		t.Fatalf("NewStore none: %v", err)
	}
	if _, err := store.Save(samplePalette(1)); !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
	entries, err := store.List()
	if err != nil || len(entries) != 0 {
		t.Fatalf("noop List = %v, %v", entries, err)
	}
}

func TestNewStoreRejectsUnknownType(t *testing.T) {
	if _, err := NewStore("redis", "x"); err == nil {
		t.Fatalf("expected error for unknown collection type")
	}
	if _, err := NewStore("bbolt", " "); err == nil {
		t.Fatalf("expected error for bbolt without path")
	}
}
