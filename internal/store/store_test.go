package store

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mfedotov/brdforge/internal/model"
)

// openDrivers returns one instance of every driver, each backed by a fresh
// temporary location.
func openDrivers(t *testing.T) map[string]Store {
	t.Helper()

	sq, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { sq.Close() })

	return map[string]Store{
		"memory": NewMemory(),
		"disk":   NewDisk(t.TempDir()),
		"sqlite": sq,
	}
}

func TestStore_SetGetDelete(t *testing.T) {
	for name, s := range openDrivers(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := s.Get("project_a"); err != nil || ok {
				t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
			}

			if err := s.Set("project_a", []byte(`{"v":1}`)); err != nil {
				t.Fatalf("set: %v", err)
			}
			val, ok, err := s.Get("project_a")
			if err != nil || !ok {
				t.Fatalf("get after set: ok=%v err=%v", ok, err)
			}
			if string(val) != `{"v":1}` {
				t.Errorf("got %q", val)
			}

			// Overwrite replaces.
			if err := s.Set("project_a", []byte(`{"v":2}`)); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			val, _, _ = s.Get("project_a")
			if string(val) != `{"v":2}` {
				t.Errorf("overwrite not applied, got %q", val)
			}

			if err := s.Delete("project_a"); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if _, ok, _ := s.Get("project_a"); ok {
				t.Error("value survived delete")
			}

			// Deleting again is not an error.
			if err := s.Delete("project_a"); err != nil {
				t.Errorf("second delete: %v", err)
			}
		})
	}
}

func TestStore_KeysSortedAndFiltered(t *testing.T) {
	for name, s := range openDrivers(t) {
		t.Run(name, func(t *testing.T) {
			for _, key := range []string{"project_c", "project_a", "other_x", "project_b"} {
				if err := s.Set(key, []byte("v")); err != nil {
					t.Fatalf("set %s: %v", key, err)
				}
			}

			keys, err := s.Keys("project_")
			if err != nil {
				t.Fatalf("keys: %v", err)
			}
			want := []string{"project_a", "project_b", "project_c"}
			if !reflect.DeepEqual(keys, want) {
				t.Errorf("got %v, want %v", keys, want)
			}
		})
	}
}

func TestStore_KeysEmpty(t *testing.T) {
	for name, s := range openDrivers(t) {
		t.Run(name, func(t *testing.T) {
			keys, err := s.Keys("project_")
			if err != nil {
				t.Fatalf("keys: %v", err)
			}
			if len(keys) != 0 {
				t.Errorf("expected no keys, got %v", keys)
			}
		})
	}
}

func TestDisk_Reopen(t *testing.T) {
	dir := t.TempDir()

	first := NewDisk(dir)
	if err := first.Set("project_a", []byte("persisted")); err != nil {
		t.Fatalf("set: %v", err)
	}

	second := NewDisk(dir)
	val, ok, err := second.Get("project_a")
	if err != nil || !ok {
		t.Fatalf("get after reopen: ok=%v err=%v", ok, err)
	}
	if string(val) != "persisted" {
		t.Errorf("got %q", val)
	}
}

func TestSQLite_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	first, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := first.Set("project_a", []byte("persisted")); err != nil {
		t.Fatalf("set: %v", err)
	}
	first.Close()

	second, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	val, ok, err := second.Get("project_a")
	if err != nil || !ok {
		t.Fatalf("get after reopen: ok=%v err=%v", ok, err)
	}
	if string(val) != "persisted" {
		t.Errorf("got %q", val)
	}
}

func TestOpen_DriverSelection(t *testing.T) {
	s, err := Open(model.StoreConfig{Driver: model.DriverMemory})
	if err != nil {
		t.Fatalf("open memory: %v", err)
	}
	if _, ok := s.(*Memory); !ok {
		t.Errorf("expected *Memory, got %T", s)
	}

	if _, err := Open(model.StoreConfig{Driver: model.DriverDisk}); err == nil {
		t.Error("disk driver without path must fail")
	}
	if _, err := Open(model.StoreConfig{Driver: "bolt"}); err == nil {
		t.Error("unknown driver must fail")
	}
}
