package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/roach88/glyphos/internal/glyph"
)

func TestNew_CreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "persistence")

	s, err := New(root)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	info, err := os.Stat(s.Root())
	if err != nil {
		t.Fatalf("root was not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("root is not a directory")
	}
}

func TestNew_Idempotent(t *testing.T) {
	root := filepath.Join(t.TempDir(), "persistence")

	for i := 0; i < 3; i++ {
		if _, err := New(root); err != nil {
			t.Fatalf("New() iteration %d failed: %v", i, err)
		}
	}
}

func TestNew_EmptyRoot(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Error("expected error for empty root, got nil")
	}
}

func TestPath_ShardLayout(t *testing.T) {
	root := t.TempDir()
	s, err := New(root)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	id := glyph.DeriveID("shard me")
	path, err := s.Path(id)
	if err != nil {
		t.Fatalf("Path() failed: %v", err)
	}

	want := filepath.Join(root, id[0:2], id[2:4], "glyph_"+id+".json")
	if path != want {
		t.Errorf("Path() = %q, want %q", path, want)
	}
}

func TestPath_RejectsMalformedID(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	for _, id := range []string{"", "short", "../../../../etc/passwd", glyph.DeriveID("x") + "0"} {
		_, err := s.Path(id)
		if err == nil {
			t.Errorf("Path(%q) succeeded, want KeyError", id)
			continue
		}
		var keyErr *KeyError
		if !errors.As(err, &keyErr) {
			t.Errorf("Path(%q) error = %v, want *KeyError", id, err)
		}
	}
}

func TestWriteRead_RoundTrip(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	id := glyph.DeriveID("round trip")
	payload := []byte(`{"id":"x","content":"round trip","metadata":{}}`)

	if err := s.Write(id, payload); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	got, err := s.Read(id)
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("Read() = %q, want %q", got, payload)
	}
}

func TestWrite_OverwriteReplacesWhole(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	id := glyph.DeriveID("overwrite")
	if err := s.Write(id, []byte("a much longer first version of the record")); err != nil {
		t.Fatalf("first Write() failed: %v", err)
	}
	if err := s.Write(id, []byte("v2")); err != nil {
		t.Fatalf("second Write() failed: %v", err)
	}

	got, err := s.Read(id)
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if string(got) != "v2" {
		t.Errorf("Read() after overwrite = %q, want %q", got, "v2")
	}
}

func TestRead_NotFound(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	_, err = s.Read(glyph.DeriveID("never written"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Read() error = %v, want ErrNotFound", err)
	}
}

func TestExists(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	id := glyph.DeriveID("exists check")
	ok, err := s.Exists(id)
	if err != nil {
		t.Fatalf("Exists() failed: %v", err)
	}
	if ok {
		t.Error("Exists() = true before write")
	}

	if err := s.Write(id, []byte("x")); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	ok, err = s.Exists(id)
	if err != nil {
		t.Fatalf("Exists() failed: %v", err)
	}
	if !ok {
		t.Error("Exists() = false after write")
	}
}

func TestRead_SurvivesProcessRestartShape(t *testing.T) {
	// A second store over the same root must see the first store's writes.
	root := t.TempDir()

	s1, err := New(root)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	id := glyph.DeriveID("restart")
	if err := s1.Write(id, []byte("durable")); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	s2, err := New(root)
	if err != nil {
		t.Fatalf("second New() failed: %v", err)
	}
	got, err := s2.Read(id)
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if string(got) != "durable" {
		t.Errorf("Read() = %q, want %q", got, "durable")
	}
}
