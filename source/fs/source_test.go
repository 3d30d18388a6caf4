package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/linkjun/jsonuri/source"
)

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("UserHomeDir() error = %v", err)
	}

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"menu.json", "menu.json"},
		{"~", home},
		{"~/menu.json", filepath.Join(home, "menu.json")},
		{"~someone/menu.json", "~someone/menu.json"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := expandTilde(tt.in)
			if err != nil {
				t.Fatalf("expandTilde() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("expandTilde(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "menu.json")
	if err := os.WriteFile(path, []byte(`{"id": [1]}`), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	s := New(path)
	if got := s.Path(); got != path {
		t.Fatalf("Path() = %q, want %q", got, path)
	}
	data, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if string(data) != `{"id": [1]}` {
		t.Fatalf("Load() = %q", data)
	}
}

func TestLoad_NotExist(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "missing.json"))

	_, err := s.Load(context.Background())
	if !errors.Is(err, source.ErrNotExist) {
		t.Fatalf("Load() error = %v, want ErrNotExist", err)
	}
}

func TestSave_WritesAtomicallyAndSetsMode(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "menu.json")

	s := New(target, WithFileMode(0o600), WithDirMode(0o700))

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Save(canceled, func(_ []byte) ([]byte, error) { return nil, nil }); err == nil {
		t.Fatal("Save(canceled) expected error, got nil")
	}

	err := s.Save(context.Background(), func(current []byte) ([]byte, error) {
		if len(current) != 0 {
			t.Errorf("current = %q, want empty for a new file", current)
		}
		return []byte("content"), nil
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	b, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(b) != "content" {
		t.Fatalf("file content = %q, want %q", string(b), "content")
	}

	if runtime.GOOS != "windows" {
		st, err := os.Stat(target)
		if err != nil {
			t.Fatalf("Stat() error = %v", err)
		}
		if got := st.Mode().Perm(); got != 0o600 {
			t.Fatalf("file mode = %o, want %o", got, 0o600)
		}
	}

	entries, err := os.ReadDir(filepath.Dir(target))
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("directory has %d entries, want only the target", len(entries))
	}
}

func TestSave_ReceivesCurrentContents(t *testing.T) {
	target := filepath.Join(t.TempDir(), "menu.json")
	if err := os.WriteFile(target, []byte("old"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	s := New(target)
	err := s.Save(context.Background(), func(current []byte) ([]byte, error) {
		return append(current, "+new"...), nil
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	b, _ := os.ReadFile(target)
	if string(b) != "old+new" {
		t.Fatalf("file content = %q, want %q", b, "old+new")
	}
}

func TestSave_UpdateFuncError(t *testing.T) {
	target := filepath.Join(t.TempDir(), "menu.json")
	if err := os.WriteFile(target, []byte("keep"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	s := New(target)
	wantErr := errors.New("update error")
	err := s.Save(context.Background(), func(_ []byte) ([]byte, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Save() error = %v, want %v", err, wantErr)
	}
	b, _ := os.ReadFile(target)
	if string(b) != "keep" {
		t.Fatalf("file content = %q, want unchanged", b)
	}
}

func TestSave_MkdirAllFailure(t *testing.T) {
	dir := t.TempDir()

	// A file where a directory should be makes MkdirAll fail.
	blocker := filepath.Join(dir, "not-a-dir")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	s := New(filepath.Join(blocker, "menu.json"))
	if err := s.Save(context.Background(), func(_ []byte) ([]byte, error) { return []byte("x"), nil }); err == nil {
		t.Fatal("Save() expected error, got nil")
	}
}

func TestSubscribe(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "menu.json")
	if err := os.WriteFile(path, []byte("v1"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan string, 8)
	s := New(path)
	stop, err := s.Subscribe(ctx, func(data []byte, err error) {
		if err != nil {
			t.Errorf("notify error = %v", err)
			return
		}
		got <- string(data)
	})
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	defer stop(context.Background())

	err = s.Save(ctx, func([]byte) ([]byte, error) { return []byte("v2"), nil })
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	select {
	case data := <-got:
		if data != "v2" {
			t.Fatalf("notified with %q, want %q", data, "v2")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}

	if err := stop(context.Background()); err != nil {
		t.Fatalf("stop() error = %v", err)
	}
}

func TestSubscribe_ContextCancelStopsWatching(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.json")
	if err := os.WriteFile(path, []byte("v1"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	got := make(chan string, 8)
	stop, err := New(path).Subscribe(ctx, func(data []byte, err error) {
		got <- string(data)
	})
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	cancel()

	// Give the watch goroutine time to observe the cancellation.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("v2"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	select {
	case data := <-got:
		t.Fatalf("notified with %q after cancel", data)
	case <-time.After(300 * time.Millisecond):
	}

	if err := stop(context.Background()); err != nil {
		t.Fatalf("stop() after cancel error = %v", err)
	}
}
