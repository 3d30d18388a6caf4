// Package fs provides a file system document source.
//
// Saves hold an exclusive lock on the target while the new contents are
// written to a temporary file and renamed into place. Subscribe watches the
// containing directory with fsnotify, so atomic replacements by other
// editors are seen too.
package fs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/linkjun/jsonuri/source"
)

// Default permission modes.
const (
	DefaultFileMode = 0644
	DefaultDirMode  = 0755
)

// Source loads and saves raw document bytes from/to a file.
type Source struct {
	path     string
	fileMode os.FileMode
	dirMode  os.FileMode
}

// Ensure Source implements the source.Watchable interface.
var _ source.Watchable = (*Source)(nil)

// Option configures a Source.
type Option func(*Source)

// WithFileMode sets the file permission mode used when saving.
// Default is 0644.
func WithFileMode(mode os.FileMode) Option {
	return func(s *Source) {
		s.fileMode = mode
	}
}

// WithDirMode sets the directory permission mode used when creating parent directories.
// Default is 0755.
func WithDirMode(mode os.FileMode) Option {
	return func(s *Source) {
		s.dirMode = mode
	}
}

// New creates a source that reads from and writes to a file.
// A leading "~/" is expanded to the user's home directory.
//
// Example:
//
//	src := fs.New("menu.json")
//	src := fs.New("~/data/menu.yaml", fs.WithFileMode(0600))
func New(path string, opts ...Option) *Source {
	s := &Source{
		path:     path,
		fileMode: DefaultFileMode,
		dirMode:  DefaultDirMode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the path as given to New.
func (s *Source) Path() string {
	return s.path
}

// Load implements the source.Source interface. A missing file yields an
// error wrapping source.ErrNotExist.
func (s *Source) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := expandTilde(s.path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q", source.ErrNotExist, s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", s.path, err)
	}
	return data, nil
}

// Save implements the source.Source interface.
//
// The target is created if missing, along with its parent directories, and
// locked for the duration of the update. updateFunc receives the contents
// read through the locked handle. If the filesystem doesn't support
// locking, the save proceeds without it.
func (s *Source) Save(ctx context.Context, updateFunc source.UpdateFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target, err := expandTilde(s.path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, s.dirMode); err != nil {
		return fmt.Errorf("failed to create directory %q: %w", dir, err)
	}

	f, err := os.OpenFile(target, os.O_RDWR|os.O_CREATE, s.fileMode)
	if err != nil {
		return fmt.Errorf("failed to open file %q for locking: %w", target, err)
	}
	defer f.Close()

	release, err := fileLock(f.Fd())
	if err != nil {
		return fmt.Errorf("failed to acquire lock on %q: %w", target, err)
	}
	defer release()

	var current []byte
	stat, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat file %q: %w", target, err)
	}
	if stat.Size() > 0 {
		current = make([]byte, stat.Size())
		if _, err := f.ReadAt(current, 0); err != nil {
			return fmt.Errorf("failed to read current file %q: %w", target, err)
		}
	}

	next, err := updateFunc(current)
	if err != nil {
		return err
	}
	return writeAtomic(target, next, s.fileMode)
}

// CanSave returns true because file system sources support saving.
func (s *Source) CanSave() bool {
	return true
}

// writeAtomic writes data to a temporary file next to target and renames it
// over target.
func writeAtomic(target string, data []byte, mode os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(target), ".jsonuri-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write to temporary file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), mode); err != nil {
		return fmt.Errorf("failed to set file permissions: %w", err)
	}
	if err = os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("failed to rename temporary file to %q: %w", target, err)
	}
	return nil
}

// fileLock takes an exclusive lock on fd and returns its release function.
// Filesystems without lock support get a no-op release and a nil error.
func fileLock(fd uintptr) (release func(), err error) {
	if err := lockExclusive(fd); err != nil {
		if isLockNotSupportedError(err) {
			return func() {}, nil
		}
		return nil, err
	}
	return func() { unlock(fd) }, nil
}

// Subscribe implements the source.Watchable interface.
//
// notify receives the file contents after every write, create or rename
// that actually changed them. Removal of the file is not reported; a
// recreated file is. Canceling ctx closes the watcher as well as stop does.
func (s *Source) Subscribe(ctx context.Context, notify source.NotifyFunc) (source.StopFunc, error) {
	path, err := expandTilde(s.path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	// Watch the directory rather than the file so that temp file + rename
	// replacements keep being observed.
	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch directory %q: %w", dir, err)
	}

	last, _ := os.ReadFile(path)
	name := filepath.Base(path)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			select {
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != name {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				data, err := os.ReadFile(path)
				if errors.Is(err, os.ErrNotExist) {
					continue
				}
				if err != nil {
					notify(nil, fmt.Errorf("failed to read file %q: %w", s.path, err))
					continue
				}
				if bytes.Equal(data, last) {
					continue
				}
				last = data
				notify(data, nil)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				notify(nil, err)
			case <-ctx.Done():
				w.Close()
				return
			}
		}
	}()

	var once sync.Once
	stop := func(ctx context.Context) error {
		var err error
		once.Do(func() {
			err = w.Close()
			select {
			case <-done:
			case <-ctx.Done():
			}
		})
		return err
	}
	return stop, nil
}

// expandTilde expands tilde (~) in the path.
// Handles both "~" (home directory) and "~/path" (path under home).
func expandTilde(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}
	if len(path) > 1 && path[1] != '/' && path[1] != filepath.Separator {
		// "~someone/path" is left alone.
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to expand home directory: %w", err)
	}
	if len(path) == 1 {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}
