// Package source provides the byte-level I/O behind documents: where raw
// document bytes come from and, optionally, where edited bytes go back to.
// Sources never parse; decoding is handled by the format packages.
package source

import (
	"context"
	"errors"
)

// ErrSaveNotSupported is returned when Save is called on a source that doesn't support saving.
var ErrSaveNotSupported = errors.New("save not supported for this source")

// ErrNotExist is wrapped by Load when the underlying resource does not exist.
var ErrNotExist = errors.New("source does not exist")

// UpdateFunc generates the bytes to save. It receives the current bytes of
// the source, read while the source is locked, and returns the replacement.
type UpdateFunc func(current []byte) ([]byte, error)

// Source loads and optionally saves raw document bytes.
type Source interface {
	// Load reads the raw document bytes.
	Load(ctx context.Context) ([]byte, error)

	// Save replaces the source contents with the bytes returned by
	// updateFunc. Returns ErrSaveNotSupported if the source is read-only.
	Save(ctx context.Context, updateFunc UpdateFunc) error

	// CanSave returns true if the source supports saving.
	CanSave() bool
}

// NotifyFunc receives the new contents of a watched source, or an error.
type NotifyFunc func(data []byte, err error)

// StopFunc stops a subscription and releases its resources.
type StopFunc func(ctx context.Context) error

// Watchable is implemented by sources that can report changes.
type Watchable interface {
	Source

	// Subscribe calls notify with the new contents each time they change,
	// until ctx is done or the returned StopFunc is called.
	Subscribe(ctx context.Context, notify NotifyFunc) (StopFunc, error)
}
