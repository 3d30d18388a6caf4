// Package bytes provides an in-memory document source.
//
// Sources are read-only unless created with Writable, in which case Save
// replaces the held bytes.
package bytes

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/linkjun/jsonuri/source"
)

// Source holds raw document bytes in memory.
type Source struct {
	mu       sync.RWMutex
	data     []byte
	writable bool
}

// Ensure Source implements the source.Source interface.
var _ source.Source = (*Source)(nil)

// Option configures a Source.
type Option func(*Source)

// Writable allows Save to replace the held bytes.
func Writable() Option {
	return func(s *Source) {
		s.writable = true
	}
}

// New creates a source from raw bytes.
//
// Example:
//
//	src := bytes.New([]byte(`{"menu": {"id": [10, 20]}}`))
func New(data []byte, opts ...Option) *Source {
	s := &Source{data: data}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FromString creates a source from a string.
func FromString(data string, opts ...Option) *Source {
	return New([]byte(data), opts...)
}

// FromReader reads r to the end and creates a source from its contents.
func FromReader(r io.Reader, opts ...Option) (*Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return New(data, opts...), nil
}

// Load implements the source.Source interface.
// Returns a copy of the data to prevent callers from modifying the source.
func (s *Source) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]byte(nil), s.data...), nil
}

// Save implements the source.Source interface. It returns
// ErrSaveNotSupported unless the source was created with Writable.
func (s *Source) Save(ctx context.Context, updateFunc source.UpdateFunc) error {
	if !s.writable {
		return source.ErrSaveNotSupported
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := updateFunc(append([]byte(nil), s.data...))
	if err != nil {
		return err
	}
	s.data = next
	return nil
}

// CanSave reports whether the source was created with Writable.
func (s *Source) CanSave() bool {
	return s.writable
}
