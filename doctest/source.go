package doctest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/linkjun/jsonuri/source"
)

// SourceFactory creates a Source initialized with the given test data.
// The factory is called for each test case to ensure test isolation.
type SourceFactory func(data []byte) source.Source

// NotExistFactory creates a Source that points to a non-existent resource.
type NotExistFactory func() source.Source

// SourceTesterOption configures SourceTester behavior.
type SourceTesterOption func(*SourceTester)

// WithNotExistFactory enables the ErrNotExist check for sources backed by
// resources that can be missing.
func WithNotExistFactory(factory NotExistFactory) SourceTesterOption {
	return func(st *SourceTester) {
		st.notExistFactory = factory
	}
}

// SourceTester provides utilities to verify Source implementations.
type SourceTester struct {
	t               *testing.T
	factory         SourceFactory
	notExistFactory NotExistFactory
}

// NewSourceTester creates a SourceTester for the given SourceFactory.
func NewSourceTester(t *testing.T, factory SourceFactory, opts ...SourceTesterOption) *SourceTester {
	st := &SourceTester{
		t:       t,
		factory: factory,
	}
	for _, opt := range opts {
		opt(st)
	}
	return st
}

// TestAll runs all standard compliance tests for Source implementations.
func (st *SourceTester) TestAll() {
	st.t.Run("Load", st.testLoad)
	st.t.Run("CanSave", st.testCanSave)
	st.t.Run("SaveRoundTrip", st.testSaveRoundTrip)
	st.t.Run("Subscribe", st.testSubscribe)
	st.t.Run("NotExist", st.testNotExist)
}

// testLoad verifies Load() returns the data the source was created with.
func (st *SourceTester) testLoad(t *testing.T) {
	s := st.factory([]byte(`{"key": "value"}`))

	data, err := s.Load(context.Background())
	requireNoError(t, err, "Load error = %v", err)
	check(t, string(data) == `{"key": "value"}`, "Load() = %q", data)
}

// testCanSave verifies CanSave() is consistent with Save() behavior.
func (st *SourceTester) testCanSave(t *testing.T) {
	s := st.factory([]byte(`{"key": "value"}`))

	canSave := s.CanSave()
	err := s.Save(context.Background(), func(current []byte) ([]byte, error) {
		return []byte(`{"key": "new_value"}`), nil
	})

	if canSave {
		check(t, !errors.Is(err, source.ErrSaveNotSupported),
			"CanSave() returned true but Save() returned ErrSaveNotSupported")
	} else {
		check(t, errors.Is(err, source.ErrSaveNotSupported),
			"CanSave() returned false but Save() did not return ErrSaveNotSupported, got %v", err)
	}
}

// testSaveRoundTrip verifies saved bytes are what the next Load returns.
func (st *SourceTester) testSaveRoundTrip(t *testing.T) {
	s := st.factory([]byte("before"))
	if !s.CanSave() {
		t.Skip("source does not support Save")
	}

	err := s.Save(context.Background(), func(current []byte) ([]byte, error) {
		check(t, string(current) == "before", "Save() current = %q, want %q", current, "before")
		return []byte("after"), nil
	})
	requireNoError(t, err, "Save() error = %v", err)

	data, err := s.Load(context.Background())
	requireNoError(t, err, "Load() after Save error = %v", err)
	check(t, string(data) == "after", "Load() after Save = %q, want %q", data, "after")
}

// testSubscribe verifies Watchable sources report a saved change.
func (st *SourceTester) testSubscribe(t *testing.T) {
	s := st.factory([]byte("v1"))
	ws, ok := s.(source.Watchable)
	if !ok {
		t.Skip("source does not implement Watchable")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan []byte, 4)
	stop, err := ws.Subscribe(ctx, func(data []byte, err error) {
		if err == nil {
			changes <- data
		}
	})
	requireNoError(t, err, "Subscribe() error = %v", err)
	defer stop(context.Background())

	err = ws.Save(ctx, func([]byte) ([]byte, error) { return []byte("v2"), nil })
	requireNoError(t, err, "Save() error = %v", err)

	select {
	case data := <-changes:
		check(t, string(data) == "v2", "notified with %q, want %q", data, "v2")
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}
}

// testNotExist verifies Load wraps source.ErrNotExist for missing resources.
func (st *SourceTester) testNotExist(t *testing.T) {
	if st.notExistFactory == nil {
		t.Skip("NotExistFactory not provided")
	}

	_, err := st.notExistFactory().Load(context.Background())
	require(t, err != nil, "Load() on non-existent resource should return error")
	check(t, errors.Is(err, source.ErrNotExist),
		"Load() error should wrap source.ErrNotExist, got: %v", err)
}
