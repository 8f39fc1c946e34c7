package mock

import (
	"context"

	"github.com/fwojciec/kvdrop"
)

var _ kvdrop.EntryService = (*EntryService)(nil)

// EntryService is a mock implementation of kvdrop.EntryService.
type EntryService struct {
	FindEntryFn  func(ctx context.Context, key string) (string, error)
	PutEntriesFn func(ctx context.Context, entries ...kvdrop.Entry) error
}

func (s *EntryService) FindEntry(ctx context.Context, key string) (string, error) {
	return s.FindEntryFn(ctx, key)
}

func (s *EntryService) PutEntries(ctx context.Context, entries ...kvdrop.Entry) error {
	return s.PutEntriesFn(ctx, entries...)
}

// EntryMap is an in-memory kvdrop.EntryService for tests.
type EntryMap map[string]string

func (m EntryMap) FindEntry(_ context.Context, key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", kvdrop.Errorf(kvdrop.ENOTFOUND, "entry %q not found", key)
	}
	return v, nil
}

func (m EntryMap) PutEntries(_ context.Context, entries ...kvdrop.Entry) error {
	for _, e := range entries {
		m[e.Key] = e.Value
	}
	return nil
}

var _ kvdrop.SnapshotWatcher = (*SnapshotWatcher)(nil)

// SnapshotWatcher is a mock implementation of kvdrop.SnapshotWatcher.
type SnapshotWatcher struct {
	WatchFn func(ctx context.Context, fn func(kvdrop.Snapshot)) error
}

func (w *SnapshotWatcher) Watch(ctx context.Context, fn func(kvdrop.Snapshot)) error {
	return w.WatchFn(ctx, fn)
}
