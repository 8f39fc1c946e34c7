package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/fwojciec/kvdrop"
)

// Watch calls fn with the persisted snapshot every time the entries file
// changes, until ctx is canceled. The directory is watched rather than the
// file because atomic writes replace the file.
func (s *EntryService) Watch(ctx context.Context, fn func(kvdrop.Snapshot)) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", s.dir, err)
	}

	target := filepath.Clean(s.Path())
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", s.dir, err)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			snap, err := s.ReadSnapshot()
			if err != nil {
				return err
			}
			fn(snap)
		}
	}
}
