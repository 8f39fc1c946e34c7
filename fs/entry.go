package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fwojciec/kvdrop"
)

// EntriesFile is the name of the file holding all entries.
const EntriesFile = "entries.json"

// Ensure EntryService implements the kvdrop interfaces at compile time.
var (
	_ kvdrop.EntryService    = (*EntryService)(nil)
	_ kvdrop.SnapshotWatcher = (*EntryService)(nil)
)

// EntryService stores entries as a single JSON object in a directory.
// Every write replaces the whole file atomically.
type EntryService struct {
	mu  sync.Mutex
	dir string
}

// NewEntryService creates an EntryService rooted at dir.
func NewEntryService(dir string) *EntryService {
	return &EntryService{dir: dir}
}

// Dir returns the directory holding the entries file.
func (s *EntryService) Dir() string {
	return s.dir
}

// Path returns the path of the entries file.
func (s *EntryService) Path() string {
	return filepath.Join(s.dir, EntriesFile)
}

// FindEntry returns the value stored under key.
func (s *EntryService) FindEntry(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return "", err
	}
	value, ok := entries[key]
	if !ok {
		return "", kvdrop.Errorf(kvdrop.ENOTFOUND, "entry %q not found", key)
	}
	return value, nil
}

// PutEntries merges entries into the file and rewrites it atomically.
func (s *EntryService) PutEntries(ctx context.Context, entries ...kvdrop.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.read()
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.Key == "" {
			return kvdrop.Errorf(kvdrop.EINVALID, "entry key required")
		}
		current[e.Key] = e.Value
	}

	data, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(s.Path(), data)
}

func (s *EntryService) read() (map[string]string, error) {
	entries := make(map[string]string)
	data, err := os.ReadFile(s.Path())
	if errors.Is(err, os.ErrNotExist) {
		return entries, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, kvdrop.Errorf(kvdrop.EMALFORMED, "corrupt entries file %s: %v", s.Path(), err)
	}
	if entries == nil {
		entries = make(map[string]string)
	}
	return entries, nil
}

// ReadSnapshot loads the persisted snapshot straight from the entries file.
func (s *EntryService) ReadSnapshot() (kvdrop.Snapshot, error) {
	s.mu.Lock()
	entries, err := s.read()
	s.mu.Unlock()
	if err != nil {
		return kvdrop.Snapshot{}, err
	}
	snap, err := kvdrop.DecodeSnapshot(entries[kvdrop.EntryRecords], entries[kvdrop.EntryDatasetName])
	if err != nil {
		return kvdrop.Snapshot{}, fmt.Errorf("%s: %w", s.Path(), err)
	}
	return snap, nil
}
