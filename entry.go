package kvdrop

import (
	"context"
	"encoding/json"
)

// Keys under which a Store snapshot is persisted.
const (
	EntryRecords     = "droppedData"
	EntryDatasetName = "datasetName"
)

// Entry is a single string entry in a key-value store.
type Entry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// EntryService represents a process-wide string key-value store.
type EntryService interface {
	// FindEntry returns the value stored under key.
	// Returns ENOTFOUND if the key does not exist.
	FindEntry(ctx context.Context, key string) (string, error)

	// PutEntries writes all entries atomically.
	PutEntries(ctx context.Context, entries ...Entry) error
}

// SnapshotValidator checks persisted record JSON before it is restored.
type SnapshotValidator interface {
	// ValidateRecords returns EMALFORMED if data is not a valid record list.
	ValidateRecords(data []byte) error
}

// EncodeSnapshot converts a snapshot into the two persisted entries.
func EncodeSnapshot(snap Snapshot) ([]Entry, error) {
	records := snap.Records
	if records == nil {
		records = []Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, err
	}
	return []Entry{
		{Key: EntryRecords, Value: string(data)},
		{Key: EntryDatasetName, Value: snap.Name},
	}, nil
}

// DecodeSnapshot rebuilds a snapshot from persisted entries. Empty entries
// mean empty state. Returns EMALFORMED if the record list cannot be decoded.
func DecodeSnapshot(records, name string) (Snapshot, error) {
	snap := Snapshot{Name: name}
	if records == "" {
		return snap, nil
	}
	if err := json.Unmarshal([]byte(records), &snap.Records); err != nil {
		return Snapshot{}, Errorf(EMALFORMED, "failed to decode stored records: %v", err)
	}
	return snap, nil
}

// SnapshotWatcher reports changes to persisted state made by other processes.
type SnapshotWatcher interface {
	// Watch calls fn with the persisted snapshot after every change until
	// ctx is canceled.
	Watch(ctx context.Context, fn func(Snapshot)) error
}
