package kvdrop

import (
	"slices"
	"sync"
)

// Snapshot captures the full state of a Store.
type Snapshot struct {
	Name    string
	Records []Record
}

// Store holds the accumulated, user-editable record list and the dataset
// name. Records keep insertion order. Every operation is synchronous and
// total; snapshots and restores are atomic with respect to readers.
type Store struct {
	mu      sync.RWMutex
	name    string
	records []Record

	observers map[int]func(Snapshot)
	nextObs   int
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{observers: make(map[int]func(Snapshot))}
}

// Append adds records to the end of the list in the given order.
func (s *Store) Append(records ...Record) {
	if len(records) == 0 {
		return
	}
	s.mu.Lock()
	s.records = append(s.records, records...)
	s.mu.Unlock()
	s.notify()
}

// Update replaces one field of the record with the given id.
// Any value is accepted, including the empty string.
// Returns false if no record has that id.
func (s *Store) Update(id string, field Field, value string) bool {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	switch field {
	case FieldKey:
		s.records[i].Key = value
	case FieldValue:
		s.records[i].Value = value
	default:
		s.mu.Unlock()
		return false
	}
	s.mu.Unlock()
	s.notify()
	return true
}

// Remove deletes the record with the given id.
// Returns false if no record has that id.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.records = slices.Delete(s.records, i, i+1)
	s.mu.Unlock()
	s.notify()
	return true
}

// Clear empties the record list and resets the dataset name.
func (s *Store) Clear() {
	s.mu.Lock()
	s.records = nil
	s.name = ""
	s.mu.Unlock()
	s.notify()
}

// SetName sets the dataset name.
func (s *Store) SetName(name string) {
	s.mu.Lock()
	s.name = name
	s.mu.Unlock()
	s.notify()
}

// Name returns the dataset name.
func (s *Store) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Records returns a copy of the record list.
func (s *Store) Records() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.records)
}

// Find returns the record with the given id.
func (s *Store) Find(id string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.records[i], true
	}
	return Record{}, false
}

// Dataset returns the current dataset.
func (s *Store) Dataset() *Dataset {
	snap := s.Snapshot()
	return &Dataset{Name: snap.Name, Records: snap.Records}
}

// Snapshot returns a copy of the full state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Name: s.name, Records: slices.Clone(s.records)}
}

// Restore replaces the full state with the snapshot.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	s.name = snap.Name
	s.records = slices.Clone(snap.Records)
	s.mu.Unlock()
	s.notify()
}

// Subscribe registers fn to be called with a snapshot after every mutation.
// The returned function cancels the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) (cancel func()) {
	s.mu.Lock()
	if s.observers == nil {
		s.observers = make(map[int]func(Snapshot))
	}
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

// notify calls observers outside the lock so they may read the store.
func (s *Store) notify() {
	s.mu.RLock()
	if len(s.observers) == 0 {
		s.mu.RUnlock()
		return
	}
	snap := Snapshot{Name: s.name, Records: slices.Clone(s.records)}
	ids := make([]int, 0, len(s.observers))
	for id := range s.observers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(Snapshot), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.observers[id])
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(snap)
	}
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.records, func(r Record) bool { return r.ID == id })
}
