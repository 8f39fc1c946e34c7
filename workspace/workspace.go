// Package workspace ties the record store to extraction, persistence and
// export.
package workspace

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fwojciec/kvdrop"
	"github.com/google/uuid"
)

// Notice messages shown to the user.
const (
	MsgDropped  = "Data dropped successfully!"
	MsgRemoved  = "Entry removed."
	MsgCleared  = "All data cleared."
	MsgExported = "Data exported as %s."
)

// Workspace holds the user's record list and keeps it persisted. Every
// mutation rewrites both persisted entries.
type Workspace struct {
	Store       *kvdrop.Store
	Extractor   kvdrop.Extractor
	Entries     kvdrop.EntryService
	Validator   kvdrop.SnapshotValidator // optional
	Serializers map[kvdrop.Format]kvdrop.Serializer

	// NewID generates record ids. Defaults to random UUIDs.
	NewID func() string

	Logger *slog.Logger
}

// New creates a Workspace with an empty store and the given serializers.
func New(extractor kvdrop.Extractor, entries kvdrop.EntryService, serializers ...kvdrop.Serializer) *Workspace {
	w := &Workspace{
		Store:       kvdrop.NewStore(),
		Extractor:   extractor,
		Entries:     entries,
		Serializers: make(map[kvdrop.Format]kvdrop.Serializer),
		NewID:       uuid.NewString,
		Logger:      slog.Default(),
	}
	for _, s := range serializers {
		w.Serializers[s.Format()] = s
	}
	w.Store.Subscribe(func(snap kvdrop.Snapshot) {
		w.logger().Debug("store changed", "records", len(snap.Records), "name", snap.Name)
	})
	return w
}

// Drop is the outcome of accepting a payload.
type Drop struct {
	Records []kvdrop.Record
	Notices []kvdrop.Notice
}

// Load restores the persisted state. Missing entries mean empty state.
func (w *Workspace) Load(ctx context.Context) error {
	records, err := w.findEntry(ctx, kvdrop.EntryRecords)
	if err != nil {
		return err
	}
	name, err := w.findEntry(ctx, kvdrop.EntryDatasetName)
	if err != nil {
		return err
	}

	if records != "" && w.Validator != nil {
		if err := w.Validator.ValidateRecords([]byte(records)); err != nil {
			return err
		}
	}

	snap, err := kvdrop.DecodeSnapshot(records, name)
	if err != nil {
		return err
	}
	w.Store.Restore(snap)
	w.logger().Debug("state loaded", "records", len(snap.Records), "name", snap.Name)
	return nil
}

// Drop extracts candidates from the payload, assigns each a fresh id and
// appends them to the store. Returns ENODATA, with the notices collected so
// far, when nothing usable was found; the store is left unchanged.
func (w *Workspace) Drop(ctx context.Context, p kvdrop.Payload) (*Drop, error) {
	ext, err := w.Extractor.Extract(p)
	if err != nil {
		if ext != nil {
			return &Drop{Notices: ext.Notices}, err
		}
		return nil, err
	}

	records := make([]kvdrop.Record, 0, len(ext.Candidates))
	for _, c := range ext.Candidates {
		records = append(records, kvdrop.Record{ID: w.newID(), Key: c.Key, Value: c.Value})
	}
	w.Store.Append(records...)

	drop := &Drop{
		Records: records,
		Notices: append(ext.Notices, kvdrop.Notice{Severity: kvdrop.SeveritySuccess, Message: MsgDropped}),
	}
	if err := w.save(ctx); err != nil {
		return drop, err
	}
	return drop, nil
}

// Update replaces one field of a record. Unknown ids are a no-op.
func (w *Workspace) Update(ctx context.Context, id string, field kvdrop.Field, value string) (bool, error) {
	if !w.Store.Update(id, field, value) {
		return false, nil
	}
	return true, w.save(ctx)
}

// Remove deletes a record. Unknown ids are a no-op.
func (w *Workspace) Remove(ctx context.Context, id string) (*kvdrop.Notice, error) {
	if !w.Store.Remove(id) {
		return nil, nil
	}
	if err := w.save(ctx); err != nil {
		return nil, err
	}
	return &kvdrop.Notice{Severity: kvdrop.SeverityInfo, Message: MsgRemoved}, nil
}

// Clear empties the record list and resets the dataset name.
func (w *Workspace) Clear(ctx context.Context) (*kvdrop.Notice, error) {
	w.Store.Clear()
	if err := w.save(ctx); err != nil {
		return nil, err
	}
	return &kvdrop.Notice{Severity: kvdrop.SeverityInfo, Message: MsgCleared}, nil
}

// Rename sets the dataset name.
func (w *Workspace) Rename(ctx context.Context, name string) error {
	w.Store.SetName(name)
	return w.save(ctx)
}

// Dataset returns the current dataset.
func (w *Workspace) Dataset() *kvdrop.Dataset {
	return w.Store.Dataset()
}

// Export checks the export preconditions and serializes the dataset.
// Returns EPRECONDITION when the dataset is empty or unnamed, and EINVALID
// for an unknown format.
func (w *Workspace) Export(ctx context.Context, format kvdrop.Format) (*kvdrop.ExportDocument, *kvdrop.Notice, error) {
	ds := w.Store.Dataset()
	if err := kvdrop.ValidateExport(ds); err != nil {
		return nil, nil, err
	}
	s, ok := w.Serializers[format]
	if !ok {
		return nil, nil, kvdrop.Errorf(kvdrop.EINVALID, "unsupported export format %q", format)
	}
	doc, err := kvdrop.NewExportDocument(ds, s)
	if err != nil {
		return nil, nil, err
	}
	notice := &kvdrop.Notice{
		Severity: kvdrop.SeveritySuccess,
		Message:  fmt.Sprintf(MsgExported, strings.ToUpper(string(format))),
	}
	return doc, notice, nil
}

// Formats returns the registered export formats.
func (w *Workspace) Formats() []kvdrop.Format {
	formats := make([]kvdrop.Format, 0, len(w.Serializers))
	for _, f := range []kvdrop.Format{kvdrop.FormatJSON, kvdrop.FormatCSV, kvdrop.FormatYAML, kvdrop.FormatXLSX} {
		if _, ok := w.Serializers[f]; ok {
			formats = append(formats, f)
		}
	}
	return formats
}

// save rewrites both persisted entries from a single snapshot.
func (w *Workspace) save(ctx context.Context) error {
	entries, err := kvdrop.EncodeSnapshot(w.Store.Snapshot())
	if err != nil {
		return err
	}
	if err := w.Entries.PutEntries(ctx, entries...); err != nil {
		return fmt.Errorf("failed to persist state: %w", err)
	}
	return nil
}

func (w *Workspace) findEntry(ctx context.Context, key string) (string, error) {
	value, err := w.Entries.FindEntry(ctx, key)
	if kvdrop.ErrorCode(err) == kvdrop.ENOTFOUND {
		return "", nil
	}
	return value, err
}

func (w *Workspace) newID() string {
	if w.NewID == nil {
		return uuid.NewString()
	}
	return w.NewID()
}

func (w *Workspace) logger() *slog.Logger {
	if w.Logger == nil {
		return slog.Default()
	}
	return w.Logger
}
