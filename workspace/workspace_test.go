package workspace_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"testing"

	"github.com/fwojciec/kvdrop"
	"github.com/fwojciec/kvdrop/extract"
	"github.com/fwojciec/kvdrop/mock"
	"github.com/fwojciec/kvdrop/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorkspace(entries kvdrop.EntryService) *workspace.Workspace {
	w := workspace.New(extract.NewCoordinator(nil, nil), entries,
		&kvdrop.JSONSerializer{}, &kvdrop.CSVSerializer{})
	var n int
	w.NewID = func() string {
		n++
		return "id-" + strconv.Itoa(n)
	}
	w.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return w
}

func persisted(t *testing.T, entries mock.EntryMap) kvdrop.Snapshot {
	t.Helper()
	snap, err := kvdrop.DecodeSnapshot(entries[kvdrop.EntryRecords], entries[kvdrop.EntryDatasetName])
	require.NoError(t, err)
	return snap
}

func TestWorkspace_Load(t *testing.T) {
	t.Parallel()

	t.Run("starts empty without persisted state", func(t *testing.T) {
		t.Parallel()

		w := newTestWorkspace(mock.EntryMap{})

		require.NoError(t, w.Load(context.Background()))
		assert.Zero(t, w.Store.Len())
		assert.Empty(t, w.Store.Name())
	})

	t.Run("restores persisted records and name", func(t *testing.T) {
		t.Parallel()

		entries := mock.EntryMap{
			kvdrop.EntryRecords:     `[{"id":"x","key":"a","value":"1"}]`,
			kvdrop.EntryDatasetName: "people",
		}
		w := newTestWorkspace(entries)

		require.NoError(t, w.Load(context.Background()))
		assert.Equal(t, []kvdrop.Record{{ID: "x", Key: "a", Value: "1"}}, w.Store.Records())
		assert.Equal(t, "people", w.Store.Name())
	})

	t.Run("rejects records that fail validation", func(t *testing.T) {
		t.Parallel()

		w := newTestWorkspace(mock.EntryMap{kvdrop.EntryRecords: `[{"id":1}]`})
		w.Validator = &mock.SnapshotValidator{
			ValidateRecordsFn: func(data []byte) error {
				return kvdrop.Errorf(kvdrop.EMALFORMED, "bad records")
			},
		}

		err := w.Load(context.Background())

		assert.Equal(t, kvdrop.EMALFORMED, kvdrop.ErrorCode(err))
		assert.Zero(t, w.Store.Len())
	})

	t.Run("propagates storage errors", func(t *testing.T) {
		t.Parallel()

		w := newTestWorkspace(&mock.EntryService{
			FindEntryFn: func(ctx context.Context, key string) (string, error) {
				return "", errors.New("disk on fire")
			},
		})

		assert.Error(t, w.Load(context.Background()))
	})
}

func TestWorkspace_Drop(t *testing.T) {
	t.Parallel()

	t.Run("assigns ids, appends and persists", func(t *testing.T) {
		t.Parallel()

		entries := mock.EntryMap{}
		w := newTestWorkspace(entries)
		ctx := context.Background()

		drop, err := w.Drop(ctx, kvdrop.Payload{Structured: `[{"key":"a","value":"1"}]`, Text: "b: 2"})

		require.NoError(t, err)
		want := []kvdrop.Record{
			{ID: "id-1", Key: "a", Value: "1"},
			{ID: "id-2", Key: "b", Value: "2"},
		}
		assert.Equal(t, want, drop.Records)
		assert.Equal(t, want, w.Store.Records())
		assert.Equal(t, want, persisted(t, entries).Records)
		assert.Equal(t, kvdrop.Notice{Severity: kvdrop.SeveritySuccess, Message: workspace.MsgDropped},
			drop.Notices[len(drop.Notices)-1])
	})

	t.Run("appends later drops after earlier ones", func(t *testing.T) {
		t.Parallel()

		w := newTestWorkspace(mock.EntryMap{})
		ctx := context.Background()

		_, err := w.Drop(ctx, kvdrop.Payload{Text: "a: 1"})
		require.NoError(t, err)
		_, err = w.Drop(ctx, kvdrop.Payload{Text: "b: 2"})
		require.NoError(t, err)

		records := w.Store.Records()
		require.Len(t, records, 2)
		assert.Equal(t, "a", records[0].Key)
		assert.Equal(t, "b", records[1].Key)
	})

	t.Run("leaves state untouched when nothing is usable", func(t *testing.T) {
		t.Parallel()

		entries := mock.EntryMap{}
		w := newTestWorkspace(entries)

		drop, err := w.Drop(context.Background(), kvdrop.Payload{Structured: "{oops"})

		assert.Equal(t, kvdrop.ENODATA, kvdrop.ErrorCode(err))
		require.NotNil(t, drop)
		assert.Empty(t, drop.Records)
		assert.NotEmpty(t, drop.Notices)
		assert.Zero(t, w.Store.Len())
		assert.Empty(t, entries)
	})

	t.Run("stores incomplete structured items as empty strings", func(t *testing.T) {
		t.Parallel()

		w := newTestWorkspace(mock.EntryMap{})

		drop, err := w.Drop(context.Background(), kvdrop.Payload{Structured: `[{"key":"a"}]`})

		require.NoError(t, err)
		assert.Equal(t, []kvdrop.Record{{ID: "id-1", Key: "a", Value: ""}}, drop.Records)
		assert.Equal(t, kvdrop.SeverityInfo, drop.Notices[0].Severity)
	})

	t.Run("reports persistence failures", func(t *testing.T) {
		t.Parallel()

		w := newTestWorkspace(&mock.EntryService{
			PutEntriesFn: func(ctx context.Context, entries ...kvdrop.Entry) error {
				return errors.New("disk full")
			},
		})

		drop, err := w.Drop(context.Background(), kvdrop.Payload{Text: "a: 1"})

		assert.ErrorContains(t, err, "failed to persist state")
		assert.Len(t, drop.Records, 1)
	})

	t.Run("propagates extractor failures", func(t *testing.T) {
		t.Parallel()

		w := newTestWorkspace(mock.EntryMap{})
		w.Extractor = &mock.Extractor{
			ExtractFn: func(p kvdrop.Payload) (*kvdrop.Extraction, error) {
				return nil, errors.New("boom")
			},
		}

		drop, err := w.Drop(context.Background(), kvdrop.Payload{Text: "a: 1"})

		assert.Error(t, err)
		assert.Nil(t, drop)
	})
}

func TestWorkspace_Mutations(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T) (*workspace.Workspace, mock.EntryMap) {
		t.Helper()
		entries := mock.EntryMap{}
		w := newTestWorkspace(entries)
		_, err := w.Drop(context.Background(), kvdrop.Payload{Text: "a: 1\nb: 2"})
		require.NoError(t, err)
		return w, entries
	}

	t.Run("update persists the edited field", func(t *testing.T) {
		t.Parallel()

		w, entries := setup(t)

		ok, err := w.Update(context.Background(), "id-2", kvdrop.FieldKey, "")

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, persisted(t, entries).Records[1].Key)
	})

	t.Run("update of unknown id is a no-op", func(t *testing.T) {
		t.Parallel()

		w, entries := setup(t)
		before := entries[kvdrop.EntryRecords]

		ok, err := w.Update(context.Background(), "missing", kvdrop.FieldValue, "x")

		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, before, entries[kvdrop.EntryRecords])
	})

	t.Run("remove persists and notifies", func(t *testing.T) {
		t.Parallel()

		w, entries := setup(t)

		notice, err := w.Remove(context.Background(), "id-1")

		require.NoError(t, err)
		require.NotNil(t, notice)
		assert.Equal(t, workspace.MsgRemoved, notice.Message)
		assert.Equal(t, []kvdrop.Record{{ID: "id-2", Key: "b", Value: "2"}}, persisted(t, entries).Records)
	})

	t.Run("remove of unknown id returns no notice", func(t *testing.T) {
		t.Parallel()

		w, _ := setup(t)

		notice, err := w.Remove(context.Background(), "missing")

		require.NoError(t, err)
		assert.Nil(t, notice)
		assert.Equal(t, 2, w.Store.Len())
	})

	t.Run("rename persists the name", func(t *testing.T) {
		t.Parallel()

		w, entries := setup(t)

		require.NoError(t, w.Rename(context.Background(), "people"))

		assert.Equal(t, "people", entries[kvdrop.EntryDatasetName])
	})

	t.Run("clear persists empty state", func(t *testing.T) {
		t.Parallel()

		w, entries := setup(t)
		require.NoError(t, w.Rename(context.Background(), "people"))

		notice, err := w.Clear(context.Background())

		require.NoError(t, err)
		assert.Equal(t, workspace.MsgCleared, notice.Message)
		assert.Equal(t, "[]", entries[kvdrop.EntryRecords])
		assert.Empty(t, entries[kvdrop.EntryDatasetName])
	})

	t.Run("state survives a reload", func(t *testing.T) {
		t.Parallel()

		w, entries := setup(t)
		require.NoError(t, w.Rename(context.Background(), "people"))

		reloaded := newTestWorkspace(entries)
		require.NoError(t, reloaded.Load(context.Background()))

		assert.Equal(t, w.Store.Snapshot(), reloaded.Store.Snapshot())
	})
}

func TestWorkspace_Export(t *testing.T) {
	t.Parallel()

	t.Run("serializes the dataset", func(t *testing.T) {
		t.Parallel()

		w := newTestWorkspace(mock.EntryMap{})
		ctx := context.Background()
		_, err := w.Drop(ctx, kvdrop.Payload{Text: "a: 1"})
		require.NoError(t, err)
		require.NoError(t, w.Rename(ctx, "people"))

		doc, notice, err := w.Export(ctx, kvdrop.FormatCSV)

		require.NoError(t, err)
		assert.Equal(t, "people.csv", doc.Filename)
		assert.Equal(t, "Dataset Name: people\n\nKey,Value\n\"a\",\"1\"", string(doc.Content))
		assert.Equal(t, "Data exported as CSV.", notice.Message)
	})

	t.Run("refuses to export an empty dataset", func(t *testing.T) {
		t.Parallel()

		w := newTestWorkspace(mock.EntryMap{})
		require.NoError(t, w.Rename(context.Background(), "people"))

		_, _, err := w.Export(context.Background(), kvdrop.FormatJSON)

		assert.Equal(t, kvdrop.EPRECONDITION, kvdrop.ErrorCode(err))
		assert.Equal(t, "No data available to export.", kvdrop.ErrorMessage(err))
	})

	t.Run("refuses to export an unnamed dataset", func(t *testing.T) {
		t.Parallel()

		w := newTestWorkspace(mock.EntryMap{})
		_, err := w.Drop(context.Background(), kvdrop.Payload{Text: "a: 1"})
		require.NoError(t, err)

		_, _, err = w.Export(context.Background(), kvdrop.FormatJSON)

		assert.Equal(t, "Please enter a data set name.", kvdrop.ErrorMessage(err))
	})

	t.Run("rejects unregistered formats", func(t *testing.T) {
		t.Parallel()

		w := newTestWorkspace(mock.EntryMap{})
		ctx := context.Background()
		_, err := w.Drop(ctx, kvdrop.Payload{Text: "a: 1"})
		require.NoError(t, err)
		require.NoError(t, w.Rename(ctx, "people"))

		_, _, err = w.Export(ctx, kvdrop.FormatXLSX)

		assert.Equal(t, kvdrop.EINVALID, kvdrop.ErrorCode(err))
	})

	t.Run("propagates serializer failures", func(t *testing.T) {
		t.Parallel()

		w := newTestWorkspace(mock.EntryMap{})
		w.Serializers[kvdrop.FormatYAML] = &mock.Serializer{
			FormatFn:    func() kvdrop.Format { return kvdrop.FormatYAML },
			MIMETypeFn:  func() string { return "application/yaml" },
			SerializeFn: func(ds *kvdrop.Dataset) ([]byte, error) { return nil, errors.New("boom") },
		}
		ctx := context.Background()
		_, err := w.Drop(ctx, kvdrop.Payload{Text: "a: 1"})
		require.NoError(t, err)
		require.NoError(t, w.Rename(ctx, "people"))

		_, _, err = w.Export(ctx, kvdrop.FormatYAML)

		assert.EqualError(t, err, "boom")
	})

	t.Run("lists registered formats in a stable order", func(t *testing.T) {
		t.Parallel()

		w := newTestWorkspace(mock.EntryMap{})

		assert.Equal(t, []kvdrop.Format{kvdrop.FormatJSON, kvdrop.FormatCSV}, w.Formats())
	})
}
