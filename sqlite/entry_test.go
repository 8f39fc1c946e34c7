package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/kvdrop"
	"github.com/fwojciec/kvdrop/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryService_FindEntry(t *testing.T) {
	t.Parallel()

	t.Run("returns ENOTFOUND for missing key", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewEntryService(setupTestDB(t))

		_, err := svc.FindEntry(context.Background(), kvdrop.EntryRecords)
		require.Error(t, err)
		assert.Equal(t, kvdrop.ENOTFOUND, kvdrop.ErrorCode(err))
	})

	t.Run("returns stored value", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewEntryService(setupTestDB(t))
		ctx := context.Background()
		require.NoError(t, svc.PutEntries(ctx, kvdrop.Entry{Key: "datasetName", Value: "people"}))

		value, err := svc.FindEntry(ctx, "datasetName")
		require.NoError(t, err)
		assert.Equal(t, "people", value)
	})

	t.Run("stores empty values", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewEntryService(setupTestDB(t))
		ctx := context.Background()
		require.NoError(t, svc.PutEntries(ctx, kvdrop.Entry{Key: "datasetName", Value: ""}))

		value, err := svc.FindEntry(ctx, "datasetName")
		require.NoError(t, err)
		assert.Empty(t, value)
	})
}

func TestEntryService_PutEntries(t *testing.T) {
	t.Parallel()

	t.Run("overwrites existing entries", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewEntryService(setupTestDB(t))
		ctx := context.Background()
		require.NoError(t, svc.PutEntries(ctx,
			kvdrop.Entry{Key: "droppedData", Value: "[]"},
			kvdrop.Entry{Key: "datasetName", Value: "old"},
		))
		require.NoError(t, svc.PutEntries(ctx,
			kvdrop.Entry{Key: "droppedData", Value: `[{"id":"1","key":"a","value":"b"}]`},
			kvdrop.Entry{Key: "datasetName", Value: "new"},
		))

		records, err := svc.FindEntry(ctx, "droppedData")
		require.NoError(t, err)
		assert.Equal(t, `[{"id":"1","key":"a","value":"b"}]`, records)

		name, err := svc.FindEntry(ctx, "datasetName")
		require.NoError(t, err)
		assert.Equal(t, "new", name)
	})

	t.Run("writes nothing when one entry is invalid", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewEntryService(setupTestDB(t))
		ctx := context.Background()

		err := svc.PutEntries(ctx,
			kvdrop.Entry{Key: "datasetName", Value: "kept?"},
			kvdrop.Entry{Key: "", Value: "bad"},
		)
		require.Error(t, err)
		assert.Equal(t, kvdrop.EINVALID, kvdrop.ErrorCode(err))

		_, err = svc.FindEntry(ctx, "datasetName")
		assert.Equal(t, kvdrop.ENOTFOUND, kvdrop.ErrorCode(err))
	})

	t.Run("round-trips an encoded snapshot", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewEntryService(setupTestDB(t))
		ctx := context.Background()
		snap := kvdrop.Snapshot{
			Name:    "contacts",
			Records: []kvdrop.Record{{ID: "id-1", Key: "Name", Value: "Ann"}},
		}

		entries, err := kvdrop.EncodeSnapshot(snap)
		require.NoError(t, err)
		require.NoError(t, svc.PutEntries(ctx, entries...))

		records, err := svc.FindEntry(ctx, kvdrop.EntryRecords)
		require.NoError(t, err)
		name, err := svc.FindEntry(ctx, kvdrop.EntryDatasetName)
		require.NoError(t, err)

		got, err := kvdrop.DecodeSnapshot(records, name)
		require.NoError(t, err)
		assert.Equal(t, snap, got)
	})
}
