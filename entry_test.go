package kvdrop_test

import (
	"testing"

	"github.com/fwojciec/kvdrop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("encodes records and name", func(t *testing.T) {
		t.Parallel()

		entries, err := kvdrop.EncodeSnapshot(kvdrop.Snapshot{
			Name:    "people",
			Records: []kvdrop.Record{{ID: "1", Key: "a", Value: "1"}},
		})

		require.NoError(t, err)
		assert.Equal(t, []kvdrop.Entry{
			{Key: kvdrop.EntryRecords, Value: `[{"id":"1","key":"a","value":"1"}]`},
			{Key: kvdrop.EntryDatasetName, Value: "people"},
		}, entries)
	})

	t.Run("encodes empty state as an empty list", func(t *testing.T) {
		t.Parallel()

		entries, err := kvdrop.EncodeSnapshot(kvdrop.Snapshot{})

		require.NoError(t, err)
		assert.Equal(t, "[]", entries[0].Value)
		assert.Empty(t, entries[1].Value)
	})
}

func TestDecodeSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("round-trips an encoded snapshot", func(t *testing.T) {
		t.Parallel()

		want := kvdrop.Snapshot{
			Name: "people",
			Records: []kvdrop.Record{
				{ID: "1", Key: "a", Value: "1"},
				{ID: "2", Key: "b", Value: ""},
			},
		}
		entries, err := kvdrop.EncodeSnapshot(want)
		require.NoError(t, err)

		got, err := kvdrop.DecodeSnapshot(entries[0].Value, entries[1].Value)

		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("treats empty entries as empty state", func(t *testing.T) {
		t.Parallel()

		got, err := kvdrop.DecodeSnapshot("", "")

		require.NoError(t, err)
		assert.Empty(t, got.Records)
		assert.Empty(t, got.Name)
	})

	t.Run("returns malformed error for corrupt records", func(t *testing.T) {
		t.Parallel()

		_, err := kvdrop.DecodeSnapshot("{not json", "x")

		assert.Equal(t, kvdrop.EMALFORMED, kvdrop.ErrorCode(err))
	})
}
