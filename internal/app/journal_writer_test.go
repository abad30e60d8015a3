package app

import (
	"testing"
	"time"

	"github.com/YoshitsuguKoike/docrev/internal/application/port/output"
	"github.com/oklog/ulid/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournalWriter_Append(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewJournalWriter(fs, ".docrev/var/journal.ndjson")
	fixed := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	w.Now = func() time.Time { return fixed }

	require.NoError(t, w.Append(&output.PatchRecord{
		Path:        "docs/a.md",
		Action:      "revision",
		Version:     "1.0",
		Date:        "2025-03-14",
		Description: "초안 작성",
		Reviewer:    "drake",
	}))
	require.NoError(t, w.Append(&output.PatchRecord{
		Path:     "docs/b.md",
		Action:   "info",
		Date:     "2025-03-14",
		Reviewer: "drake",
	}))

	records, err := ReadJournal(fs, w.Path())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "docs/a.md", records[0].Path)
	assert.Equal(t, "초안 작성", records[0].Description)
	assert.Equal(t, fixed, records[0].Timestamp)
	assert.Equal(t, "info", records[1].Action)
	assert.Empty(t, records[1].Version)

	// IDs are ULIDs, unique and ordered even within the same millisecond
	first, err := ulid.Parse(records[0].ID)
	require.NoError(t, err)
	second, err := ulid.Parse(records[1].ID)
	require.NoError(t, err)
	assert.Equal(t, -1, first.Compare(second))
	assert.Equal(t, ulid.Timestamp(fixed), first.Time())
}

func TestJournalWriter_KeepsGivenID(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewJournalWriter(fs, "journal.ndjson")

	rec := &output.PatchRecord{ID: "fixed-id", Path: "a.md", Date: "2025-01-01", Reviewer: "r"}
	require.NoError(t, w.Append(rec))

	records, err := ReadJournal(fs, "journal.ndjson")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "fixed-id", records[0].ID)
}

func TestReadJournal(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		records, err := ReadJournal(afero.NewMemMapFs(), "nope.ndjson")
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("corrupted line", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "j.ndjson", []byte("{\"path\":\"a.md\"}\nnot json\n"), 0o644))

		records, err := ReadJournal(fs, "j.ndjson")
		assert.Error(t, err)
		assert.Len(t, records, 1)
	})
}
