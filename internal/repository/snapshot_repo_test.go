package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSnapshotName(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	got, ok := ParseSnapshotName("06-14 09", now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 6, 14, 9, 0, 0, 0, time.UTC), got)

	got, ok = ParseSnapshotName("06-14-09", now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 6, 14, 9, 0, 0, 0, time.UTC), got)

	_, ok = ParseSnapshotName("roster", now)
	assert.False(t, ok)
}

func TestParseSnapshotNameYearRollover(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 0, 0, 0, time.UTC)
	got, ok := ParseSnapshotName("12-31 23", now)
	require.True(t, ok)
	assert.Equal(t, 2023, got.Year())
}

func TestSnapshotRepoListAppliesCutoff(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"06-14 09.csv", "05-20 10.csv", "06-01 00.csv", "a.json", "bad name.csv"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("uid,PlayNum,FanNum,ChargeNum\n"), 0o644))
	}
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	repo := NewSnapshotRepo(dir, time.UTC, func() time.Time { return now })

	files, err := repo.List(context.Background(), time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "06-01 00.csv", filepath.Base(files[0].Path))
	assert.Equal(t, "06-14 09.csv", filepath.Base(files[1].Path))
}

func TestSnapshotRepoReadDefaultsTimeFromName(t *testing.T) {
	dir := t.TempDir()
	content := "\ufeffmid,PlayNum,FanNum,ChargeNum,Name\n\"1,234\",100,10,nan,foo\n\n5678,200,20,3,bar\n"
	path := filepath.Join(dir, "06-14 09.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	repo := NewSnapshotRepo(dir, time.UTC, func() time.Time { return now })
	files, err := repo.List(context.Background(), time.Time{})
	require.NoError(t, err)
	require.Len(t, files, 1)

	rows, err := repo.Read(context.Background(), files[0])
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(1234), rows[0].UID)
	assert.Equal(t, files[0].Instant, rows[0].Time)
	assert.True(t, rows[0].ChargeNum != rows[0].ChargeNum)
	assert.Equal(t, "foo", rows[0].Extra["Name"])
	assert.Equal(t, int64(5678), rows[1].UID)
	assert.Equal(t, 3.0, rows[1].ChargeNum)
}

func TestSnapshotRepoReadMissingUIDColumn(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "06-14 09.csv")
	require.NoError(t, os.WriteFile(path, []byte("PlayNum,FanNum,ChargeNum\n1,2,3\n"), 0o644))

	repo := NewSnapshotRepo(dir, time.UTC, nil)
	_, err := repo.Read(context.Background(), SnapshotFile{Path: path, Instant: time.Now()})
	assert.ErrorIs(t, err, ErrMalformed)
}
