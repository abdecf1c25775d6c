package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"Upstat/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRosterRepoLoadSourceDedups(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "source.json")
	require.NoError(t, os.WriteFile(source, []byte(`[{"uid": 1, "Name": "a"}, {"uid": "2"}, {"uid": 1, "Name": "dup"}]`), 0o644))

	repo := NewRosterRepo(source, filepath.Join(dir, "a.json"), "", nil)
	seeds, err := repo.LoadSource(context.Background())
	require.NoError(t, err)
	require.Len(t, seeds, 2)
	assert.Equal(t, int64(1), seeds[0].UID)
	assert.Equal(t, "a", seeds[0].Name)
	assert.Equal(t, int64(2), seeds[1].UID)
	assert.False(t, seeds[1].ViewsMonthly.Valid())
}

func TestRosterRepoLoadSourceMissing(t *testing.T) {
	dir := t.TempDir()
	repo := NewRosterRepo(filepath.Join(dir, "none.json"), filepath.Join(dir, "a.json"), "", nil)
	_, err := repo.LoadSource(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRosterRepoSaveBacksUpPreviousFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	now := time.Date(2024, 6, 15, 12, 30, 45, 0, time.Local)
	path := filepath.Join(dir, "a.json")
	backupDir := filepath.Join(dir, "backup")
	repo := NewRosterRepo("", path, backupDir, func() time.Time { return now })

	first := []model.RosterEntry{{UID: 1, Face: "f1", ViewsMonthly: 10}}
	backup, err := repo.Save(ctx, first)
	require.NoError(t, err)
	assert.Empty(t, backup)

	second := []model.RosterEntry{{UID: 2, Face: "f2", ViewsMonthly: 20}}
	backup, err = repo.Save(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(backupDir, "2024-06-15-12-30-45.json"), backup)

	old, err := ReadRosterFile(backup)
	require.NoError(t, err)
	require.Len(t, old, 1)
	assert.Equal(t, int64(1), old[0].UID)

	current, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, current, 1)
	assert.Equal(t, int64(2), current[0].UID)
	assert.Equal(t, model.Float(20), current[0].ViewsMonthly)
}

func TestForecastRepoSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	repo := NewForecastRepo(t.TempDir())
	points := []model.ForecastPoint{{Time: 1718000000, FanNum: 10, PlayNum: 100, ChannelValue: 1.5}}

	path, err := repo.Save(ctx, 5, points)
	require.NoError(t, err)
	assert.Equal(t, "5.json", filepath.Base(path))

	loaded, err := repo.Load(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, points, loaded)

	_, err = repo.Load(ctx, 6)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRosterRepoLoadSourceKeepsCounts(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "source.json")
	body := `[{"uid": 1, "PlayNum": "1,200", "FanNum": 30, "ChargeNum": "x", "Extra": true}]`
	require.NoError(t, os.WriteFile(source, []byte(body), 0o644))

	seeds, err := NewRosterRepo(source, filepath.Join(dir, "a.json"), "", nil).LoadSource(context.Background())
	require.NoError(t, err)
	require.Len(t, seeds, 1)
	assert.Equal(t, model.Float(1200), seeds[0].PlayNum)
	assert.Equal(t, model.Float(30), seeds[0].FanNum)
	assert.False(t, seeds[0].ChargeNum.Valid())
}
