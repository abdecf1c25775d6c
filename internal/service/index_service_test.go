package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"Upstat/internal/model"
	"Upstat/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeFansWeekAgoZero(t *testing.T) {
	svc := NewIndexService(nil, nil, nil, &fakeFaceService{faces: map[int64]string{1: "face-1"}}, fixedNow)
	series := []model.SeriesRow{
		{Time: testNow.Add(-6 * 24 * time.Hour), PlayNum: 100, FanNum: 0, ChargeNum: 1},
		{Time: testNow, PlayNum: 200, FanNum: 50, ChargeNum: 2},
	}

	entry := svc.Compute(context.Background(), model.RosterEntry{UID: 1}, series, nil)

	assert.Equal(t, "face-1", entry.Face)
	assert.Equal(t, model.Float(100), entry.ViewsWeekly)
	assert.Equal(t, model.Float(50), entry.FanIncWeekly)
	assert.False(t, entry.FanIncPercentage.Valid())
	assert.False(t, entry.FanIncIndex.Valid())
	assert.False(t, entry.SummaryIndex.Valid())
}

func TestComputeWithoutInputs(t *testing.T) {
	svc := NewIndexService(nil, nil, nil, &fakeFaceService{}, fixedNow)

	entry := svc.Compute(context.Background(), model.RosterEntry{UID: 9, Name: "n"}, nil, nil)

	assert.Equal(t, int64(9), entry.UID)
	assert.Equal(t, "n", entry.Name)
	assert.Equal(t, "Not Found", entry.Face)
	assert.False(t, entry.ViewsMonthly.Valid())
	assert.False(t, entry.ViewsWeekly.Valid())
	assert.False(t, entry.AvgView.Valid())
	assert.False(t, entry.ChannelValue.Valid())
	assert.Equal(t, 0, entry.RecentCount)
	assert.Equal(t, model.Float(0), entry.IncomePerVideo)
}

func TestComputeUploadAverages(t *testing.T) {
	svc := NewIndexService(nil, nil, nil, &fakeFaceService{}, fixedNow)
	history := []model.UploadRecord{
		{UploadTime: testNow.Add(-40 * 24 * time.Hour), View: 1000, Like: 10, Coin: 0, Save: 0, Duration: 60},
		{UploadTime: testNow.Add(-10 * 24 * time.Hour), View: 3000, Like: 30, Coin: 0, Save: 0, Duration: 120},
	}

	entry := svc.Compute(context.Background(), model.RosterEntry{UID: 1}, nil, history)

	assert.Equal(t, 1, entry.RecentCount)
	assert.Equal(t, 2, entry.TotalCount)
	assert.Equal(t, model.Float(2000), entry.AvgView)
	assert.Equal(t, model.Float(20), entry.AvgScore)
	assert.Equal(t, model.Float(2020), entry.AvgQuality)
	assert.Equal(t, model.Float(90), entry.AvgDuration)
	assert.Equal(t, model.Float(15), entry.Frequency)
}

func TestRefreshRosterEndToEnd(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	seriesDir := filepath.Join(root, "A")
	historyDir := filepath.Join(root, "HistoricalRecords")
	source := filepath.Join(root, "Apic", "a.json")
	rosterPath := filepath.Join(root, "a.json")
	require.NoError(t, os.MkdirAll(historyDir, 0o755))
	require.NoError(t, os.MkdirAll(filepath.Dir(source), 0o755))

	seriesRepo := repository.NewSeriesRepo(seriesDir, time.UTC)
	start := testNow.Add(-40 * 24 * time.Hour)
	rows := make([]model.SeriesRow, 0, 40*24+1)
	for i := 0; i <= 40*24; i++ {
		rows = append(rows, model.SeriesRow{
			Time:      start.Add(time.Duration(i) * time.Hour),
			PlayNum:   1000 + float64(i),
			FanNum:    500 + float64(i/24),
			ChargeNum: 3,
		})
	}
	require.NoError(t, seriesRepo.Save(ctx, 1, rows))
	require.NoError(t, os.WriteFile(filepath.Join(historyDir, "1.json"),
		[]byte(`[{"AVNum": 1, "UploadTime": "2024-06-10 10:00:00", "View": 500, "Like": 5}]`), 0o644))
	require.NoError(t, os.WriteFile(source, []byte(`[{"uid": 1, "Name": "one"}, {"uid": 2}]`), 0o644))

	rosterRepo := repository.NewRosterRepo(source, rosterPath, filepath.Join(root, "backup"), fixedNow)
	svc := NewIndexService(
		seriesRepo,
		repository.NewHistoryRepo(historyDir, time.UTC),
		rosterRepo,
		&fakeFaceService{faces: map[int64]string{1: "face-1"}},
		fixedNow,
	)

	result, err := svc.RefreshRoster(ctx)
	require.NoError(t, err)
	require.Len(t, result.Entries, 2)
	assert.Equal(t, rosterPath, result.Path)
	assert.Empty(t, result.Backup)
	assert.Equal(t, 1, result.Report.Succeeded())
	require.Len(t, result.Report.Failures(), 1)
	assert.Equal(t, int64(2), result.Report.Failures()[0].UID)

	one := result.Entries[0]
	assert.Equal(t, "one", one.Name)
	assert.Equal(t, "face-1", one.Face)
	assert.InDelta(t, 24*7, one.ViewsWeekly.Float64(), 1)
	assert.Equal(t, model.Float(3), one.ChargesMonthly)
	assert.Equal(t, 1, one.RecentCount)

	two := result.Entries[1]
	assert.Equal(t, int64(2), two.UID)
	assert.False(t, two.ViewsWeekly.Valid())

	saved, err := rosterRepo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, int64(1), saved[0].UID)

	again, err := svc.RefreshRoster(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, again.Backup)
}

func TestBuildRosterFallsBackToSeriesFiles(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	seriesRepo := repository.NewSeriesRepo(root, time.UTC)
	require.NoError(t, seriesRepo.Save(ctx, 5, []model.SeriesRow{{Time: testNow, PlayNum: 1, FanNum: 1, ChargeNum: 0}}))
	require.NoError(t, seriesRepo.Save(ctx, 3, []model.SeriesRow{{Time: testNow, PlayNum: 1, FanNum: 1, ChargeNum: 0}}))

	svc := NewIndexService(
		seriesRepo,
		repository.NewHistoryRepo(filepath.Join(root, "none"), time.UTC),
		repository.NewRosterRepo(filepath.Join(root, "missing.json"), filepath.Join(root, "a.json"), "", fixedNow),
		&fakeFaceService{},
		fixedNow,
	)

	entries, report, err := svc.BuildRoster(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(3), entries[0].UID)
	assert.Equal(t, int64(5), entries[1].UID)
	// 历史文件缺失
	assert.Len(t, report.Failures(), 2)
}

func TestComputeKeepsSourceCountsWhenWindowsEmpty(t *testing.T) {
	svc := NewIndexService(nil, nil, nil, &fakeFaceService{}, fixedNow)
	seed := model.NewRosterEntry(4, "")
	seed.PlayNum = 900
	seed.FanNum = 80
	seed.ChargeNum = 7

	old := []model.SeriesRow{{Time: testNow.AddDate(0, -2, 0), PlayNum: 1, FanNum: 1, ChargeNum: 1}}
	entry := svc.Compute(context.Background(), seed, old, nil)
	assert.Equal(t, model.Float(900), entry.PlayNum)
	assert.Equal(t, model.Float(80), entry.FanNum)
	assert.Equal(t, model.Float(7), entry.ChargeNum)

	recent := []model.SeriesRow{
		{Time: testNow.Add(-2 * time.Hour), PlayNum: 100, FanNum: 10, ChargeNum: 1},
		{Time: testNow, PlayNum: 200, FanNum: 20, ChargeNum: 2},
	}
	entry = svc.Compute(context.Background(), seed, recent, nil)
	assert.Equal(t, model.Float(200), entry.PlayNum)
	assert.Equal(t, model.Float(20), entry.FanNum)
}
