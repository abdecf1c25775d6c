package metric

import (
	"testing"
	"time"

	"Upstat/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hourly(start time.Time, n int, play float64) []model.SeriesRow {
	rows := make([]model.SeriesRow, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, model.SeriesRow{
			Time:    start.Add(time.Duration(i) * time.Hour),
			PlayNum: play + float64(i),
			FanNum:  100,
		})
	}
	return rows
}

func TestSortSeriesDedupKeepsLast(t *testing.T) {
	t0 := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	rows := []model.SeriesRow{
		{Time: t0.Add(2 * time.Hour), PlayNum: 3},
		{Time: t0, PlayNum: 1},
		{Time: t0.Add(2 * time.Hour), PlayNum: 30},
	}
	got := SortSeries(rows)
	require.Len(t, got, 2)
	assert.Equal(t, 1.0, got[0].PlayNum)
	assert.Equal(t, 30.0, got[1].PlayNum)
}

func TestMergeWindowIdempotent(t *testing.T) {
	windowStart := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	prior := hourly(windowStart.Add(-48*time.Hour), 72, 0)
	fresh := hourly(windowStart, 30, 1000)

	once := MergeWindow(prior, fresh, windowStart)
	twice := MergeWindow(once, fresh, windowStart)
	assert.Equal(t, once, twice)
}

func TestMergeWindowCoverage(t *testing.T) {
	windowStart := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	prior := hourly(windowStart.Add(-48*time.Hour), 72, 0)
	fresh := hourly(windowStart.Add(2*time.Hour), 10, 1000)

	merged := MergeWindow(prior, fresh, windowStart)

	// 48 条窗口前的历史 + 10 条新数据，窗口内旧数据被替换
	require.Len(t, merged, 58)
	for _, r := range merged {
		if r.Time.Before(windowStart) {
			assert.Less(t, r.PlayNum, 1000.0)
		} else {
			assert.GreaterOrEqual(t, r.PlayNum, 1000.0)
		}
	}
	for i := 1; i < len(merged); i++ {
		assert.True(t, merged[i-1].Time.Before(merged[i].Time))
	}
}

func TestMergeWindowFreshWinsOnConflict(t *testing.T) {
	windowStart := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	ts := windowStart.Add(-time.Hour)
	prior := []model.SeriesRow{{Time: ts, PlayNum: 1}}
	fresh := []model.SeriesRow{{Time: ts, PlayNum: 2}}

	merged := MergeWindow(prior, fresh, windowStart)
	require.Len(t, merged, 1)
	assert.Equal(t, 2.0, merged[0].PlayNum)
}
