package metric

import (
	"testing"
	"time"

	"Upstat/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlySelectsRowsAfterFirstOfMonth(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	monthStart := MonthStart(now)
	require.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), monthStart)

	rows := []model.SeriesRow{
		{Time: monthStart.AddDate(0, -1, 0), PlayNum: 10, ChargeNum: 1},
		{Time: monthStart, PlayNum: 20, ChargeNum: 2},
		{Time: monthStart.Add(time.Hour), PlayNum: 30, ChargeNum: 3},
		{Time: now, PlayNum: 90, ChargeNum: 7},
	}

	window := After(rows, monthStart)
	require.Len(t, window, 2)

	stats, ok := Monthly(rows, now)
	require.True(t, ok)
	assert.Equal(t, 30.0, stats.ViewsFirstDayInMonth)
	assert.Equal(t, 60.0, stats.ViewsMonthly)
	assert.Equal(t, 7.0, stats.ChargesMonthly)
}

func TestMonthlyEmptyWindow(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	rows := []model.SeriesRow{{Time: now.AddDate(0, -2, 0), PlayNum: 1}}
	_, ok := Monthly(rows, now)
	assert.False(t, ok)
}

func TestWeeklyLinearSeries(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	start := now.Add(-40 * 24 * time.Hour)
	rows := make([]model.SeriesRow, 0, 40*24+1)
	for i := 0; i <= 40*24; i++ {
		rows = append(rows, model.SeriesRow{
			Time:    start.Add(time.Duration(i) * time.Hour),
			PlayNum: 1000 + float64(i),
			FanNum:  500 + float64(i)/24,
		})
	}

	stats, ok := Weekly(rows, now)
	require.True(t, ok)
	assert.InDelta(t, 24*7, stats.ViewsWeekly(), 1)
	assert.Equal(t, 1000.0+40*24, stats.ViewsNow)
	assert.InDelta(t, 7, stats.FanIncWeekly(), 0.1)
}
