package metric

import (
	"time"

	"Upstat/internal/model"
)

const (
	weekWindow   = 7 * 24 * time.Hour
	recentWindow = 30 * 24 * time.Hour
)

// MonthlyStats 本月窗口统计
type MonthlyStats struct {
	ViewsFirstDayInMonth float64
	ViewsMonthly         float64
	ChargesMonthly       float64
}

// WeeklyStats 近七天窗口统计
type WeeklyStats struct {
	ViewsWeekAgo float64
	ViewsNow     float64
	FansWeekAgo  float64
	FansNow      float64
}

func (w WeeklyStats) ViewsWeekly() float64 {
	return w.ViewsNow - w.ViewsWeekAgo
}

func (w WeeklyStats) FanIncWeekly() float64 {
	return w.FansNow - w.FansWeekAgo
}

// MonthStart 当前自然月第一天零点
func MonthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

// WeekStart 一周窗口起点
func WeekStart(now time.Time) time.Time {
	return now.Add(-weekWindow)
}

// RecentStart 近期投稿窗口起点
func RecentStart(now time.Time) time.Time {
	return now.Add(-recentWindow)
}

// Monthly 计算本月窗口，rows 需按时间升序；窗口为空时 ok 为 false
func Monthly(rows []model.SeriesRow, now time.Time) (stats MonthlyStats, ok bool) {
	window := After(rows, MonthStart(now))
	if len(window) == 0 {
		return stats, false
	}
	first, last := window[0], window[len(window)-1]
	return MonthlyStats{
		ViewsFirstDayInMonth: first.PlayNum,
		ViewsMonthly:         last.PlayNum - first.PlayNum,
		ChargesMonthly:       last.ChargeNum,
	}, true
}

// Weekly 计算近七天窗口，rows 需按时间升序；窗口为空时 ok 为 false
func Weekly(rows []model.SeriesRow, now time.Time) (stats WeeklyStats, ok bool) {
	window := After(rows, WeekStart(now))
	if len(window) == 0 {
		return stats, false
	}
	first, last := window[0], window[len(window)-1]
	return WeeklyStats{
		ViewsWeekAgo: first.PlayNum,
		ViewsNow:     last.PlayNum,
		FansWeekAgo:  first.FanNum,
		FansNow:      last.FanNum,
	}, true
}
