package metric

import (
	"sort"
	"time"

	"Upstat/internal/model"
)

// SortSeries 返回按时间升序排列的新切片，同一时间戳保留最后出现的行
func SortSeries(rows []model.SeriesRow) []model.SeriesRow {
	byTime := make(map[int64]int, len(rows))
	out := make([]model.SeriesRow, 0, len(rows))
	for _, r := range rows {
		key := r.Time.UnixNano()
		if i, ok := byTime[key]; ok {
			out[i] = r
			continue
		}
		byTime[key] = len(out)
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time.Before(out[j].Time)
	})
	return out
}

// MergeWindow 合并已有序列与新窗口数据：
// 保留 prior 中早于 windowStart 的行，加上 fresh 全部行，时间戳冲突时 fresh 优先
func MergeWindow(prior, fresh []model.SeriesRow, windowStart time.Time) []model.SeriesRow {
	merged := make([]model.SeriesRow, 0, len(prior)+len(fresh))
	for _, r := range prior {
		if r.Time.Before(windowStart) {
			merged = append(merged, r)
		}
	}
	merged = append(merged, fresh...)
	return SortSeries(merged)
}

// After 返回时间严格晚于 since 的行，输入需已排序
func After(rows []model.SeriesRow, since time.Time) []model.SeriesRow {
	i := sort.Search(len(rows), func(i int) bool {
		return rows[i].Time.After(since)
	})
	return rows[i:]
}
