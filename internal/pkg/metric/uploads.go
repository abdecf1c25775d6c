package metric

import (
	"math"
	"sort"
	"time"

	"Upstat/internal/model"

	"github.com/montanaflynn/stats"
)

const lastUploads = 10

// UploadSummary 最近十个稿件的汇总
type UploadSummary struct {
	RecentSince time.Time
	RecentCount int
	TotalCount  int
	AvgView     float64
	AvgScore    float64
	AvgQuality  float64
	AvgDuration float64
	Frequency   float64
}

// SummarizeUploads 统计近 30 天投稿数与最近十个稿件的平均表现
func SummarizeUploads(history []model.UploadRecord, now time.Time) UploadSummary {
	since := RecentStart(now)
	summary := UploadSummary{
		RecentSince: since,
		AvgView:     math.NaN(),
		AvgScore:    math.NaN(),
		AvgQuality:  math.NaN(),
		AvgDuration: math.NaN(),
		Frequency:   math.NaN(),
	}

	sorted := make([]model.UploadRecord, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UploadTime.Before(sorted[j].UploadTime)
	})

	for _, r := range sorted {
		if !r.UploadTime.Before(since) {
			summary.RecentCount++
		}
	}

	if len(sorted) > lastUploads {
		sorted = sorted[len(sorted)-lastUploads:]
	}
	summary.TotalCount = len(sorted)
	if len(sorted) == 0 {
		return summary
	}

	views := make(stats.Float64Data, 0, len(sorted))
	scores := make(stats.Float64Data, 0, len(sorted))
	durations := make(stats.Float64Data, 0, len(sorted))
	for _, r := range sorted {
		views = append(views, r.View)
		scores = append(scores, r.Score())
		durations = append(durations, r.Duration)
	}

	summary.AvgView = mean(views)
	summary.AvgScore = mean(scores)
	summary.AvgDuration = mean(durations)
	summary.AvgQuality = summary.AvgView + summary.AvgScore

	oldest, newest := sorted[0].UploadTime, sorted[len(sorted)-1].UploadTime
	days := math.Floor(newest.Sub(oldest).Hours() / 24)
	summary.Frequency = days / float64(summary.TotalCount)
	return summary
}

func mean(data stats.Float64Data) float64 {
	m, err := stats.Mean(data)
	if err != nil {
		return math.NaN()
	}
	return m
}
