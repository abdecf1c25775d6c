package model

import "time"

// SeriesRow UP 主时间序列中的一行，按 Time 严格递增且唯一
type SeriesRow struct {
	Time      time.Time
	PlayNum   float64
	FanNum    float64
	ChargeNum float64
	Extra     map[string]string
}
