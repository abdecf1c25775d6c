package model

import "time"

// SnapshotRow 采集端某一时刻对某个 UP 主的一次观测
type SnapshotRow struct {
	UID       int64
	Time      time.Time
	PlayNum   float64
	FanNum    float64
	ChargeNum float64
	// Extra 透传列，原样写入序列文件
	Extra map[string]string
}

// SeriesRow 转换为序列行
func (s SnapshotRow) SeriesRow() SeriesRow {
	return SeriesRow{
		Time:      s.Time,
		PlayNum:   s.PlayNum,
		FanNum:    s.FanNum,
		ChargeNum: s.ChargeNum,
		Extra:     s.Extra,
	}
}
