package dto

import (
	"Upstat/internal/model"
	"Upstat/internal/pkg/util"
)

// SeriesPointDTO 时间序列中的一个点
type SeriesPointDTO struct {
	Time      string      `json:"Time"`
	PlayNum   model.Float `json:"PlayNum"`
	FanNum    model.Float `json:"FanNum"`
	ChargeNum model.Float `json:"ChargeNum"`
}

// SeriesDTO 单个 UP 主的时间序列
type SeriesDTO struct {
	UID    int64             `json:"uid"`
	Points []*SeriesPointDTO `json:"points"`
}

func NewSeriesDTO(uid int64, rows []model.SeriesRow) *SeriesDTO {
	points := make([]*SeriesPointDTO, 0, len(rows))
	for _, r := range rows {
		points = append(points, &SeriesPointDTO{
			Time:      r.Time.Format(util.TimeLayout),
			PlayNum:   model.Float(r.PlayNum),
			FanNum:    model.Float(r.FanNum),
			ChargeNum: model.Float(r.ChargeNum),
		})
	}
	return &SeriesDTO{UID: uid, Points: points}
}

// ForecastDTO 单个 UP 主的预测结果
type ForecastDTO struct {
	UID    int64                 `json:"uid"`
	Points []model.ForecastPoint `json:"points"`
}
