package model

// ForecastPoint 预测序列中的一个点，Time 为 Unix 秒
type ForecastPoint struct {
	Time         int64 `json:"Time"`
	FanNum       int64 `json:"FanNum"`
	PlayNum      int64 `json:"PlayNum"`
	ChannelValue Float `json:"ChannelValue"`
}
