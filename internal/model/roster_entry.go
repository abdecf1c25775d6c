package model

// RosterEntry 名册中一个 UP 主的原始指标与全部衍生指数，每轮整体重算
type RosterEntry struct {
	UID  int64  `json:"uid"`
	Name string `json:"Name,omitempty"`
	Face string `json:"Face"`

	PlayNum   Float `json:"PlayNum"`
	FanNum    Float `json:"FanNum"`
	ChargeNum Float `json:"ChargeNum"`

	ViewsFirstDayInMonth Float `json:"ViewsFirstDayInMonth"`
	ViewsMonthly         Float `json:"ViewsMonthly"`
	ChargesMonthly       Float `json:"ChargesMonthly"`

	ViewsWeekAgo Float `json:"ViewsWeekAgo"`
	ViewsNow     Float `json:"ViewsNow"`
	ViewsWeekly  Float `json:"ViewsWeekly"`
	FansWeekAgo  Float `json:"FansWeekAgo"`
	FansNow      Float `json:"FansNow"`
	FanIncWeekly Float `json:"FanIncWeekly"`

	RecentSince int64 `json:"RecentSince"`
	RecentCount int   `json:"RecentCount"`
	TotalCount  int   `json:"TotalCount"`
	AvgView     Float `json:"AvgView"`
	AvgScore    Float `json:"AvgScore"`
	AvgQuality  Float `json:"AvgQuality"`
	AvgDuration Float `json:"AvgDuration"`
	Frequency   Float `json:"Frequency"`

	WorkIndex        Float `json:"WorkIndex"`
	FanIncPercentage Float `json:"FanIncPercentage"`
	FanIncIndex      Float `json:"FanIncIndex"`
	SummaryIndex     Float `json:"SummaryIndex"`
	IncomeYearly     Float `json:"IncomeYearly"`
	IncomePerVideo   Float `json:"IncomePerVideo"`
	ChannelValue     Float `json:"ChannelValue"`
}

// NewRosterEntry 创建所有指标均为 NaN 的名册条目
func NewRosterEntry(uid int64, name string) RosterEntry {
	nan := NaN()
	return RosterEntry{
		UID:  uid,
		Name: name,

		PlayNum:   nan,
		FanNum:    nan,
		ChargeNum: nan,

		ViewsFirstDayInMonth: nan,
		ViewsMonthly:         nan,
		ChargesMonthly:       nan,

		ViewsWeekAgo: nan,
		ViewsNow:     nan,
		ViewsWeekly:  nan,
		FansWeekAgo:  nan,
		FansNow:      nan,
		FanIncWeekly: nan,

		AvgView:     nan,
		AvgScore:    nan,
		AvgQuality:  nan,
		AvgDuration: nan,
		Frequency:   nan,

		WorkIndex:        nan,
		FanIncPercentage: nan,
		FanIncIndex:      nan,
		SummaryIndex:     nan,
		IncomeYearly:     nan,
		IncomePerVideo:   nan,
		ChannelValue:     nan,
	}
}
