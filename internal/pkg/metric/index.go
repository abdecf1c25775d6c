package metric

import "math"

// 收益估算常量：87% 播放按千次 5 元，13% 按千次 15 元并乘以充电系数
const (
	baseShare      = 0.87
	baseRate       = 5.0 / 1000
	premiumShare   = 0.13
	premiumRate    = 15.0 / 1000
	valueMultiple  = 3.49
	workIndexPower = 0.65
	fanIndexPower  = 0.75
	summaryPower   = 0.7
	qualityPower   = 1.1
)

// Inputs 衍生指数的输入，缺失值用 NaN 表示
type Inputs struct {
	ViewsWeekAgo   float64
	ViewsNow       float64
	FansWeekAgo    float64
	FansNow        float64
	ViewsMonthly   float64
	ChargesMonthly float64
	AvgView        float64
	AvgScore       float64
	AvgQuality     float64
	RecentCount    int
}

// Indices 衍生指数，任何非有限结果均为 NaN
type Indices struct {
	WorkIndex        float64
	FanIncPercentage float64
	FanIncIndex      float64
	SummaryIndex     float64
	RevenueProxy     float64
	FanLeverage      float64
	IncomeYearly     float64
	IncomePerVideo   float64
	ChannelValue     float64
}

// Finite 非有限值归一为 NaN
func Finite(x float64) float64 {
	if math.IsInf(x, 0) {
		return math.NaN()
	}
	return x
}

// pow 负底数的分数次幂在 math.Pow 中即为 NaN，这里只需处理 Inf
func pow(base, exp float64) float64 {
	return Finite(math.Pow(base, exp))
}

func div(a, b float64) float64 {
	if b == 0 {
		return math.NaN()
	}
	return Finite(a / b)
}

// Compute 计算全部衍生指数
func Compute(in Inputs) Indices {
	var out Indices
	recent := float64(in.RecentCount)
	viewsDelta := in.ViewsNow - in.ViewsWeekAgo
	fansDelta := in.FansNow - in.FansWeekAgo

	out.WorkIndex = Finite(pow(
		(pow(in.AvgQuality, qualityPower)+viewsDelta/10)*div(in.AvgQuality-in.AvgView, in.AvgView)*recent/30,
		workIndexPower,
	) / 10)

	out.FanIncPercentage = div(fansDelta, in.FansWeekAgo)
	out.FanIncIndex = Finite(pow(fansDelta*out.FanIncPercentage, fanIndexPower) * sign(fansDelta))

	out.SummaryIndex = Finite((out.WorkIndex + out.FanIncIndex) *
		pow(in.FansNow/1000+viewsDelta/10000, summaryPower) / 1000)

	out.RevenueProxy = RevenueProxy(in.ChargesMonthly, in.ViewsMonthly)
	out.FanLeverage = FanLeverage(in.FansNow, in.AvgView, in.AvgScore)

	out.IncomeYearly = Finite((baseShare*baseRate + premiumShare*premiumRate*out.RevenueProxy) *
		in.AvgView * recent * 30)
	if in.RecentCount == 0 {
		out.IncomePerVideo = 0
	} else {
		out.IncomePerVideo = div(out.IncomeYearly, recent*30)
	}

	out.ChannelValue = ChannelValue(out.IncomeYearly, out.RevenueProxy, out.FanLeverage)
	return out
}

// RevenueProxy 充电播放比系数 K
func RevenueProxy(chargesMonthly, viewsMonthly float64) float64 {
	return Finite(math.Sqrt(div(chargesMonthly, viewsMonthly)) * 100)
}

// FanLeverage 粉丝杠杆系数 N
func FanLeverage(fans, avgView, avgScore float64) float64 {
	return Finite(fans * math.Sqrt(div(fans, avgView)*2*div(avgScore, avgView)))
}

// ChannelValue 频道估值
func ChannelValue(incomeYearly, k, n float64) float64 {
	return Finite(incomeYearly/2*valueMultiple + k*n*math.Log(n)/2)
}

func sign(x float64) float64 {
	if x >= 0 {
		return 1
	}
	return -1
}
