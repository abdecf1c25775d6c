package service

import (
	"context"
	"fmt"
	log "log/slog"
	"math"
	"math/rand/v2"
	"strconv"
	"time"

	"Upstat/internal/api/config"
	"Upstat/internal/model"
	"Upstat/internal/pkg/metric"
	"Upstat/internal/pkg/randwalk"
	"Upstat/internal/repository"
)

// 播放量连续相同视为没有新观测
const flatEpsilon = 1e-8

// ForecastParams 预测参数，时间单位为小时
type ForecastParams struct {
	Steps       int
	StrideHours float64
	Noise       float64
	Order       int
	WindowDays  int
}

func ForecastParamsFromConfig(cfg config.ForecastConfig) ForecastParams {
	return ForecastParams{
		Steps:       cfg.Steps,
		StrideHours: cfg.StrideHours,
		Noise:       cfg.Noise,
		Order:       cfg.Order,
		WindowDays:  cfg.WindowDays,
	}
}

// PredictResult 一次预测批处理的结果
type PredictResult struct {
	Report *BatchReport
	// Paths uid 到预测文件路径
	Paths map[int64]string
}

// ForecastService 用自助随机游走外推粉丝数与播放量
type ForecastService interface {
	Forecast(ctx context.Context, series []model.SeriesRow, info model.RosterEntry) ([]model.ForecastPoint, error)
	PredictAll(ctx context.Context) (*PredictResult, error)
}

type forecastServiceImpl struct {
	seriesRepo   repository.SeriesRepo
	rosterRepo   repository.RosterRepo
	forecastRepo repository.ForecastRepo
	params       ForecastParams
	seed         uint64
	now          func() time.Time
}

// NewForecastService seed 为 0 时每次预测都以当前时间作为随机种子，
// 否则每个 uid 的随机序列只由 seed 与 uid 决定
func NewForecastService(
	seriesRepo repository.SeriesRepo,
	rosterRepo repository.RosterRepo,
	forecastRepo repository.ForecastRepo,
	params ForecastParams,
	seed uint64,
	now func() time.Time,
) ForecastService {
	if now == nil {
		now = time.Now
	}
	return &forecastServiceImpl{
		seriesRepo:   seriesRepo,
		rosterRepo:   rosterRepo,
		forecastRepo: forecastRepo,
		params:       params,
		seed:         seed,
		now:          now,
	}
}

func (s *forecastServiceImpl) Forecast(ctx context.Context, series []model.SeriesRow, info model.RosterEntry) ([]model.ForecastPoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	windowStart := s.now().Add(-time.Duration(s.params.WindowDays) * 24 * time.Hour)
	rows := metric.After(metric.SortSeries(series), windowStart)
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	hours := func(t time.Time) float64 {
		return t.Sub(windowStart).Hours()
	}
	walk := randwalk.Params{
		Steps:  s.params.Steps,
		Stride: s.params.StrideHours,
		Order:  s.params.Order,
		Noise:  s.params.Noise,
	}

	var fanX, fanY []float64
	for _, r := range rows {
		if isFinite(r.FanNum) {
			fanX = append(fanX, hours(r.Time))
			fanY = append(fanY, r.FanNum)
		}
	}
	var playX, playY []float64
	for i := 1; i < len(rows); i++ {
		if math.Abs(rows[i].PlayNum-rows[i-1].PlayNum) > flatEpsilon && isFinite(rows[i].PlayNum) {
			playX = append(playX, hours(rows[i].Time))
			playY = append(playY, rows[i].PlayNum)
		}
	}

	// 以粉丝数的时间轴作为公共时间轴，两个字段步数与步长相同
	rng := s.rngFor(info.UID)
	xs, fans, err := randwalk.Walk(rng, fanX, fanY, walk)
	if err != nil {
		return nil, fmt.Errorf("FanNum: %w", err)
	}
	_, plays, err := randwalk.Walk(rng, playX, playY, walk)
	if err != nil {
		return nil, fmt.Errorf("PlayNum: %w", err)
	}

	points := make([]model.ForecastPoint, len(xs))
	for i := range xs {
		fan := int64(fans[i])
		points[i] = model.ForecastPoint{
			Time:         windowStart.Add(time.Duration(math.Round(xs[i]*3600)) * time.Second).Unix(),
			FanNum:       fan,
			PlayNum:      int64(plays[i]),
			ChannelValue: ProjectChannelValue(info, float64(fan)),
		}
	}
	return points, nil
}

// ProjectChannelValue 用预测粉丝数与当前名册中的收入、均播、均赞重新估值
func ProjectChannelValue(info model.RosterEntry, fans float64) model.Float {
	k := metric.RevenueProxy(info.ChargesMonthly.Float64(), info.ViewsMonthly.Float64())
	n := metric.FanLeverage(fans, info.AvgView.Float64(), info.AvgScore.Float64())
	return model.Float(metric.ChannelValue(info.IncomeYearly.Float64(), k, n))
}

func (s *forecastServiceImpl) PredictAll(ctx context.Context) (*PredictResult, error) {
	roster, err := s.rosterRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	byUID := make(map[int64]model.RosterEntry, len(roster))
	for _, e := range roster {
		byUID[e.UID] = e
	}

	uids, err := s.seriesRepo.ListUIDs(ctx)
	if err != nil {
		return nil, err
	}

	result := &PredictResult{
		Report: NewBatchReport("forecast"),
		Paths:  make(map[int64]string, len(uids)),
	}
	for _, uid := range uids {
		if err = ctx.Err(); err != nil {
			return result, err
		}
		unit := strconv.FormatInt(uid, 10)
		path, err := s.predictOne(ctx, uid, byUID)
		if err != nil {
			log.ErrorContext(ctx, "failed to predict", "uid", uid, "err", err)
			result.Report.Fail(unit, uid, err)
			continue
		}
		log.InfoContext(ctx, "finished predicting", "uid", uid, "path", path)
		result.Report.Succeed(unit, uid)
		result.Paths[uid] = path
	}
	return result, nil
}

func (s *forecastServiceImpl) predictOne(ctx context.Context, uid int64, roster map[int64]model.RosterEntry) (string, error) {
	info, ok := roster[uid]
	if !ok {
		return "", ErrRosterEntryMissing
	}
	series, err := s.seriesRepo.Load(ctx, uid)
	if err != nil {
		return "", err
	}
	points, err := s.Forecast(ctx, series, info)
	if err != nil {
		return "", err
	}
	return s.forecastRepo.Save(ctx, uid, points)
}

func (s *forecastServiceImpl) rngFor(uid int64) *rand.Rand {
	seed := s.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, uint64(uid)^0x9e3779b97f4a7c15))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
