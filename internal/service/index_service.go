package service

import (
	"context"
	"errors"
	log "log/slog"
	"strconv"
	"time"

	"Upstat/internal/model"
	"Upstat/internal/pkg/consts"
	"Upstat/internal/pkg/metric"
	"Upstat/internal/repository"
)

// RosterResult 一次名册计算的结果
type RosterResult struct {
	Entries []model.RosterEntry
	Report  *BatchReport
	Path    string
	Backup  string
}

// IndexService 根据时间序列与投稿历史计算名册中的各项指数
type IndexService interface {
	// Compute 纯计算，唯一的外部调用是头像查询
	Compute(ctx context.Context, seed model.RosterEntry, series []model.SeriesRow, history []model.UploadRecord) model.RosterEntry
	BuildRoster(ctx context.Context) ([]model.RosterEntry, *BatchReport, error)
	// RefreshRoster 计算并覆盖名册文件
	RefreshRoster(ctx context.Context) (*RosterResult, error)
}

type indexServiceImpl struct {
	seriesRepo  repository.SeriesRepo
	historyRepo repository.HistoryRepo
	rosterRepo  repository.RosterRepo
	faceSvc     FaceService
	now         func() time.Time
}

func NewIndexService(
	seriesRepo repository.SeriesRepo,
	historyRepo repository.HistoryRepo,
	rosterRepo repository.RosterRepo,
	faceSvc FaceService,
	now func() time.Time,
) IndexService {
	if now == nil {
		now = time.Now
	}
	return &indexServiceImpl{
		seriesRepo:  seriesRepo,
		historyRepo: historyRepo,
		rosterRepo:  rosterRepo,
		faceSvc:     faceSvc,
		now:         now,
	}
}

func (s *indexServiceImpl) Compute(ctx context.Context, seed model.RosterEntry, series []model.SeriesRow, history []model.UploadRecord) model.RosterEntry {
	now := s.now()
	entry := model.NewRosterEntry(seed.UID, seed.Name)
	// 窗口为空时保留采集端给出的计数
	entry.PlayNum = seed.PlayNum
	entry.FanNum = seed.FanNum
	entry.ChargeNum = seed.ChargeNum
	rows := metric.SortSeries(series)

	if m, ok := metric.Monthly(rows, now); ok {
		entry.ViewsFirstDayInMonth = model.Float(m.ViewsFirstDayInMonth)
		entry.ViewsMonthly = model.Float(m.ViewsMonthly)
		entry.ChargesMonthly = model.Float(m.ChargesMonthly)
		entry.ChargeNum = entry.ChargesMonthly
	}

	if w, ok := metric.Weekly(rows, now); ok {
		entry.ViewsWeekAgo = model.Float(w.ViewsWeekAgo)
		entry.ViewsNow = model.Float(w.ViewsNow)
		entry.ViewsWeekly = model.Float(w.ViewsWeekly())
		entry.PlayNum = entry.ViewsNow
		entry.FansWeekAgo = model.Float(w.FansWeekAgo)
		entry.FansNow = model.Float(w.FansNow)
		entry.FanIncWeekly = model.Float(w.FanIncWeekly())
		entry.FanNum = entry.FansNow
	}

	uploads := metric.SummarizeUploads(history, now)
	entry.RecentSince = uploads.RecentSince.Unix()
	entry.RecentCount = uploads.RecentCount
	entry.TotalCount = uploads.TotalCount
	entry.AvgView = model.Float(uploads.AvgView)
	entry.AvgScore = model.Float(uploads.AvgScore)
	entry.AvgQuality = model.Float(uploads.AvgQuality)
	entry.AvgDuration = model.Float(uploads.AvgDuration)
	entry.Frequency = model.Float(uploads.Frequency)

	idx := metric.Compute(metric.Inputs{
		ViewsWeekAgo:   entry.ViewsWeekAgo.Float64(),
		ViewsNow:       entry.ViewsNow.Float64(),
		FansWeekAgo:    entry.FansWeekAgo.Float64(),
		FansNow:        entry.FansNow.Float64(),
		ViewsMonthly:   entry.ViewsMonthly.Float64(),
		ChargesMonthly: entry.ChargesMonthly.Float64(),
		AvgView:        entry.AvgView.Float64(),
		AvgScore:       entry.AvgScore.Float64(),
		AvgQuality:     entry.AvgQuality.Float64(),
		RecentCount:    entry.RecentCount,
	})
	entry.WorkIndex = model.Float(idx.WorkIndex)
	entry.FanIncPercentage = model.Float(idx.FanIncPercentage)
	entry.FanIncIndex = model.Float(idx.FanIncIndex)
	entry.SummaryIndex = model.Float(idx.SummaryIndex)
	entry.IncomeYearly = model.Float(idx.IncomeYearly)
	entry.IncomePerVideo = model.Float(idx.IncomePerVideo)
	entry.ChannelValue = model.Float(idx.ChannelValue)

	entry.Face = s.faceSvc.Lookup(ctx, seed.UID)
	return entry
}

func (s *indexServiceImpl) BuildRoster(ctx context.Context) ([]model.RosterEntry, *BatchReport, error) {
	seeds, err := s.seeds(ctx)
	if err != nil {
		return nil, nil, err
	}

	report := NewBatchReport("index")
	entries := make([]model.RosterEntry, 0, len(seeds))
	for i, seed := range seeds {
		if err = ctx.Err(); err != nil {
			return entries, report, err
		}
		if (i+1)%consts.ProgressEvery == 0 {
			log.InfoContext(ctx, "computing roster", "progress", i+1, "total", len(seeds))
		}

		var errs []error
		series, err := s.seriesRepo.Load(ctx, seed.UID)
		if err != nil {
			errs = append(errs, err)
		}
		history, err := s.historyRepo.Load(ctx, seed.UID)
		if err != nil {
			errs = append(errs, err)
		}

		entries = append(entries, s.Compute(ctx, seed, series, history))

		unit := strconv.FormatInt(seed.UID, 10)
		if len(errs) > 0 {
			err = errors.Join(errs...)
			log.ErrorContext(ctx, "failed to compute", "uid", seed.UID, "err", err)
			report.Fail(unit, seed.UID, err)
			continue
		}
		report.Succeed(unit, seed.UID)
	}
	return entries, report, nil
}

func (s *indexServiceImpl) RefreshRoster(ctx context.Context) (*RosterResult, error) {
	entries, report, err := s.BuildRoster(ctx)
	if err != nil {
		return nil, err
	}
	backup, err := s.rosterRepo.Save(ctx, entries)
	if err != nil {
		return nil, err
	}
	return &RosterResult{
		Entries: entries,
		Report:  report,
		Path:    s.rosterRepo.Path(),
		Backup:  backup,
	}, nil
}

// seeds 优先使用采集端名册，缺失或损坏时退回到已有的序列文件
func (s *indexServiceImpl) seeds(ctx context.Context) ([]model.RosterEntry, error) {
	seeds, err := s.rosterRepo.LoadSource(ctx)
	if err == nil {
		return seeds, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if !errors.Is(err, repository.ErrNotFound) {
		log.WarnContext(ctx, "roster source unreadable, falling back to series files", "err", err)
	}

	uids, err := s.seriesRepo.ListUIDs(ctx)
	if err != nil {
		return nil, err
	}
	seeds = make([]model.RosterEntry, 0, len(uids))
	for _, uid := range uids {
		seeds = append(seeds, model.NewRosterEntry(uid, ""))
	}
	return seeds, nil
}
