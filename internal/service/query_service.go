package service

import (
	"context"
	"sort"

	"Upstat/internal/model"
	"Upstat/internal/repository"
)

// QueryService 只读查询，供 HTTP 接口使用
type QueryService interface {
	// Roster limit <= 0 时返回全部，按 ChannelValue 降序，无效值排在最后
	Roster(ctx context.Context, limit int) ([]model.RosterEntry, error)
	RosterEntry(ctx context.Context, uid int64) (*model.RosterEntry, error)
	Faces(ctx context.Context) ([]model.FaceEntry, error)
	Series(ctx context.Context, uid int64) ([]model.SeriesRow, error)
	Forecast(ctx context.Context, uid int64) ([]model.ForecastPoint, error)
}

type queryServiceImpl struct {
	seriesRepo   repository.SeriesRepo
	rosterRepo   repository.RosterRepo
	forecastRepo repository.ForecastRepo
}

func NewQueryService(seriesRepo repository.SeriesRepo, rosterRepo repository.RosterRepo, forecastRepo repository.ForecastRepo) QueryService {
	return &queryServiceImpl{
		seriesRepo:   seriesRepo,
		rosterRepo:   rosterRepo,
		forecastRepo: forecastRepo,
	}
}

func (s *queryServiceImpl) Roster(ctx context.Context, limit int) ([]model.RosterEntry, error) {
	entries, err := s.rosterRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].ChannelValue, entries[j].ChannelValue
		if a.Valid() != b.Valid() {
			return a.Valid()
		}
		return a > b
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (s *queryServiceImpl) RosterEntry(ctx context.Context, uid int64) (*model.RosterEntry, error) {
	entries, err := s.rosterRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].UID == uid {
			return &entries[i], nil
		}
	}
	return nil, ErrRosterEntryMissing
}

func (s *queryServiceImpl) Faces(ctx context.Context) ([]model.FaceEntry, error) {
	entries, err := s.rosterRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return ExportFaces(entries)
}

func (s *queryServiceImpl) Series(ctx context.Context, uid int64) ([]model.SeriesRow, error) {
	return s.seriesRepo.Load(ctx, uid)
}

func (s *queryServiceImpl) Forecast(ctx context.Context, uid int64) ([]model.ForecastPoint, error) {
	return s.forecastRepo.Load(ctx, uid)
}
