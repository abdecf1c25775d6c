package service

import (
	"context"
	log "log/slog"
	"sort"
	"strconv"
	"time"

	"Upstat/internal/model"
	"Upstat/internal/repository"
)

// AggregateResult 一次归档的结果
type AggregateResult struct {
	// Touched 本轮合并过的 uid，升序
	Touched []int64
	Files   *BatchReport
	Merges  *BatchReport
}

// AggregatorService 扫描采集快照并按 uid 合并进时间序列
type AggregatorService interface {
	Run(ctx context.Context, windowStart time.Time) (*AggregateResult, error)
}

type aggregatorServiceImpl struct {
	snapshotRepo repository.SnapshotRepo
	seriesRepo   repository.SeriesRepo
}

func NewAggregatorService(snapshotRepo repository.SnapshotRepo, seriesRepo repository.SeriesRepo) AggregatorService {
	return &aggregatorServiceImpl{
		snapshotRepo: snapshotRepo,
		seriesRepo:   seriesRepo,
	}
}

// Run 只处理采集时刻不早于 windowStart 的文件；单个文件解析失败或单个 uid 写入失败只记录不中断
func (s *aggregatorServiceImpl) Run(ctx context.Context, windowStart time.Time) (*AggregateResult, error) {
	files, err := s.snapshotRepo.List(ctx, windowStart)
	if err != nil {
		return nil, err
	}

	result := &AggregateResult{
		Files:  NewBatchReport("snapshot"),
		Merges: NewBatchReport("merge"),
	}

	groups := make(map[int64][]model.SeriesRow)
	for _, f := range files {
		if err = ctx.Err(); err != nil {
			return result, err
		}
		rows, err := s.snapshotRepo.Read(ctx, f)
		if err != nil {
			log.ErrorContext(ctx, "failed to process snapshot", "file", f.Path, "err", err)
			result.Files.Fail(f.Path, 0, err)
			continue
		}
		for _, row := range rows {
			groups[row.UID] = append(groups[row.UID], row.SeriesRow())
		}
		result.Files.Succeed(f.Path, 0)
	}

	uids := make([]int64, 0, len(groups))
	for uid := range groups {
		uids = append(uids, uid)
	}
	sort.Slice(uids, func(i, j int) bool { return uids[i] < uids[j] })

	for _, uid := range uids {
		if err = ctx.Err(); err != nil {
			return result, err
		}
		unit := strconv.FormatInt(uid, 10)
		merged, err := s.seriesRepo.Merge(ctx, uid, groups[uid], windowStart)
		if err != nil {
			log.ErrorContext(ctx, "failed to merge series", "uid", uid, "err", err)
			result.Merges.Fail(unit, uid, err)
			continue
		}
		log.DebugContext(ctx, "series merged", "uid", uid, "rows", len(merged))
		result.Merges.Succeed(unit, uid)
		result.Touched = append(result.Touched, uid)
	}

	return result, nil
}
