package job

import (
	"context"
	log "log/slog"
	"time"

	"Upstat/internal/pkg/metric"
	"Upstat/internal/service"
)

// ArchiveJob 把本月的采集快照合并进各 UP 主的时间序列
type ArchiveJob struct {
	aggSvc service.AggregatorService
	now    func() time.Time
}

func NewArchiveJob(aggSvc service.AggregatorService, now func() time.Time) *ArchiveJob {
	if now == nil {
		now = time.Now
	}
	return &ArchiveJob{aggSvc: aggSvc, now: now}
}

func (s *ArchiveJob) Run() {
	_, _ = s.Execute(newJobContext("archive"))
}

func (s *ArchiveJob) Execute(ctx context.Context) (*service.AggregateResult, error) {
	windowStart := metric.MonthStart(s.now())
	log.InfoContext(ctx, "start archiving snapshots", "window_start", windowStart)

	result, err := s.aggSvc.Run(ctx, windowStart)
	if err != nil {
		log.ErrorContext(ctx, "archive job failed", "err", err)
		return result, err
	}
	log.InfoContext(ctx, "archive job finished",
		"touched", len(result.Touched),
		"files", result.Files.String(),
		"merges", result.Merges.String(),
	)
	return result, nil
}
