package job

import (
	"context"
	"errors"
	log "log/slog"
	"sync"
	"time"

	"Upstat/internal/pkg/redis"
	"Upstat/internal/service"
)

// PipelineStatus 最近一次流水线运行的状态
type PipelineStatus struct {
	Running    bool      `json:"running"`
	Runs       int       `json:"runs"`
	LastStart  time.Time `json:"last_start"`
	LastFinish time.Time `json:"last_finish"`
	LastError  string    `json:"last_error,omitempty"`
	// Reports 各阶段的批处理摘要
	Reports []string `json:"reports"`
}

// PipelineJob 依次执行归档、名册计算与预测
type PipelineJob struct {
	archive *ArchiveJob
	mining  *MiningJob
	predict *PredictJob
	// lock 为空时不做跨进程互斥
	lock *redis.RunLock
	now  func() time.Time

	mu     sync.Mutex
	status PipelineStatus
}

func NewPipelineJob(archive *ArchiveJob, mining *MiningJob, predict *PredictJob, lock *redis.RunLock) *PipelineJob {
	return &PipelineJob{
		archive: archive,
		mining:  mining,
		predict: predict,
		lock:    lock,
		now:     time.Now,
	}
}

func (s *PipelineJob) Run() {
	_ = s.Execute(newJobContext("pipeline"))
}

func (s *PipelineJob) Execute(ctx context.Context) error {
	if s.lock != nil {
		release, ok, err := s.lock.Acquire(ctx)
		if err != nil {
			log.ErrorContext(ctx, "acquire pipeline lock failed", "err", err)
			return err
		}
		if !ok {
			log.WarnContext(ctx, "pipeline already running elsewhere, skipping")
			return service.ErrRunInProgress
		}
		defer release()
	}

	s.begin()
	var (
		errs    []error
		reports []string
	)

	if agg, err := s.archive.Execute(ctx); err != nil {
		errs = append(errs, err)
	} else {
		reports = append(reports, agg.Files.String(), agg.Merges.String())
	}

	if ctx.Err() == nil {
		if roster, err := s.mining.Execute(ctx); err != nil {
			errs = append(errs, err)
		} else {
			reports = append(reports, roster.Report.String())
		}
	}

	if ctx.Err() == nil {
		if pred, err := s.predict.Execute(ctx); err != nil {
			errs = append(errs, err)
		} else {
			reports = append(reports, pred.Report.String())
		}
	}

	if err := ctx.Err(); err != nil {
		errs = append(errs, err)
	}
	err := errors.Join(errs...)
	s.finish(reports, err)
	if err != nil {
		log.ErrorContext(ctx, "pipeline finished with errors", "err", err)
	} else {
		log.InfoContext(ctx, "pipeline finished")
	}
	return err
}

func (s *PipelineJob) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Running = true
	s.status.Runs++
	s.status.LastStart = s.now()
}

func (s *PipelineJob) finish(reports []string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Running = false
	s.status.LastFinish = s.now()
	s.status.Reports = reports
	s.status.LastError = ""
	if err != nil {
		s.status.LastError = err.Error()
	}
}

// Status 返回状态快照
func (s *PipelineJob) Status() PipelineStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.status
	st.Reports = append([]string(nil), s.status.Reports...)
	return st
}
