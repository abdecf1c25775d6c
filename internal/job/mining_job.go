package job

import (
	"context"
	log "log/slog"

	"Upstat/internal/pkg/consts"
	"Upstat/internal/pkg/minio"
	"Upstat/internal/service"

	"github.com/goccy/go-json"
)

// MiningJob 重算名册并同步到对象存储
type MiningJob struct {
	indexSvc  service.IndexService
	publisher minio.Publisher
}

func NewMiningJob(indexSvc service.IndexService, publisher minio.Publisher) *MiningJob {
	if publisher == nil {
		publisher = minio.NopPublisher()
	}
	return &MiningJob{indexSvc: indexSvc, publisher: publisher}
}

func (s *MiningJob) Run() {
	_, _ = s.Execute(newJobContext("mining"))
}

func (s *MiningJob) Execute(ctx context.Context) (*service.RosterResult, error) {
	log.InfoContext(ctx, "start computing roster")

	result, err := s.indexSvc.RefreshRoster(ctx)
	if err != nil {
		log.ErrorContext(ctx, "mining job failed", "err", err)
		return nil, err
	}
	log.InfoContext(ctx, "roster written",
		"path", result.Path,
		"backup", result.Backup,
		"entries", len(result.Entries),
		"report", result.Report.String(),
	)

	data, err := json.Marshal(result.Entries)
	if err != nil {
		log.ErrorContext(ctx, "encode roster for publish failed", "err", err)
		return result, nil
	}
	// 同步失败不影响本地结果
	if err = s.publisher.Publish(ctx, consts.ObjectRosterKey, data, consts.ContentTypeJSON); err != nil {
		log.WarnContext(ctx, "publish roster failed", "err", err)
	}
	return result, nil
}
