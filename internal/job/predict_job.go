package job

import (
	"context"
	log "log/slog"
	"os"
	"sort"
	"strconv"

	"Upstat/internal/pkg/consts"
	"Upstat/internal/pkg/minio"
	"Upstat/internal/service"
)

// PredictJob 为每个 UP 主生成预测文件并同步到对象存储
type PredictJob struct {
	forecastSvc service.ForecastService
	publisher   minio.Publisher
}

func NewPredictJob(forecastSvc service.ForecastService, publisher minio.Publisher) *PredictJob {
	if publisher == nil {
		publisher = minio.NopPublisher()
	}
	return &PredictJob{forecastSvc: forecastSvc, publisher: publisher}
}

func (s *PredictJob) Run() {
	_, _ = s.Execute(newJobContext("predict"))
}

func (s *PredictJob) Execute(ctx context.Context) (*service.PredictResult, error) {
	log.InfoContext(ctx, "start predicting")

	result, err := s.forecastSvc.PredictAll(ctx)
	if err != nil {
		log.ErrorContext(ctx, "predict job failed", "err", err)
		return result, err
	}
	log.InfoContext(ctx, "predict job finished", "report", result.Report.String())

	uids := make([]int64, 0, len(result.Paths))
	for uid := range result.Paths {
		uids = append(uids, uid)
	}
	sort.Slice(uids, func(i, j int) bool { return uids[i] < uids[j] })

	for _, uid := range uids {
		path := result.Paths[uid]
		data, err := os.ReadFile(path)
		if err != nil {
			log.WarnContext(ctx, "read forecast for publish failed", "uid", uid, "err", err)
			continue
		}
		name := consts.ObjectForecastPrefix + strconv.FormatInt(uid, 10) + ".json"
		if err = s.publisher.Publish(ctx, name, data, consts.ContentTypeJSON); err != nil {
			log.WarnContext(ctx, "publish forecast failed", "uid", uid, "err", err)
		}
	}
	return result, nil
}
