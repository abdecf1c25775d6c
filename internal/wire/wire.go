package wire

import (
	"time"

	"Upstat/internal/api"
	"Upstat/internal/api/config"
	"Upstat/internal/api/handler"
	"Upstat/internal/job"
	"Upstat/internal/pkg/consts"
	"Upstat/internal/pkg/cron"
	"Upstat/internal/pkg/minio"
	"Upstat/internal/pkg/redis"
	"Upstat/internal/repository"
	"Upstat/internal/service"

	"github.com/gin-gonic/gin"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router   *gin.Engine
	CronMgr  *cron.Manager
	Pipeline *job.PipelineJob
}

// BuildApplication Redis 与 MinIO 需在调用前按配置初始化
func BuildApplication(cfg *config.Config) (*ApplicationContainer, error) {
	loc := time.Local
	now := time.Now
	paths := cfg.Paths

	snapshotRepo := repository.NewSnapshotRepo(paths.SnapshotDir, loc, now)
	seriesRepo := repository.NewSeriesRepo(paths.SeriesDir, loc)
	historyRepo := repository.NewHistoryRepo(paths.HistoryDir, loc)
	rosterRepo := repository.NewRosterRepo(paths.RosterSource, paths.RosterFile, paths.RosterBackupDir, now)
	forecastRepo := repository.NewForecastRepo(paths.ForecastDir)

	faceSvc := service.NewFaceService(cfg.Profile)
	if cfg.Redis.Enabled {
		faceSvc = service.NewCachedFaceService(faceSvc, cfg.Redis.FaceTTL)
	}
	aggSvc := service.NewAggregatorService(snapshotRepo, seriesRepo)
	indexSvc := service.NewIndexService(seriesRepo, historyRepo, rosterRepo, faceSvc, now)
	forecastSvc := service.NewForecastService(
		seriesRepo, rosterRepo, forecastRepo,
		service.ForecastParamsFromConfig(cfg.Forecast), cfg.Forecast.Seed, now,
	)
	querySvc := service.NewQueryService(seriesRepo, rosterRepo, forecastRepo)

	publisher := minio.NopPublisher()
	if cfg.MinIO.Enabled {
		publisher = minio.NewPublisher()
	}
	var lock *redis.RunLock
	if cfg.Redis.Enabled {
		lock = redis.NewRunLock(consts.PipelineLock, cfg.Redis.LockTTL)
	}

	pipeline := job.NewPipelineJob(
		job.NewArchiveJob(aggSvc, now),
		job.NewMiningJob(indexSvc, publisher),
		job.NewPredictJob(forecastSvc, publisher),
		lock,
	)
	cronMgr := cron.NewCronManager(cfg.Schedule.Spec, cfg.Schedule.RunOnStart, pipeline)

	handlers := &api.HandlersGroup{
		RosterHandler: handler.NewRosterHandler(querySvc),
		SeriesHandler: handler.NewSeriesHandler(querySvc),
		StatusHandler: handler.NewStatusHandler(cronMgr, pipeline),
	}

	return &ApplicationContainer{
		Router:   api.SetupRouter(handlers),
		CronMgr:  cronMgr,
		Pipeline: pipeline,
	}, nil
}
