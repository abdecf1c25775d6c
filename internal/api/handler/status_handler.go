package handler

import (
	"Upstat/internal/api/dto"
	"Upstat/internal/job"
	"Upstat/internal/pkg/cron"
	"Upstat/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type StatusHandler struct {
	cronMgr  *cron.Manager
	pipeline *job.PipelineJob
}

func NewStatusHandler(cronMgr *cron.Manager, pipeline *job.PipelineJob) *StatusHandler {
	return &StatusHandler{
		cronMgr:  cronMgr,
		pipeline: pipeline,
	}
}

// GetStatus 调度器与流水线状态
func (h *StatusHandler) GetStatus(c *gin.Context) {
	response.Success(c, &dto.StatusDTO{
		Scheduler: h.cronMgr.State(),
		Pipeline:  h.pipeline.Status(),
	})
}
