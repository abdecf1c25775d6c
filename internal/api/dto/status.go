package dto

import (
	"Upstat/internal/job"
	"Upstat/internal/pkg/cron"
)

// StatusDTO 调度器与最近一次流水线的状态
type StatusDTO struct {
	Scheduler cron.State         `json:"scheduler"`
	Pipeline  job.PipelineStatus `json:"pipeline"`
}
