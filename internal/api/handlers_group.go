package api

import "Upstat/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	RosterHandler *handler.RosterHandler
	SeriesHandler *handler.SeriesHandler
	StatusHandler *handler.StatusHandler
}
