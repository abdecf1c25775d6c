package handler

import (
	"Upstat/internal/api/dto"
	"Upstat/internal/pkg/response"
	"Upstat/internal/service"

	"github.com/gin-gonic/gin"
)

type SeriesHandler struct {
	querySvc service.QueryService
}

func NewSeriesHandler(querySvc service.QueryService) *SeriesHandler {
	return &SeriesHandler{
		querySvc: querySvc,
	}
}

// GetSeries 获取单个 UP 主的历史时间序列
func (h *SeriesHandler) GetSeries(c *gin.Context) {
	uid, ok := parseUID(c)
	if !ok {
		return
	}
	rows, err := h.querySvc.Series(c.Request.Context(), uid)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewSeriesDTO(uid, rows))
}

// GetForecast 获取单个 UP 主最近一次的预测
func (h *SeriesHandler) GetForecast(c *gin.Context) {
	uid, ok := parseUID(c)
	if !ok {
		return
	}
	points, err := h.querySvc.Forecast(c.Request.Context(), uid)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, &dto.ForecastDTO{UID: uid, Points: points})
}
