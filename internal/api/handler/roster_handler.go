package handler

import (
	"strconv"

	"Upstat/internal/pkg/response"
	"Upstat/internal/service"

	"github.com/gin-gonic/gin"
)

type RosterHandler struct {
	querySvc service.QueryService
}

func NewRosterHandler(querySvc service.QueryService) *RosterHandler {
	return &RosterHandler{
		querySvc: querySvc,
	}
}

// GetRoster 获取名册，按频道估值降序，可选 limit
func (h *RosterHandler) GetRoster(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			response.Error(c, service.ErrParamInvalid)
			return
		}
		limit = v
	}

	entries, err := h.querySvc.Roster(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, entries)
}

// GetEntry 获取单个 UP 主的名册记录
func (h *RosterHandler) GetEntry(c *gin.Context) {
	uid, ok := parseUID(c)
	if !ok {
		return
	}
	entry, err := h.querySvc.RosterEntry(c.Request.Context(), uid)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, entry)
}

// GetFaces 头像导出
func (h *RosterHandler) GetFaces(c *gin.Context) {
	faces, err := h.querySvc.Faces(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, faces)
}

func parseUID(c *gin.Context) (int64, bool) {
	uid, err := strconv.ParseInt(c.Param("uid"), 10, 64)
	if err != nil || uid <= 0 {
		response.Error(c, service.ErrParamInvalid)
		return 0, false
	}
	return uid, true
}
