package service

import (
	"errors"

	"Upstat/internal/pkg/randwalk"
	"Upstat/internal/repository"
)

const (
	BadRequest          = 400
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid       = errors.New("参数错误")
	ErrRosterEntryMissing = errors.New("名册中不存在该 UP 主")
	ErrNoRows             = errors.New("时间窗口内没有数据")
	ErrSeriesTooShort     = randwalk.ErrTooShort
	ErrSeriesDegenerate   = randwalk.ErrDegenerate
	ErrProfileNotFound    = errors.New("头像查询失败")
	ErrRunInProgress      = errors.New("已有任务在运行")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:         BadRequest,
	ErrRosterEntryMissing:   NotFound,
	ErrNoRows:               NotFound,
	repository.ErrNotFound:  NotFound,
	repository.ErrMalformed: InternalServerError,
}

// Code 返回错误对应的业务码与命中的哨兵错误，支持包装过的错误；未登记时 target 为 nil
func Code(err error) (code int, target error) {
	for sentinel, c := range ErrorMap {
		if errors.Is(err, sentinel) {
			return c, sentinel
		}
	}
	return InternalServerError, nil
}
