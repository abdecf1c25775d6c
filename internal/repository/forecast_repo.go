package repository

import (
	"context"
	"os"
	"path/filepath"
	"strconv"

	"Upstat/internal/model"
	"Upstat/internal/pkg/fileutil"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// ForecastRepo 每个 UP 主一个预测文件，每轮整体重写
type ForecastRepo interface {
	Save(ctx context.Context, uid int64, points []model.ForecastPoint) (string, error)
	Load(ctx context.Context, uid int64) ([]model.ForecastPoint, error)
}

type forecastRepoImpl struct {
	dir string
}

func NewForecastRepo(dir string) ForecastRepo {
	return &forecastRepoImpl{dir: dir}
}

func (s *forecastRepoImpl) path(uid int64) string {
	return filepath.Join(s.dir, strconv.FormatInt(uid, 10)+".json")
}

func (s *forecastRepoImpl) Save(ctx context.Context, uid int64, points []model.ForecastPoint) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if points == nil {
		points = []model.ForecastPoint{}
	}
	data, err := json.Marshal(points)
	if err != nil {
		return "", errors.Wrapf(err, "encode forecast %d", uid)
	}
	path := s.path(uid)
	if err = fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return "", errors.Wrapf(err, "write forecast %d", uid)
	}
	return path, nil
}

func (s *forecastRepoImpl) Load(ctx context.Context, uid int64) ([]model.ForecastPoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := s.path(uid)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrNotFound, "forecast %s", path)
		}
		return nil, errors.Wrapf(err, "read forecast %s", path)
	}
	var points []model.ForecastPoint
	if err = json.Unmarshal(data, &points); err != nil {
		return nil, errors.Wrapf(ErrMalformed, "forecast %s: %v", path, err)
	}
	return points, nil
}
