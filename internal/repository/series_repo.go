package repository

import (
	"bytes"
	"context"
	log "log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"Upstat/internal/model"
	"Upstat/internal/pkg/fileutil"
	"Upstat/internal/pkg/metric"

	"github.com/pkg/errors"
)

// SeriesRepo 每个 UP 主一个 CSV 时间序列文件
type SeriesRepo interface {
	Load(ctx context.Context, uid int64) ([]model.SeriesRow, error)
	Save(ctx context.Context, uid int64, rows []model.SeriesRow) error
	Merge(ctx context.Context, uid int64, fresh []model.SeriesRow, windowStart time.Time) ([]model.SeriesRow, error)
	ListUIDs(ctx context.Context) ([]int64, error)
}

type seriesRepoImpl struct {
	dir string
	loc *time.Location
}

func NewSeriesRepo(dir string, loc *time.Location) SeriesRepo {
	if loc == nil {
		loc = time.Local
	}
	return &seriesRepoImpl{dir: dir, loc: loc}
}

func (s *seriesRepoImpl) path(uid int64) string {
	return filepath.Join(s.dir, strconv.FormatInt(uid, 10)+".csv")
}

// Load 读取并按时间排序去重
func (s *seriesRepoImpl) Load(ctx context.Context, uid int64) ([]model.SeriesRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := s.path(uid)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrNotFound, "series %s", path)
		}
		return nil, errors.Wrapf(err, "read series %s", path)
	}

	snapshots, err := decodeCSV(bytes.NewReader(data), csvOptions{loc: s.loc})
	if err != nil {
		return nil, errors.Wrapf(ErrMalformed, "series %s: %v", path, err)
	}
	rows := make([]model.SeriesRow, 0, len(snapshots))
	for _, snap := range snapshots {
		rows = append(rows, snap.SeriesRow())
	}
	return metric.SortSeries(rows), nil
}

// Save 整体原子替换
func (s *seriesRepoImpl) Save(ctx context.Context, uid int64, rows []model.SeriesRow) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := encodeSeriesCSV(&buf, rows, s.loc); err != nil {
		return errors.Wrapf(err, "encode series %d", uid)
	}
	return errors.Wrapf(fileutil.WriteFileAtomic(s.path(uid), buf.Bytes(), 0o644), "write series %d", uid)
}

// Merge 已有文件损坏时记录日志并按空序列处理
func (s *seriesRepoImpl) Merge(ctx context.Context, uid int64, fresh []model.SeriesRow, windowStart time.Time) ([]model.SeriesRow, error) {
	prior, err := s.Load(ctx, uid)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !errors.Is(err, ErrNotFound) {
			log.WarnContext(ctx, "existing series unreadable, starting empty", "uid", uid, "err", err)
		}
		prior = nil
	}

	merged := metric.MergeWindow(prior, fresh, windowStart)
	if err = s.Save(ctx, uid, merged); err != nil {
		return nil, err
	}
	return merged, nil
}

func (s *seriesRepoImpl) ListUIDs(ctx context.Context) ([]int64, error) {
	return listUIDs(ctx, s.dir, ".csv")
}

// listUIDs 列出目录下形如 <uid><ext> 的文件
func listUIDs(ctx context.Context, dir, ext string) ([]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "list %s", dir)
	}
	uids := make([]int64, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.EqualFold(filepath.Ext(name), ext) {
			continue
		}
		uid, err := strconv.ParseInt(strings.TrimSuffix(name, filepath.Ext(name)), 10, 64)
		if err != nil {
			continue
		}
		uids = append(uids, uid)
	}
	sort.Slice(uids, func(i, j int) bool { return uids[i] < uids[j] })
	return uids, nil
}
