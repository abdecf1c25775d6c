package repository

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"Upstat/internal/model"

	"github.com/pkg/errors"
)

// 采集文件名只含月日时，例如 "10-19 14.csv"
var snapshotNameLayouts = []string{"01-02 15", "01-02-15"}

// SnapshotFile 一个采集快照文件
type SnapshotFile struct {
	Path    string
	Instant time.Time
}

// SnapshotRepo 采集端输出目录
type SnapshotRepo interface {
	// List 返回采集时刻不早于 cutoff 的快照文件，按时刻升序
	List(ctx context.Context, cutoff time.Time) ([]SnapshotFile, error)
	Read(ctx context.Context, file SnapshotFile) ([]model.SnapshotRow, error)
}

type snapshotRepoImpl struct {
	dir string
	loc *time.Location
	now func() time.Time
}

func NewSnapshotRepo(dir string, loc *time.Location, now func() time.Time) SnapshotRepo {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &snapshotRepoImpl{dir: dir, loc: loc, now: now}
}

func (s *snapshotRepoImpl) List(ctx context.Context, cutoff time.Time) ([]SnapshotFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrapf(err, "list snapshots %s", s.dir)
	}

	now := s.now().In(s.loc)
	files := make([]SnapshotFile, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		ext := filepath.Ext(name)
		if e.IsDir() || !strings.EqualFold(ext, ".csv") {
			continue
		}
		instant, ok := ParseSnapshotName(strings.TrimSuffix(name, ext), now)
		if !ok || instant.Before(cutoff) {
			continue
		}
		files = append(files, SnapshotFile{Path: filepath.Join(s.dir, name), Instant: instant})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Instant.Before(files[j].Instant) })
	return files, nil
}

func (s *snapshotRepoImpl) Read(ctx context.Context, file SnapshotFile) ([]model.SnapshotRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(file.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "open snapshot %s", file.Path)
	}
	defer f.Close()

	rows, err := decodeCSV(f, csvOptions{requireUID: true, defaultTime: file.Instant, loc: s.loc})
	if err != nil {
		return nil, errors.Wrapf(ErrMalformed, "snapshot %s: %v", file.Path, err)
	}
	return rows, nil
}

// ParseSnapshotName 解析文件名中的采集时刻，年份取使其不晚于 now 的最近一年
func ParseSnapshotName(base string, now time.Time) (time.Time, bool) {
	for _, layout := range snapshotNameLayouts {
		t, err := time.ParseInLocation(layout, strings.TrimSpace(base), now.Location())
		if err != nil {
			continue
		}
		instant := time.Date(now.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, now.Location())
		// 跨年时 1 月读到 12 月的文件
		if instant.After(now.Add(time.Hour)) {
			instant = instant.AddDate(-1, 0, 0)
		}
		return instant, true
	}
	return time.Time{}, false
}
