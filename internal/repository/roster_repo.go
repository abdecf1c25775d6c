package repository

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"Upstat/internal/model"
	"Upstat/internal/pkg/fileutil"
	"Upstat/internal/pkg/util"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

const backupLayout = "2006-01-02-15-04-05"

// RosterRepo 名册文件，每轮整体覆盖，覆盖前保留带时间戳的备份
type RosterRepo interface {
	// LoadSource 读取采集端提供的 UP 主列表
	LoadSource(ctx context.Context) ([]model.RosterEntry, error)
	Load(ctx context.Context) ([]model.RosterEntry, error)
	// Save 返回备份文件路径，首次写入时为空
	Save(ctx context.Context, entries []model.RosterEntry) (string, error)
	Path() string
}

type rosterRepoImpl struct {
	source    string
	path      string
	backupDir string
	now       func() time.Time
}

func NewRosterRepo(source, path, backupDir string, now func() time.Time) RosterRepo {
	if backupDir == "" {
		backupDir = filepath.Dir(path)
	}
	if now == nil {
		now = time.Now
	}
	return &rosterRepoImpl{source: source, path: path, backupDir: backupDir, now: now}
}

// rosterSeed 采集端名册中的一项，计数列在指标窗口为空时作为兜底值
type rosterSeed struct {
	UID       flexValue `json:"uid"`
	Name      flexValue `json:"Name"`
	PlayNum   flexValue `json:"PlayNum"`
	FanNum    flexValue `json:"FanNum"`
	ChargeNum flexValue `json:"ChargeNum"`
}

// seedNumber 无法解析的计数视为缺失
func seedNumber(v flexValue) model.Float {
	f, err := util.ParseNumber(v.s)
	if err != nil {
		return model.NaN()
	}
	return model.Float(f)
}

func (s *rosterRepoImpl) LoadSource(ctx context.Context) ([]model.RosterEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.source == "" {
		return nil, errors.Wrap(ErrNotFound, "roster source not configured")
	}
	data, err := os.ReadFile(s.source)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrNotFound, "roster source %s", s.source)
		}
		return nil, errors.Wrapf(err, "read roster source %s", s.source)
	}

	var seeds []rosterSeed
	if err = json.Unmarshal(data, &seeds); err != nil {
		return nil, errors.Wrapf(ErrMalformed, "roster source %s: %v", s.source, err)
	}
	entries := make([]model.RosterEntry, 0, len(seeds))
	seen := make(map[int64]struct{}, len(seeds))
	for i, seed := range seeds {
		uid, err := util.ParseUID(seed.UID.s)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformed, "roster source %s entry %d: %v", s.source, i, err)
		}
		if _, dup := seen[uid]; dup {
			continue
		}
		seen[uid] = struct{}{}
		entry := model.NewRosterEntry(uid, seed.Name.s)
		entry.PlayNum = seedNumber(seed.PlayNum)
		entry.FanNum = seedNumber(seed.FanNum)
		entry.ChargeNum = seedNumber(seed.ChargeNum)
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *rosterRepoImpl) Load(ctx context.Context) ([]model.RosterEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadRosterFile(s.path)
}

func (s *rosterRepoImpl) Save(ctx context.Context, entries []model.RosterEntry) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return "", errors.Wrap(err, "encode roster")
	}

	var backup string
	if fileutil.Exists(s.path) {
		backup = filepath.Join(s.backupDir, s.now().Format(backupLayout)+".json")
		if err = fileutil.CopyFile(s.path, backup); err != nil {
			return "", errors.Wrapf(err, "backup roster to %s", backup)
		}
	}
	if err = fileutil.WriteFileAtomic(s.path, data, 0o644); err != nil {
		return backup, errors.Wrap(err, "write roster")
	}
	return backup, nil
}

func (s *rosterRepoImpl) Path() string {
	return s.path
}

// ReadRosterFile 读取名册 JSON 数组
func ReadRosterFile(path string) ([]model.RosterEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrNotFound, "roster %s", path)
		}
		return nil, errors.Wrapf(err, "read roster %s", path)
	}
	var entries []model.RosterEntry
	if err = json.Unmarshal(data, &entries); err != nil {
		return nil, errors.Wrapf(ErrMalformed, "roster %s: %v", path, err)
	}
	return entries, nil
}
