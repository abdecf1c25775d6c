package repository

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"Upstat/internal/model"
	"Upstat/internal/pkg/util"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// 历史归档的多个版本字段命名不一致，统一为 AVNum/Topic/... 的命名
var historyKeyReplacer = strings.NewReplacer(
	`"Aid":`, `"AVNum":`,
	`"Name":`, `"Topic":`,
	`"Time":`, `"UploadTime":`,
	`"Danmaku":`, `"DMNum":`,
	`"DMnum":`, `"DMNum":`,
	`"reply":`, `"Comment":`,
	`"favorite":`, `"Save":`,
	`"coin":`, `"Coin":`,
	`"like":`, `"Like":`,
)

// HistoryRepo 每个 UP 主的历史投稿 JSON，由外部维护，只读
type HistoryRepo interface {
	Load(ctx context.Context, uid int64) ([]model.UploadRecord, error)
}

type historyRepoImpl struct {
	dir string
	loc *time.Location
}

func NewHistoryRepo(dir string, loc *time.Location) HistoryRepo {
	if loc == nil {
		loc = time.Local
	}
	return &historyRepoImpl{dir: dir, loc: loc}
}

func (s *historyRepoImpl) Load(ctx context.Context, uid int64) ([]model.UploadRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := filepath.Join(s.dir, strconv.FormatInt(uid, 10)+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrNotFound, "history %s", path)
		}
		return nil, errors.Wrapf(err, "read history %s", path)
	}
	records, err := ParseHistory(data, s.loc)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformed, "history %s: %v", path, err)
	}
	return records, nil
}

type rawUpload struct {
	AVNum      flexValue `json:"AVNum"`
	Topic      flexValue `json:"Topic"`
	UploadTime flexValue `json:"UploadTime"`
	View       flexValue `json:"View"`
	Like       flexValue `json:"Like"`
	Coin       flexValue `json:"Coin"`
	Save       flexValue `json:"Save"`
	Comment    flexValue `json:"Comment"`
	DMNum      flexValue `json:"DMNum"`
	Duration   flexValue `json:"Duration"`
}

// ParseHistory 归一化字段名并修复多段数组拼接的文件，例如 "[{..}]\n[{..}]"
func ParseHistory(data []byte, loc *time.Location) ([]model.UploadRecord, error) {
	text := historyKeyReplacer.Replace(string(data))

	var raws []rawUpload
	if err := json.Unmarshal([]byte(text), &raws); err != nil {
		raws = nil
		if err = json.Unmarshal([]byte(repairConcatenated(text)), &raws); err != nil {
			return nil, err
		}
	}

	records := make([]model.UploadRecord, 0, len(raws))
	for i, raw := range raws {
		rec, err := raw.record(loc)
		if err != nil {
			return nil, errors.Wrapf(err, "record %d", i)
		}
		records = append(records, rec)
	}
	return records, nil
}

// repairConcatenated 把每行一个对象、多段数组首尾相接的文本重新拼成一个数组
func repairConcatenated(text string) string {
	lines := strings.Split(text, "\n")
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Trim(line, " \r\t[],")
		if line != "" {
			parts = append(parts, line)
		}
	}
	return "[" + strings.Trim(strings.Join(parts, ","), " \t\n\r,") + "]"
}

func (r rawUpload) record(loc *time.Location) (model.UploadRecord, error) {
	var (
		rec model.UploadRecord
		err error
	)
	rec.Topic = r.Topic.s
	if r.AVNum.set {
		if rec.AVNum, err = util.ParseUID(r.AVNum.s); err != nil {
			return rec, errors.Wrap(err, "AVNum")
		}
	}
	if rec.UploadTime, err = util.ParseTime(r.UploadTime.s, loc); err != nil {
		return rec, errors.Wrap(err, "UploadTime")
	}
	if rec.Duration, err = r.Duration.duration(); err != nil {
		return rec, errors.Wrap(err, "Duration")
	}
	counters := []struct {
		name string
		src  flexValue
		dst  *float64
	}{
		{"View", r.View, &rec.View},
		{"Like", r.Like, &rec.Like},
		{"Coin", r.Coin, &rec.Coin},
		{"Save", r.Save, &rec.Save},
		{"Comment", r.Comment, &rec.Comment},
		{"DMNum", r.DMNum, &rec.DMNum},
	}
	for _, c := range counters {
		if *c.dst, err = c.src.number(); err != nil {
			return rec, errors.Wrap(err, c.name)
		}
	}
	return rec, nil
}

// flexValue 兼容数值与字符串两种写法
type flexValue struct {
	s   string
	set bool
}

func (v *flexValue) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	v.set = true
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v.s = strings.TrimSpace(s)
		return nil
	}
	v.s = raw
	return nil
}

// number 缺失的计数按 0 处理，与缺列时的默认值一致
func (v flexValue) number() (float64, error) {
	if !v.set || v.s == "" {
		return 0, nil
	}
	return util.ParseNumber(v.s)
}

func (v flexValue) duration() (float64, error) {
	if !v.set || v.s == "" {
		return 0, nil
	}
	return util.ParseDuration(v.s)
}
