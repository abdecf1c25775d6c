package util

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// TimeLayout 序列文件与历史记录使用的时间格式
const TimeLayout = "2006-01-02 15:04:05"

// OffsetTimeLayout 写入序列文件时带上时区偏移，夏令时回拨的同一钟点不会重复
const OffsetTimeLayout = "2006-01-02 15:04:05Z07:00"

// ParseUID 将采集端格式不规范的 uid 字段规整为整数，例如 " 123 "、"123.0"、"uid:123"
func ParseUID(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, `"'`)
	if i := strings.LastIndexAny(s, ":="); i >= 0 {
		s = strings.TrimSpace(s[i+1:])
	}
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty uid %q", raw)
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid uid %q", raw)
	}
	return int64(f), nil
}

// ParseNumber 解析数值字段，空值返回 NaN
func ParseNumber(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "nan") || strings.EqualFold(s, "null") {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
}

// ParseTime 解析时间字段，支持 OffsetTimeLayout、TimeLayout 与 Unix 秒
func ParseTime(raw string, loc *time.Location) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty time")
	}
	if t, err := time.Parse(OffsetTimeLayout, s); err == nil {
		return t.In(loc), nil
	}
	if t, err := time.ParseInLocation(TimeLayout, s, loc); err == nil {
		return t, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q", raw)
	}
	sec, frac := math.Modf(f)
	return time.Unix(int64(sec), int64(frac*1e9)).In(loc), nil
}

// FormatNumber 以最短形式输出数值，NaN 输出为空
func FormatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseDuration 解析稿件时长，支持秒数与 "mm:ss"、"hh:mm:ss"
func ParseDuration(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if !strings.Contains(s, ":") {
		return ParseNumber(s)
	}
	var total float64
	for _, part := range strings.Split(s, ":") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", raw)
		}
		total = total*60 + v
	}
	return total, nil
}
