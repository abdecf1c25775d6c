package model

import (
	"bytes"
	"math"
	"strconv"
)

// Float 可以为 NaN 的指标值，NaN/Inf 序列化为 null
type Float float64

// NaN 返回无效指标值
func NaN() Float {
	return Float(math.NaN())
}

// Valid 指标是否为有限数值
func (f Float) Valid() bool {
	v := float64(f)
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (f Float) Float64() float64 {
	return float64(f)
}

func (f Float) MarshalJSON() ([]byte, error) {
	if !f.Valid() {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, float64(f), 'f', -1, 64), nil
}

func (f *Float) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = NaN()
		return nil
	}
	data = bytes.Trim(data, `"`)
	if len(data) == 0 {
		*f = NaN()
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*f = Float(v)
	return nil
}
