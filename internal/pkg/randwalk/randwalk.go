package randwalk

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

var (
	ErrTooShort   = errors.New("series too short to difference")
	ErrDegenerate = errors.New("series has non-finite derivatives")
)

// Params 随机游走参数
type Params struct {
	// Steps 生成的点数
	Steps int
	// Stride 相邻合成点的时间间隔，与 x 同单位
	Stride float64
	// Order 差分阶数，目前配置中始终为 1
	Order int
	// Noise 乘性噪声的标准差，噪声以 1.0 为中心
	Noise float64
}

// Walk 对 y 关于 x 做 Order 阶差分，从经验分布中有放回地抽取变化率，
// 乘以 N(1, Noise) 噪声后按 Stride 缩放并逐阶累加回水平值。
// 返回的 xs 为 x[last] + i*Stride，i = 1..Steps。
func Walk(rng *rand.Rand, x, y []float64, p Params) (xs, ys []float64, err error) {
	if len(x) != len(y) {
		return nil, nil, fmt.Errorf("x and y length mismatch: %d != %d", len(x), len(y))
	}
	if p.Steps <= 0 {
		return nil, nil, fmt.Errorf("invalid steps %d", p.Steps)
	}
	order := p.Order
	if order < 1 {
		order = 1
	}
	if len(y) < order+1 {
		return nil, nil, ErrTooShort
	}

	derivatives := [][]float64{y}
	dx := diff(x)
	for i := 0; i < order; i++ {
		dy := diff(derivatives[len(derivatives)-1])
		if i == 0 {
			for j := range dy {
				dy[j] /= dx[j]
			}
		}
		derivatives = append(derivatives, dy)
	}

	rates := derivatives[len(derivatives)-1]
	derivatives = derivatives[:len(derivatives)-1]
	for _, r := range rates {
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return nil, nil, ErrDegenerate
		}
	}

	ys = make([]float64, p.Steps)
	for i := range ys {
		ys[i] = rates[rng.IntN(len(rates))] * (1 + p.Noise*rng.NormFloat64())
	}

	for i := 0; i < order; i++ {
		level := derivatives[len(derivatives)-1]
		derivatives = derivatives[:len(derivatives)-1]
		for j := range ys {
			ys[j] *= p.Stride
		}
		ys[0] += level[len(level)-1]
		cumsum(ys)
	}

	xs = make([]float64, p.Steps)
	last := x[len(x)-1]
	for i := range xs {
		xs[i] = last + float64(i+1)*p.Stride
	}
	return xs, ys, nil
}

func diff(v []float64) []float64 {
	if len(v) < 2 {
		return nil
	}
	out := make([]float64, len(v)-1)
	for i := 1; i < len(v); i++ {
		out[i-1] = v[i] - v[i-1]
	}
	return out
}

func cumsum(v []float64) {
	for i := 1; i < len(v); i++ {
		v[i] += v[i-1]
	}
}
