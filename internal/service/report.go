package service

import (
	"fmt"
	"strings"
)

// Outcome 批处理中单个工作单元的结果
type Outcome struct {
	// Unit 文件路径或 uid 的字符串形式
	Unit string
	UID  int64
	Err  error
}

func (o Outcome) OK() bool {
	return o.Err == nil
}

// BatchReport 一次批处理的汇总，单元失败不影响其他单元
type BatchReport struct {
	Stage    string
	Outcomes []Outcome
}

func NewBatchReport(stage string) *BatchReport {
	return &BatchReport{Stage: stage}
}

func (r *BatchReport) Succeed(unit string, uid int64) {
	r.Outcomes = append(r.Outcomes, Outcome{Unit: unit, UID: uid})
}

func (r *BatchReport) Fail(unit string, uid int64, err error) {
	r.Outcomes = append(r.Outcomes, Outcome{Unit: unit, UID: uid, Err: err})
}

func (r *BatchReport) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.OK() {
			n++
		}
	}
	return n
}

func (r *BatchReport) Failures() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if !o.OK() {
			out = append(out, o)
		}
	}
	return out
}

func (r *BatchReport) String() string {
	failures := r.Failures()
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d ok, %d failed", r.Stage, r.Succeeded(), len(failures))
	for _, f := range failures {
		fmt.Fprintf(&b, "; %s: %v", f.Unit, f.Err)
	}
	return b.String()
}
