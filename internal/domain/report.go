package domain

import (
	"sort"
	"time"
)

// 行级问题分类。全部问题在批次末尾一次性上报，不改变进程退出码。
const (
	IssueMalformedRow   = "malformed_row"
	IssueDuplicateName  = "duplicate_name"
	IssueUnresolvedName = "unresolved_name"
	IssueAmbiguousName  = "ambiguous_name"
)

// 致命错误码（进程级失败，非行级问题）。
const (
	ErrCodeIOFailed      = "io_failed"
	ErrCodeFetchFailed   = "fetch_failed"
	ErrCodeParseFailed   = "parse_failed"
	ErrCodeConfigInvalid = "config_invalid"
)

// Issue 描述一条行级问题。
//
// 约束：
// - 引擎只负责返回 Issue，不做输出；呈现（日志/stderr）由调用方决定
// - Name/Line 至少一个非零，保证用户能定位到输入行
type Issue struct {
	Kind       string   `json:"kind"`
	Name       string   `json:"name,omitempty"`
	Line       int      `json:"line,omitempty"`
	Candidates []string `json:"candidates,omitempty"`
	Msg        string   `json:"msg"`
}

// RunReport 是对外稳定输出（stdout JSON / 摘要行）的结构。
type RunReport struct {
	Input  string `json:"input"`
	Output string `json:"output"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Summary ReportSummary `json:"summary"`
	Issues  []Issue       `json:"issues"`
}

type ReportSummary struct {
	Rows      int `json:"rows"`
	Resolved  int `json:"resolved"`
	NotFound  int `json:"not_found"`
	Ambiguous int `json:"ambiguous"`
	Dropped   int `json:"dropped"`
}

// Finalize 做三件事：
// 1) 时间统一为 UTC（确保 JSON 为 RFC3339 且后缀 Z）
// 2) issues 稳定排序：按输入行号升序；行号缺失（Line==0）的条目排在最后
// 3) summary 由 records 与 issues 计算得出
func (r *RunReport) Finalize(records []Record) {
	r.StartedAt = r.StartedAt.UTC()
	r.FinishedAt = r.FinishedAt.UTC()

	if r.Issues == nil {
		r.Issues = []Issue{}
	}
	sort.SliceStable(r.Issues, func(i, j int) bool {
		a := r.Issues[i].Line
		b := r.Issues[j].Line
		if a == 0 && b == 0 {
			return false
		}
		if a == 0 {
			return false
		}
		if b == 0 {
			return true
		}
		return a < b
	})

	var s ReportSummary
	s.Rows = len(records)
	for _, rec := range records {
		switch rec.Resolution {
		case ResolutionResolved:
			s.Resolved++
		case ResolutionNotFound:
			s.NotFound++
		case ResolutionAmbiguous:
			s.Ambiguous++
		}
	}
	for _, is := range r.Issues {
		switch is.Kind {
		case IssueMalformedRow, IssueDuplicateName:
			s.Dropped++
		}
	}
	r.Summary = s
}
