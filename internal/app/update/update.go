// Package update 编排 update-state-list 的完整批次：
// 读输入 → 取 taxonomy（缓存优先）→ 合并 → 写输出 → 产出 RunReport。
package update

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/gbabineau/statelist/internal/csvio"
	"github.com/gbabineau/statelist/internal/domain"
	"github.com/gbabineau/statelist/internal/infra/cache"
	"github.com/gbabineau/statelist/internal/list"
	"github.com/gbabineau/statelist/internal/taxonomy"
)

// Options 是一次批次的全部依赖。由 main 装配；测试注入假 Source 与临时目录。
type Options struct {
	InputPath string
	CacheDir  string

	Source taxonomy.Source
	Client *http.Client

	Log *zap.Logger
}

// FatalError 是进程级失败（区别于行级 Issue）。
type FatalError struct {
	Code string // domain.ErrCode*
	Err  error
}

func (e *FatalError) Error() string { return fmt.Sprintf("%s：%v", e.Code, e.Err) }

func (e *FatalError) Unwrap() error { return e.Err }

// FatalCode 从 error 中提取致命错误码；若不是 *FatalError 则返回空串。
func FatalCode(err error) string {
	var e *FatalError
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Execute 运行一次完整批次。
//
// 约束：
// - 行级问题收集进 report.Issues，永不中断批次
// - 只有 IO/网络/解析的进程级失败才返回 error；此时 report 仍然有效
//   （含起止时间与已知 Input），供调用方输出
// - 输出路径固定为 <input_basename>_updated.csv
func Execute(ctx context.Context, opt Options) (domain.RunReport, error) {
	log := opt.Log
	if log == nil {
		log = zap.NewNop()
	}

	rr := domain.RunReport{
		Input:     opt.InputPath,
		StartedAt: time.Now(),
	}
	finish := func(records []domain.Record) {
		rr.FinishedAt = time.Now()
		rr.Finalize(records)
	}

	rows, err := csvio.ReadInput(opt.InputPath)
	if err != nil {
		finish(nil)
		return rr, &FatalError{Code: domain.ErrCodeIOFailed, Err: err}
	}
	log.Debug("输入读取完成", zap.String("input", opt.InputPath), zap.Int("rows", len(rows)))

	taxa, err := loadTaxonomy(ctx, opt, log)
	if err != nil {
		finish(nil)
		return rr, err
	}
	ref := taxonomy.NewReference(taxa)
	log.Debug("taxonomy 就绪", zap.Int("taxa", ref.Len()))

	records, issues := list.Merge(rows, ref)
	rr.Issues = issues

	rr.Output = csvio.OutputPath(opt.InputPath)
	if err := csvio.WriteOutput(rr.Output, records); err != nil {
		finish(records)
		return rr, &FatalError{Code: domain.ErrCodeIOFailed, Err: err}
	}

	finish(records)
	return rr, nil
}

// loadTaxonomy 取得可用的 taxonomy 条目集。
//
// 缓存策略：
// - 命中且能解析：直接使用，不访问网络
// - 未命中或解析失败（坏缓存）：走网络拉取，成功后回写快照
// - 快照回写失败只降级为告警（本次批次仍可完成）
func loadTaxonomy(ctx context.Context, opt Options, log *zap.Logger) ([]domain.Taxon, error) {
	store := cache.New(opt.CacheDir)

	raw, hit, err := store.ReadTaxonomy()
	if err != nil {
		return nil, &FatalError{Code: domain.ErrCodeIOFailed, Err: err}
	}
	if hit {
		taxa, err := opt.Source.Parse(raw)
		if err == nil {
			log.Debug("使用缓存快照", zap.String("path", store.TaxonomyPath()))
			return taxa, nil
		}
		log.Warn("缓存快照无法解析，重新拉取",
			zap.String("path", store.TaxonomyPath()), zap.Error(err))
	}

	raw, srcURL, err := opt.Source.Fetch(ctx, opt.Client)
	if err != nil {
		return nil, &FatalError{
			Code: domain.ErrCodeFetchFailed,
			Err:  &taxonomy.Error{Source: opt.Source.Name(), Stage: "fetch", Err: err},
		}
	}
	log.Debug("taxonomy 拉取完成", zap.String("url", srcURL), zap.Int("bytes", len(raw)))

	taxa, err := opt.Source.Parse(raw)
	if err != nil {
		return nil, &FatalError{
			Code: domain.ErrCodeParseFailed,
			Err:  &taxonomy.Error{Source: opt.Source.Name(), Stage: "parse", Err: err},
		}
	}

	if err := store.WriteTaxonomy(raw); err != nil {
		log.Warn("快照回写失败", zap.String("path", store.TaxonomyPath()), zap.Error(err))
	}
	return taxa, nil
}
