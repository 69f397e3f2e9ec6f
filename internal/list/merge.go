// Package list 实现州名录的合并引擎：把手工维护的输入行
// 与分类参考核对，产出按规范顺序排好的记录集。
//
// 引擎是纯函数式的：不做 IO、不写日志，行级问题全部收集后
// 随结果一并返回，任何一行的问题都不会中断整个批次。
package list

import (
	"fmt"
	"sort"

	"github.com/gbabineau/statelist/internal/domain"
	"github.com/gbabineau/statelist/internal/taxonomy"
)

// 亚种/型记录紧跟其种级条目之后排序；参考中相邻种的
// TaxonOrder 间距恒大于该偏移。
const subspeciesOrderNudge = 0.1

// Merge 把输入行与分类参考核对并合并。
//
// 约束：
// - 空 comName 的行剔除并上报 malformed_row
// - 同名重复行首见者生效，后续剔除并上报 duplicate_name
// - 每个查询名与参考恰好核对一次：精确命中即采用；多候选取
//   TaxonOrder 最小者并上报 ambiguous_name；无候选做前缀回退
//   （命中标记为亚种）；仍未命中标记 NotFound 并上报 unresolved_name
// - 结果按 TaxonOrder 升序；未解析记录排在末尾，按 DisplayName 字典序
func Merge(rows []domain.InputRow, ref *taxonomy.Reference) ([]domain.Record, []domain.Issue) {
	records := make([]domain.Record, 0, len(rows))
	issues := []domain.Issue{}
	seen := make(map[string]int, len(rows)) // DisplayName → 首见行号

	for _, row := range rows {
		if row.CommonName == "" {
			issues = append(issues, domain.Issue{
				Kind: domain.IssueMalformedRow,
				Line: row.Line,
				Msg:  "comName 为空，整行剔除",
			})
			continue
		}
		if first, dup := seen[row.CommonName]; dup {
			issues = append(issues, domain.Issue{
				Kind: domain.IssueDuplicateName,
				Name: row.CommonName,
				Line: row.Line,
				Msg:  fmt.Sprintf("与第 %d 行重复，保留首见行", first),
			})
			continue
		}
		seen[row.CommonName] = row.Line

		rec, issue := resolve(row, ref)
		records = append(records, rec)
		if issue != nil {
			issues = append(issues, *issue)
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].TaxonOrder != records[j].TaxonOrder {
			return records[i].TaxonOrder < records[j].TaxonOrder
		}
		return records[i].DisplayName < records[j].DisplayName
	})
	return records, issues
}

// resolve 对单行做一次核对，返回记录与可选的行级问题。
func resolve(row domain.InputRow, ref *taxonomy.Reference) (domain.Record, *domain.Issue) {
	rec := domain.Record{
		DisplayName: row.CommonName,
		LookupName:  row.LookupName(),
		StateStatus: row.StateStatus,
	}

	candidates := ref.Lookup(rec.LookupName)
	switch {
	case len(candidates) == 1:
		fill(&rec, candidates[0], 0)
		rec.Resolution = domain.ResolutionResolved
		return rec, nil

	case len(candidates) > 1:
		// 多候选：取 TaxonOrder 最小者（Lookup 已按升序返回）。
		fill(&rec, candidates[0], 0)
		rec.Resolution = domain.ResolutionAmbiguous
		names := make([]string, len(candidates))
		for i, c := range candidates {
			names[i] = c.SciName
		}
		return rec, &domain.Issue{
			Kind:       domain.IssueAmbiguousName,
			Name:       rec.LookupName,
			Line:       row.Line,
			Candidates: names,
			Msg:        fmt.Sprintf("参考中有 %d 个同名条目，采用分类序最小者", len(candidates)),
		}
	}

	// 精确未命中：按基础名做前缀回退，命中即视为亚种/型。
	if t, ok := ref.LookupBase(rec.LookupName); ok {
		fill(&rec, t, subspeciesOrderNudge)
		rec.Resolution = domain.ResolutionResolved
		rec.Subspecies = true
		return rec, nil
	}

	rec.Resolution = domain.ResolutionNotFound
	rec.TaxonOrder = domain.UnresolvedTaxonOrder
	return rec, &domain.Issue{
		Kind: domain.IssueUnresolvedName,
		Name: rec.LookupName,
		Line: row.Line,
		Msg:  "参考中未找到该名称",
	}
}

func fill(rec *domain.Record, t domain.Taxon, nudge float64) {
	rec.SciName = t.SciName
	rec.SpeciesCode = t.SpeciesCode
	rec.Order = t.Order
	rec.Family = t.Family
	rec.TaxonOrder = t.TaxonOrder + nudge
}
