package taxonomy

import (
	"regexp"
	"sort"
	"strings"

	"github.com/gbabineau/statelist/internal/domain"
)

// Reference 是只读的分类查询表（按 common name 索引）。
//
// 约束：
// - 构造后不可变：合并引擎可以安全地在无锁情况下并发/重复查询
// - 查询结果的顺序确定：候选按 TaxonOrder 升序返回（歧义裁决依赖该顺序）
type Reference struct {
	byName map[string][]domain.Taxon
	sorted []domain.Taxon // TaxonOrder 升序，用于前缀回退的确定性扫描
}

// NewReference 用参考条目构造查询表。
// taxa 由调用方注入（来源可以是 eBird 快照，也可以是测试用的假表）。
func NewReference(taxa []domain.Taxon) *Reference {
	sorted := append([]domain.Taxon(nil), taxa...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].TaxonOrder != sorted[j].TaxonOrder {
			return sorted[i].TaxonOrder < sorted[j].TaxonOrder
		}
		return sorted[i].CommonName < sorted[j].CommonName
	})

	byName := make(map[string][]domain.Taxon, len(sorted))
	for _, t := range sorted {
		name := strings.TrimSpace(t.CommonName)
		if name == "" {
			continue
		}
		byName[name] = append(byName[name], t)
	}
	return &Reference{byName: byName, sorted: sorted}
}

// Len 返回参考条目数。
func (r *Reference) Len() int { return len(r.sorted) }

// Lookup 按 common name 精确查询，返回全部候选（TaxonOrder 升序）。
// 零个或多个候选都是正常结果，由调用方归类为 NotFound/Ambiguous。
func (r *Reference) Lookup(name string) []domain.Taxon {
	if r == nil || r.byName == nil {
		return nil
	}
	return r.byName[strings.TrimSpace(name)]
}

// LookupBase 做前缀回退：取 name 中第一个非字母字符之前的部分，
// 返回第一个以其为前缀的条目（按 TaxonOrder 升序的首个）。
//
// 该回退针对亚种/型（例如 "Yellow-rumped Warbler (Myrtle)"）：
// 参考中往往只有种级条目，名录却按型记录。
func (r *Reference) LookupBase(name string) (domain.Taxon, bool) {
	base := BaseName(name)
	if base == "" {
		return domain.Taxon{}, false
	}
	for _, t := range r.sorted {
		if strings.HasPrefix(t.CommonName, base) {
			return t, true
		}
	}
	return domain.Taxon{}, false
}

// 连字符属于字母序列的一部分（"Yellow-rumped" 不能被截断）。
var baseNameRE = regexp.MustCompile(`^[a-zA-Z\s-]+`)

// BaseName 返回 name 中第一个非字母字符之前的部分（去首尾空白）。
func BaseName(name string) string {
	return strings.TrimSpace(baseNameRE.FindString(strings.TrimSpace(name)))
}
