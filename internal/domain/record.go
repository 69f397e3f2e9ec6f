package domain

import "math"

// InputRow 是用户输入 CSV（comName,State Status,Sort as）中的一行。
// 读取阶段不做任何校验：空 comName 等行级问题统一由合并引擎判定并上报。
type InputRow struct {
	Line        int // 1-based，表头为第 1 行
	CommonName  string
	StateStatus string
	SortAs      string
}

// LookupName 返回用于查询分类参考的名称：优先 Sort as，缺省回退 comName。
func (r InputRow) LookupName() string {
	if r.SortAs != "" {
		return r.SortAs
	}
	return r.CommonName
}

// 解析状态：每条输出记录必须且只能处于其中之一。
const (
	ResolutionResolved  = "resolved"
	ResolutionNotFound  = "not_found"
	ResolutionAmbiguous = "ambiguous"
)

// UnresolvedTaxonOrder 是未解析记录的排序哨兵：
// 保证其排在所有已解析记录之后，彼此之间按 DisplayName 字典序。
const UnresolvedTaxonOrder = math.MaxFloat64

// Record 是合并后的一条州名录记录。解析完成后不可变。
//
// 约束：
// - DisplayName 永不为空（空名行在引擎内被剔除并上报）
// - LookupName 与参考恰好核对一次；未命中以 NotFound 标记，绝不静默丢弃
// - 同一 DisplayName 在输出中至多出现一次
type Record struct {
	DisplayName string
	LookupName  string
	StateStatus string

	SciName     string
	SpeciesCode string
	Order       string
	Family      string
	TaxonOrder  float64
	Subspecies  bool

	Resolution string
}
