package domain

// 分类参考中的记录类别（eBird taxonomy 的 category 字段）。
// 州名录只收录物种级条目：hybrid 与 domestic 在来源解析阶段即被过滤。
const (
	CategorySpecies  = "species"
	CategoryISSF     = "issf"
	CategoryHybrid   = "hybrid"
	CategoryDomestic = "domestic"
)

// Taxon 是分类参考（taxonomy）中的一条规范条目。
//
// 约束：
// - CommonName 是查询主键（参考内允许同名多条，由查询方处理歧义）
// - TaxonOrder 是全局排序键（升序即规范分类顺序）
// - 字段缺失允许为空，但结构必须稳定
type Taxon struct {
	CommonName  string  `json:"comName"`
	SciName     string  `json:"sciName"`
	SpeciesCode string  `json:"speciesCode"`
	Order       string  `json:"order"`
	Family      string  `json:"familyComName"`
	TaxonOrder  float64 `json:"taxonOrder"`
	Category    string  `json:"category"`
}
