// Package render 把官方名录渲染为出版物格式（HTML 片段、docx、xlsx）。
//
// 三种格式共享同一套文档结构：六列表格，按 order/family 插入分组头，
// 历史记录区以横幅行开始，物种行带 eBird 链接。
package render

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gbabineau/statelist/internal/domain"
)

// Title 是文档标题（与既有出版物一致）。
const Title = "The Birds of Virginia and its Offshore Waters: The Official List"

// HistoricalStatus 是历史记录区的状态标记；首次出现该标记的行
// 之前插入横幅，其后所有行都属于历史区。
const HistoricalStatus = "(4)"

// HistoricalBanner 是历史记录区的横幅文字。
const HistoricalBanner = "Species Believed to Have Occurred Historically"

// ColumnHeaders 是固定的六列表头。
var ColumnHeaders = []string{
	"#",
	"Species",
	"Scientific Name",
	"State Status",
	"Spatial Distribution",
	"Counts & Seasonality",
}

// OutputPath 把输入 CSV 的扩展名替换为 ext（形如 ".html"）。
func OutputPath(inputPath, ext string) string {
	old := filepath.Ext(inputPath)
	if strings.EqualFold(old, ".csv") {
		return strings.TrimSuffix(inputPath, old) + ext
	}
	return inputPath + ext
}

// visitor 接收文档顺序的结构事件。任一回调返回错误即中止遍历。
type visitor struct {
	Historical func() error
	Order      func(name string) error
	Family     func(name string) error
	Taxon      func(rec domain.Record, indexText string) error
}

// walk 按文档顺序遍历记录并派发结构事件。
//
// 约束：
// - records 已按规范顺序排好（排序是合并引擎的职责）
// - order/family 分组头只在值变化时插入；order 变化重置 family
// - 序号只分配给非亚种且非历史区的行，其余行序号为空
func walk(records []domain.Record, v visitor) error {
	var order, family string
	historical := false
	index := 1

	for _, rec := range records {
		if rec.StateStatus == HistoricalStatus && !historical {
			historical = true
			if err := v.Historical(); err != nil {
				return err
			}
		}
		if rec.Order != order {
			order = rec.Order
			family = ""
			if err := v.Order(order); err != nil {
				return err
			}
		}
		if rec.Family != family {
			family = rec.Family
			if err := v.Family(family); err != nil {
				return err
			}
		}

		indexText := ""
		if !rec.Subspecies && !historical {
			indexText = strconv.Itoa(index)
			index++
		}
		if err := v.Taxon(rec, indexText); err != nil {
			return err
		}
	}
	return nil
}
