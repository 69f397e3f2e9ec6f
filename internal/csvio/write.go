package csvio

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gbabineau/statelist/internal/domain"
	"github.com/gbabineau/statelist/internal/infra/fsx"
	"github.com/gbabineau/statelist/internal/links"
)

// OutputHeader 是更新后名录 CSV 的固定列序。
// 前三列与输入 schema 兼容：输出文件可以直接再次作为输入读回（round-trip）。
var OutputHeader = []string{
	ColCommonName,
	"sciName",
	ColStateStatus,
	"Spatial Distribution",
	"Counts & Seasonality",
	"speciesCode",
	"order",
	"familyComName",
	"taxonOrder",
	"subspecies",
}

// OutputPath 返回更新后 CSV 的路径：<input_basename>_updated.csv。
func OutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	if strings.EqualFold(ext, ".csv") {
		return strings.TrimSuffix(inputPath, ext) + "_updated" + ext
	}
	return inputPath + "_updated.csv"
}

// WriteOutput 把合并结果原子写入 path。
// records 必须已按规范顺序排好（排序是合并引擎的职责，这里只做格式化）。
func WriteOutput(path string, records []domain.Record) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(OutputHeader); err != nil {
		return err
	}
	for _, rec := range records {
		if err := w.Write(outputRow(rec)); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	return fsx.WriteFileAtomicReplace(filepath.Dir(path), filepath.Base(path), buf.Bytes())
}

func outputRow(rec domain.Record) []string {
	mapURL, chartURL := "", ""
	if rec.SpeciesCode != "" {
		mapURL = links.Map(rec.SpeciesCode)
		chartURL = links.Chart(rec.SpeciesCode)
	}
	return []string{
		rec.DisplayName,
		rec.SciName,
		rec.StateStatus,
		mapURL,
		chartURL,
		rec.SpeciesCode,
		rec.Order,
		rec.Family,
		formatTaxonOrder(rec),
		strconv.FormatBool(rec.Subspecies),
	}
}

// formatTaxonOrder 把排序键格式化为最短十进制表示。
// 未解析记录输出空串（哨兵值只用于排序，不属于展示数据）。
func formatTaxonOrder(rec domain.Record) string {
	if rec.Resolution == domain.ResolutionNotFound {
		return ""
	}
	return strconv.FormatFloat(rec.TaxonOrder, 'f', -1, 64)
}

// ReadOfficial 读取 update-state-list 产出的官方名录 CSV（文档生成的输入）。
// 行序保持文件顺序：排序已在生成阶段完成。
func ReadOfficial(path string) ([]domain.Record, error) {
	all, cols, err := readTable(path)
	if err != nil {
		return nil, err
	}

	records := make([]domain.Record, 0, len(all))
	for _, rec := range all {
		order, _ := strconv.ParseFloat(field(rec, cols, "taxonOrder"), 64)
		records = append(records, domain.Record{
			DisplayName: field(rec, cols, ColCommonName),
			StateStatus: field(rec, cols, ColStateStatus),
			SciName:     field(rec, cols, "sciName"),
			SpeciesCode: field(rec, cols, "speciesCode"),
			Order:       field(rec, cols, "order"),
			Family:      field(rec, cols, "familyComName"),
			TaxonOrder:  order,
			Subspecies:  strings.EqualFold(field(rec, cols, "subspecies"), "true"),
		})
	}
	return records, nil
}

