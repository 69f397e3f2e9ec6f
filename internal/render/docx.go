package render

import (
	"bytes"
	"path/filepath"

	"github.com/gbabineau/statelist/internal/domain"
	"github.com/gbabineau/statelist/internal/infra/fsx"
	"github.com/gbabineau/statelist/internal/links"
)

// 分组头底纹与链接配色（与既有出版物一致）。
const (
	docxOrderFill  = "D3D3D3"
	docxFamilyFill = "ADD8E6"
	docxLinkColor  = "0000FF"
)

// 列宽（twip，1 英寸 = 1440）：序号列窄，其余等宽。
var docxColumnWidths = []string{"720", "1584", "1584", "1584", "1584", "1584"}

// WriteDocx 把名录渲染为 Word 文档并原子写入 path。
func WriteDocx(path string, records []domain.Record) error {
	rels := &relSet{}

	rows := []wTableRow{docxHeaderRow()}
	err := walk(records, visitor{
		Historical: func() error {
			rows = append(rows, docxBannerRow(HistoricalBanner))
			return nil
		},
		Order: func(name string) error {
			rows = append(rows, docxGroupRow("Order: "+name, docxOrderFill))
			return nil
		},
		Family: func(name string) error {
			rows = append(rows, docxGroupRow("Family: "+name, docxFamilyFill))
			return nil
		},
		Taxon: func(rec domain.Record, indexText string) error {
			rows = append(rows, docxTaxonRow(rec, indexText, rels))
			return nil
		},
	})
	if err != nil {
		return err
	}

	doc := wDocument{
		NSW: nsWordprocessing,
		NSR: nsRelationships,
		Body: wBody{
			Title: docxTitle(),
			Table: wTable{
				Props: wTableProps{
					Width: wTableWidth{W: "0", Type: "auto"},
					Borders: wTableBorders{Edges: []wBorder{
						singleBorder("w:top"), singleBorder("w:left"),
						singleBorder("w:bottom"), singleBorder("w:right"),
						singleBorder("w:insideH"), singleBorder("w:insideV"),
					}},
				},
				Grid: docxGrid(),
				Rows: rows,
			},
		},
	}

	var buf bytes.Buffer
	if err := writeDocxArchive(&buf, doc, rels); err != nil {
		return err
	}
	return fsx.WriteFileAtomicReplace(filepath.Dir(path), filepath.Base(path), buf.Bytes())
}

func docxGrid() wTableGrid {
	cols := make([]wGridCol, len(docxColumnWidths))
	for i, w := range docxColumnWidths {
		cols[i] = wGridCol{W: w}
	}
	return wTableGrid{Cols: cols}
}

func docxTitle() wParagraph {
	return wParagraph{
		Props: &wParaProps{Justify: val("w:jc", "center")},
		Content: []any{wRun{
			Props: &wRunProps{
				Bold: &wEmpty{XMLName: elem("w:b")},
				Size: val("w:sz", "56"), // 28 磅
			},
			Text: &wText{Value: Title, Space: "preserve"},
		}},
	}
}

func docxHeaderRow() wTableRow {
	cells := make([]wTableCell, len(ColumnHeaders))
	for i, h := range ColumnHeaders {
		cells[i] = docxTextCell(h, true)
	}
	return wTableRow{Cells: cells}
}

// docxGroupRow 是跨六列的分组头：加粗、底纹。
func docxGroupRow(text, fill string) wTableRow {
	cell := docxTextCell(text, true)
	cell.Props = &wCellProps{
		Span:  val("w:gridSpan", "6"),
		Shade: &wShading{Val: "clear", Fill: fill},
	}
	return wTableRow{Cells: []wTableCell{cell}}
}

// docxBannerRow 是跨六列的历史记录区横幅（居中、加粗、无底纹）。
func docxBannerRow(text string) wTableRow {
	cell := docxTextCell(text, true)
	cell.Props = &wCellProps{Span: val("w:gridSpan", "6")}
	cell.Para.Props = &wParaProps{Justify: val("w:jc", "center")}
	return wTableRow{Cells: []wTableCell{cell}}
}

func docxTaxonRow(rec domain.Record, indexText string, rels *relSet) wTableRow {
	return wTableRow{Cells: []wTableCell{
		docxTextCell(indexText, false),
		docxLinkCell(links.Species(rec.SpeciesCode), rec.DisplayName, rels),
		docxTextCell(rec.SciName, false),
		docxTextCell(rec.StateStatus, false),
		docxLinkCell(links.Map(rec.SpeciesCode), "Map", rels),
		docxLinkCell(links.Chart(rec.SpeciesCode), "Chart", rels),
	}}
}

func docxTextCell(text string, bold bool) wTableCell {
	run := wRun{Text: &wText{Value: text, Space: "preserve"}}
	if bold {
		run.Props = &wRunProps{Bold: &wEmpty{XMLName: elem("w:b")}}
	}
	return wTableCell{Para: wParagraph{Content: []any{run}}}
}

// docxLinkCell 是蓝色、无下划线的外部超链接单元格。
func docxLinkCell(url, text string, rels *relSet) wTableCell {
	link := wHyperlink{
		RID: rels.addHyperlink(url),
		Run: wRun{
			Props: &wRunProps{
				Color:     val("w:color", docxLinkColor),
				Underline: val("w:u", "none"),
			},
			Text: &wText{Value: text, Space: "preserve"},
		},
	}
	return wTableCell{Para: wParagraph{Content: []any{link}}}
}
