package render

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/gbabineau/statelist/internal/domain"
	"github.com/gbabineau/statelist/internal/infra/fsx"
	"github.com/gbabineau/statelist/internal/links"
)

// SheetName 是工作簿中唯一的工作表名。
const SheetName = "Official List"

// WriteXLSX 把名录渲染为 Excel 工作簿并原子写入 path。
// 结构与 docx/HTML 相同：标题行、表头、order/family 分组行、物种行。
func WriteXLSX(path string, records []domain.Record) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}

	st, err := newXLSXStyles(f)
	if err != nil {
		return err
	}

	// 标题跨六列居中。
	if err := f.MergeCell(SheetName, "A1", "F1"); err != nil {
		return err
	}
	if err := f.SetCellValue(SheetName, "A1", Title); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", "F1", st.title); err != nil {
		return err
	}

	for i, h := range ColumnHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(SheetName, "A2", "F2", st.header); err != nil {
		return err
	}

	_ = f.SetColWidth(SheetName, "A", "A", 5)
	_ = f.SetColWidth(SheetName, "B", "F", 28)

	row := 2
	err = walk(records, visitor{
		Historical: func() error {
			row++
			return writeXLSXGroupRow(f, row, HistoricalBanner, st.banner)
		},
		Order: func(name string) error {
			row++
			return writeXLSXGroupRow(f, row, "Order: "+name, st.order)
		},
		Family: func(name string) error {
			row++
			return writeXLSXGroupRow(f, row, "Family: "+name, st.family)
		},
		Taxon: func(rec domain.Record, indexText string) error {
			row++
			return writeXLSXTaxonRow(f, row, rec, indexText, st)
		},
	})
	if err != nil {
		return err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return err
	}
	return fsx.WriteFileAtomicReplace(filepath.Dir(path), filepath.Base(path), buf.Bytes())
}

type xlsxStyles struct {
	title  int
	header int
	order  int
	family int
	banner int
	link   int
}

func newXLSXStyles(f *excelize.File) (xlsxStyles, error) {
	var st xlsxStyles
	var err error

	st.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return st, err
	}
	st.header, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return st, err
	}
	st.order, err = groupStyle(f, docxOrderFill)
	if err != nil {
		return st, err
	}
	st.family, err = groupStyle(f, docxFamilyFill)
	if err != nil {
		return st, err
	}
	st.banner, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return st, err
	}
	st.link, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Color: docxLinkColor}})
	return st, err
}

func groupStyle(f *excelize.File, fill string) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{fill}, Pattern: 1},
	})
}

func writeXLSXGroupRow(f *excelize.File, row int, text string, style int) error {
	first := fmt.Sprintf("A%d", row)
	last := fmt.Sprintf("F%d", row)
	if err := f.MergeCell(SheetName, first, last); err != nil {
		return err
	}
	if err := f.SetCellValue(SheetName, first, text); err != nil {
		return err
	}
	return f.SetCellStyle(SheetName, first, last, style)
}

func writeXLSXTaxonRow(f *excelize.File, row int, rec domain.Record, indexText string, st xlsxStyles) error {
	values := []string{
		indexText,
		rec.DisplayName,
		rec.SciName,
		rec.StateStatus,
		"Map",
		"Chart",
	}
	urls := map[int]string{
		2: links.Species(rec.SpeciesCode),
		5: links.Map(rec.SpeciesCode),
		6: links.Chart(rec.SpeciesCode),
	}

	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetName, cell, v); err != nil {
			return err
		}
		u, linked := urls[col+1]
		if !linked {
			continue
		}
		if err := f.SetCellHyperLink(SheetName, cell, u, "External"); err != nil {
			return err
		}
		if err := f.SetCellStyle(SheetName, cell, cell, st.link); err != nil {
			return err
		}
	}
	return nil
}
