package render

import (
	"fmt"
	"html"
	"path/filepath"
	"strings"
	"time"

	"github.com/gbabineau/statelist/internal/domain"
	"github.com/gbabineau/statelist/internal/infra/fsx"
	"github.com/gbabineau/statelist/internal/links"
)

// 分组头背景色（与既有出版物一致）。
const (
	htmlOrderFill  = "#D9D9D9"
	htmlFamilyFill = "#B8CCE4"
)

// 固定列宽（百分比）。
var htmlColumnWidths = []string{"2%", "25%", "22%", "12%", "19%", "20%"}

// WriteHTML 把名录渲染为 HTML 表格片段并原子写入 path。
// 产出是片段而非完整页面：它被粘贴进既有网站的宿主页面。
// generated 用于片段头部的生成时间注释。
func WriteHTML(path string, records []domain.Record, generated time.Time) error {
	var b strings.Builder

	fmt.Fprintf(&b, "<!-- This table was generated on %s programmatically by https://github.com/gbabineau/statelist -->\n",
		generated.Format("January 2, 2006"))
	b.WriteString("<table style=\"width:100%\" border=\"3\">\n")

	b.WriteString("<tr>\n")
	for i, h := range ColumnHeaders {
		fmt.Fprintf(&b, "  <td style=\"width:%s\" align=\"center\"><font size=\"5\">%s</font></td>\n",
			htmlColumnWidths[i], html.EscapeString(h))
	}
	b.WriteString("</tr>\n")

	err := walk(records, visitor{
		Historical: func() error {
			fmt.Fprintf(&b, "<tr><td align=\"center\" colspan=\"6\"><font size=\"5\">%s</font></td></tr>\n",
				HistoricalBanner)
			return nil
		},
		Order: func(name string) error {
			writeHTMLGroupHeader(&b, htmlOrderFill, "Order", name)
			return nil
		},
		Family: func(name string) error {
			writeHTMLGroupHeader(&b, htmlFamilyFill, "Family", name)
			return nil
		},
		Taxon: func(rec domain.Record, indexText string) error {
			writeHTMLTaxon(&b, rec, indexText)
			return nil
		},
	})
	if err != nil {
		return err
	}

	b.WriteString("</table>\n")
	return fsx.WriteFileAtomicReplace(filepath.Dir(path), filepath.Base(path), []byte(b.String()))
}

func writeHTMLGroupHeader(b *strings.Builder, fill, level, name string) {
	fmt.Fprintf(b, "<tr>\n  <td colspan=\"6\" bgcolor=%q><font size=\"4\">&nbsp;&nbsp;%s %s</font></td>\n</tr>\n",
		fill, level, html.EscapeString(name))
}

func writeHTMLTaxon(b *strings.Builder, rec domain.Record, indexText string) {
	b.WriteString("<tr>\n")
	fmt.Fprintf(b, "  <td align=\"center\">%s</td>\n", indexText)
	fmt.Fprintf(b, "  <td align=\"center\"><a href=%q target=\"_blank\">%s</a></td>\n",
		links.Species(rec.SpeciesCode), html.EscapeString(rec.DisplayName))
	fmt.Fprintf(b, "  <td align=\"left\">&nbsp;&nbsp;<i>%s</i></td>\n", html.EscapeString(rec.SciName))
	fmt.Fprintf(b, "  <td align=\"center\">%s</td>\n", html.EscapeString(rec.StateStatus))
	fmt.Fprintf(b, "  <td align=\"center\"><a href=%q target=\"_blank\">Map</a></td>\n", links.Map(rec.SpeciesCode))
	fmt.Fprintf(b, "  <td align=\"center\"><a href=%q target=\"_blank\">Chart</a></td>\n", links.Chart(rec.SpeciesCode))
	b.WriteString("</tr>\n")
}
