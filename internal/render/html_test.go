package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
)

func renderHTML(t *testing.T) (*goquery.Document, string) {
	t.Helper()
	p := filepath.Join(t.TempDir(), "list.html")
	generated := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	if err := WriteHTML(p, sampleRecords(), generated); err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	raw, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(raw)))
	if err != nil {
		t.Fatalf("HTML 解析失败：%v", err)
	}
	return doc, string(raw)
}

func TestWriteHTML_表格结构(t *testing.T) {
	doc, raw := renderHTML(t)

	if !strings.Contains(raw, "generated on March 1, 2025") {
		t.Fatalf("缺少生成时间注释")
	}

	// 表头 + 3 个 order 头 + 3 个 family 头 + 横幅 + 4 个物种行。
	rows := doc.Find("tr")
	if rows.Length() != 12 {
		t.Fatalf("期望 12 行，实际 %d", rows.Length())
	}
	if doc.Find("tr").First().Find("td").Length() != 6 {
		t.Fatalf("表头应有 6 列")
	}

	groups := doc.Find(`td[colspan="6"]`)
	var labels []string
	groups.Each(func(_ int, s *goquery.Selection) {
		labels = append(labels, strings.TrimSpace(strings.ReplaceAll(s.Text(), " ", "")))
	})
	want := []string{
		"Order Anseriformes", "Family Anatidae",
		"Order Passeriformes", "Family Parulidae",
		HistoricalBanner,
		"Order Charadriiformes", "Family Scolopacidae",
	}
	if len(labels) != len(want) {
		t.Fatalf("期望 %d 个跨列行，实际 %v", len(want), labels)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Fatalf("第 %d 个跨列行：期望 %q，实际 %q", i, want[i], labels[i])
		}
	}

	// order 头浅灰，family 头浅蓝。
	if v, _ := groups.First().Attr("bgcolor"); v != htmlOrderFill {
		t.Fatalf("order 头底色期望 %s，实际 %s", htmlOrderFill, v)
	}
	if v, _ := groups.Eq(1).Attr("bgcolor"); v != htmlFamilyFill {
		t.Fatalf("family 头底色期望 %s，实际 %s", htmlFamilyFill, v)
	}
}

func TestWriteHTML_序号与链接(t *testing.T) {
	doc, _ := renderHTML(t)

	// 物种行 = 含 3 个链接的行。
	var indexTexts []string
	var speciesHrefs []string
	doc.Find("tr").Each(func(_ int, s *goquery.Selection) {
		if s.Find("a").Length() != 3 {
			return
		}
		indexTexts = append(indexTexts, strings.TrimSpace(s.Find("td").First().Text()))
		href, _ := s.Find("a").First().Attr("href")
		speciesHrefs = append(speciesHrefs, href)
	})

	if len(indexTexts) != 4 {
		t.Fatalf("期望 4 个物种行，实际 %d", len(indexTexts))
	}
	// 亚种与历史区序号留空。
	want := []string{"1", "2", "", ""}
	for i := range want {
		if indexTexts[i] != want[i] {
			t.Fatalf("第 %d 个物种行序号：期望 %q，实际 %q", i, want[i], indexTexts[i])
		}
	}
	if speciesHrefs[0] != "https://ebird.org/species/brant/US-VA" {
		t.Fatalf("物种链接错误：%q", speciesHrefs[0])
	}
}
