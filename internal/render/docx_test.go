package render

import (
	"archive/zip"
	"io"
	"path/filepath"
	"strings"
	"testing"
)

func readDocxPart(t *testing.T, path, name string) string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("打开 docx 失败：%v", err)
	}
	defer zr.Close()
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("打开部件失败：%v", err)
		}
		defer rc.Close()
		b, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("读取部件失败：%v", err)
		}
		return string(b)
	}
	t.Fatalf("docx 缺少部件 %q", name)
	return ""
}

func TestWriteDocx_包结构(t *testing.T) {
	p := filepath.Join(t.TempDir(), "list.docx")
	if err := WriteDocx(p, sampleRecords()); err != nil {
		t.Fatalf("不期望错误：%v", err)
	}

	zr, err := zip.OpenReader(p)
	if err != nil {
		t.Fatalf("打开 docx 失败：%v", err)
	}
	defer zr.Close()

	want := map[string]bool{
		"[Content_Types].xml":          false,
		"_rels/.rels":                  false,
		"word/document.xml":            false,
		"word/_rels/document.xml.rels": false,
	}
	for _, f := range zr.File {
		if _, ok := want[f.Name]; ok {
			want[f.Name] = true
		}
	}
	for name, ok := range want {
		if !ok {
			t.Fatalf("docx 缺少部件 %q", name)
		}
	}
}

func TestWriteDocx_文档内容(t *testing.T) {
	p := filepath.Join(t.TempDir(), "list.docx")
	if err := WriteDocx(p, sampleRecords()); err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	doc := readDocxPart(t, p, "word/document.xml")

	for _, s := range []string{
		Title,
		"Order: Anseriformes",
		"Family: Anatidae",
		HistoricalBanner,
		"Brant",
		"Numenius borealis",
		`w:gridSpan w:val="6"`,
		`w:fill="` + docxOrderFill + `"`,
		`w:fill="` + docxFamilyFill + `"`,
		`w:color w:val="` + docxLinkColor + `"`,
		`w:u w:val="none"`,
	} {
		if !strings.Contains(doc, s) {
			t.Fatalf("document.xml 缺少 %q", s)
		}
	}
}

func TestWriteDocx_超链接关系(t *testing.T) {
	p := filepath.Join(t.TempDir(), "list.docx")
	if err := WriteDocx(p, sampleRecords()); err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	rels := readDocxPart(t, p, "word/_rels/document.xml.rels")

	// 每个物种行 3 个链接。
	if n := strings.Count(rels, `TargetMode="External"`); n != 12 {
		t.Fatalf("期望 12 个外部链接，实际 %d", n)
	}
	if !strings.Contains(rels, "https://ebird.org/species/brant/US-VA") {
		t.Fatalf("缺少物种账户链接")
	}

	doc := readDocxPart(t, p, "word/document.xml")
	if !strings.Contains(doc, `r:id="rId1"`) {
		t.Fatalf("document.xml 未引用 rId1")
	}
}
