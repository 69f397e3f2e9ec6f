package render

// 最小 WordprocessingML 写出器。
// 只实现名录文档需要的子集：段落、表格、跨列底纹单元格、外部超链接。
// 一个 docx 包固定包含四个部件：
//   [Content_Types].xml / _rels/.rels / word/document.xml / word/_rels/document.xml.rels

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
)

const (
	nsWordprocessing = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsRelationships  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPackageRels    = "http://schemas.openxmlformats.org/package/2006/relationships"

	relTypeHyperlink = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
	relTypeDocument  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
)

const contentTypesXML = xml.Header + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`</Types>`

type wDocument struct {
	XMLName xml.Name `xml:"w:document"`
	NSW     string   `xml:"xmlns:w,attr"`
	NSR     string   `xml:"xmlns:r,attr"`
	Body    wBody
}

type wBody struct {
	XMLName xml.Name `xml:"w:body"`
	Title   wParagraph
	Table   wTable
}

type wParagraph struct {
	XMLName xml.Name `xml:"w:p"`
	Props   *wParaProps
	Content []any // wRun 与 wHyperlink
}

type wParaProps struct {
	XMLName xml.Name `xml:"w:pPr"`
	Justify *wVal // w:jc
}

// wVal 是形如 <w:xxx w:val="..."/> 的通用叶子元素；XMLName 由构造方指定。
type wVal struct {
	XMLName xml.Name
	Val     string `xml:"w:val,attr"`
}

// wEmpty 是无属性的空元素（如 <w:b/>）。
type wEmpty struct {
	XMLName xml.Name
}

type wRun struct {
	XMLName xml.Name `xml:"w:r"`
	Props   *wRunProps
	Text    *wText
}

type wRunProps struct {
	XMLName   xml.Name `xml:"w:rPr"`
	Bold      *wEmpty  // w:b
	Color     *wVal    // w:color
	Size      *wVal    // w:sz（半磅）
	Underline *wVal    // w:u
}

type wText struct {
	XMLName xml.Name `xml:"w:t"`
	Space   string   `xml:"xml:space,attr,omitempty"`
	Value   string   `xml:",chardata"`
}

type wHyperlink struct {
	XMLName xml.Name `xml:"w:hyperlink"`
	RID     string   `xml:"r:id,attr"`
	Run     wRun
}

type wTable struct {
	XMLName xml.Name `xml:"w:tbl"`
	Props   wTableProps
	Grid    wTableGrid
	Rows    []wTableRow
}

type wTableProps struct {
	XMLName xml.Name `xml:"w:tblPr"`
	Width   wTableWidth
	Borders wTableBorders
}

type wTableWidth struct {
	XMLName xml.Name `xml:"w:tblW"`
	W       string   `xml:"w:w,attr"`
	Type    string   `xml:"w:type,attr"`
}

type wTableBorders struct {
	XMLName xml.Name `xml:"w:tblBorders"`
	Edges   []wBorder
}

type wBorder struct {
	XMLName xml.Name
	Val     string `xml:"w:val,attr"`
	Size    string `xml:"w:sz,attr"`
	Color   string `xml:"w:color,attr"`
}

type wTableGrid struct {
	XMLName xml.Name `xml:"w:tblGrid"`
	Cols    []wGridCol
}

type wGridCol struct {
	XMLName xml.Name `xml:"w:gridCol"`
	W       string   `xml:"w:w,attr"` // twip
}

type wTableRow struct {
	XMLName xml.Name `xml:"w:tr"`
	Cells   []wTableCell
}

type wTableCell struct {
	XMLName xml.Name `xml:"w:tc"`
	Props   *wCellProps
	Para    wParagraph
}

type wCellProps struct {
	XMLName xml.Name `xml:"w:tcPr"`
	Span    *wVal // w:gridSpan
	Shade   *wShading
}

type wShading struct {
	XMLName xml.Name `xml:"w:shd"`
	Val     string   `xml:"w:val,attr"`
	Fill    string   `xml:"w:fill,attr"`
}

type wRelationships struct {
	XMLName xml.Name `xml:"Relationships"`
	NS      string   `xml:"xmlns,attr"`
	Rels    []wRelationship
}

type wRelationship struct {
	XMLName xml.Name `xml:"Relationship"`
	ID      string   `xml:"Id,attr"`
	Type    string   `xml:"Type,attr"`
	Target  string   `xml:"Target,attr"`
	Mode    string   `xml:"TargetMode,attr,omitempty"`
}

// relSet 收集 document.xml 引用的关系并分配 rId。
type relSet struct {
	rels []wRelationship
}

// addHyperlink 登记一个外部超链接，返回其 rId。
func (r *relSet) addHyperlink(target string) string {
	id := fmt.Sprintf("rId%d", len(r.rels)+1)
	r.rels = append(r.rels, wRelationship{
		ID:     id,
		Type:   relTypeHyperlink,
		Target: target,
		Mode:   "External",
	})
	return id
}

func elem(local string) xml.Name { return xml.Name{Local: local} }

func val(local, v string) *wVal { return &wVal{XMLName: elem(local), Val: v} }

func singleBorder(local string) wBorder {
	return wBorder{XMLName: elem(local), Val: "single", Size: "4", Color: "auto"}
}

// writeDocxArchive 把组装好的 document 与关系表打包为 docx（zip）。
func writeDocxArchive(w io.Writer, doc wDocument, rels *relSet) error {
	zw := zip.NewWriter(w)

	parts := []struct {
		name string
		body func() ([]byte, error)
	}{
		{"[Content_Types].xml", func() ([]byte, error) { return []byte(contentTypesXML), nil }},
		{"_rels/.rels", func() ([]byte, error) {
			return marshalPart(wRelationships{
				NS: nsPackageRels,
				Rels: []wRelationship{
					{ID: "rId1", Type: relTypeDocument, Target: "word/document.xml"},
				},
			})
		}},
		{"word/document.xml", func() ([]byte, error) { return marshalPart(doc) }},
		{"word/_rels/document.xml.rels", func() ([]byte, error) {
			return marshalPart(wRelationships{NS: nsPackageRels, Rels: rels.rels})
		}},
	}

	for _, p := range parts {
		f, err := zw.Create(p.name)
		if err != nil {
			return err
		}
		b, err := p.body()
		if err != nil {
			return err
		}
		if _, err := f.Write(b); err != nil {
			return err
		}
	}
	return zw.Close()
}

func marshalPart(v any) ([]byte, error) {
	b, err := xml.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), b...), nil
}
