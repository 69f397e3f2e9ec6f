package csvio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/gbabineau/statelist/internal/domain"
)

// 输入 CSV 的固定列名（§6 外部接口）。更新后的输出 CSV 也能按同样的列名读回。
const (
	ColCommonName  = "comName"
	ColStateStatus = "State Status"
	ColSortAs      = "Sort as"
)

// ReadInput 读取名录输入 CSV。
//
// 约束：
// - 首行是表头；列按名字定位而非下标（更新后的输出 CSV 列序不同，也必须能读回）
// - 行级问题（空 comName 等）不在这里判定：原样交给合并引擎统一上报
// - 输入来自非程序员手工编辑（常见 Excel 导出产物），必须容忍 UTF-8 BOM
//   与 Windows-1252 编码
func ReadInput(path string) ([]domain.InputRow, error) {
	all, cols, err := readTable(path)
	if err != nil {
		return nil, err
	}
	if _, ok := cols[ColCommonName]; !ok {
		return nil, fmt.Errorf("表头缺少必需列 %q", ColCommonName)
	}

	rows := make([]domain.InputRow, 0, len(all))
	for i, rec := range all {
		rows = append(rows, domain.InputRow{
			Line:        i + 2, // 表头为第 1 行
			CommonName:  field(rec, cols, ColCommonName),
			StateStatus: field(rec, cols, ColStateStatus),
			SortAs:      field(rec, cols, ColSortAs),
		})
	}
	return rows, nil
}

// readTable 读取并解码整个 CSV，返回数据行与表头列索引。
func readTable(path string) ([][]string, map[string]int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	b, err = decodeToUTF8(b)
	if err != nil {
		return nil, nil, fmt.Errorf("输入文件编码无法识别：%w", err)
	}

	r := csv.NewReader(bytes.NewReader(b))
	r.FieldsPerRecord = -1 // 手工编辑的行可能缺列/多列；宁可读出空串也不中断批次

	all, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("输入文件为空（缺少表头）")
	}
	return all[1:], indexColumns(all[0]), nil
}

func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	return cols
}

func field(rec []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// decodeToUTF8 规范化输入编码：
// - 去掉 UTF-8 BOM（Excel 的 "CSV UTF-8" 导出会带）
// - 非法 UTF-8 按 Windows-1252 解码（Excel 的普通 CSV 导出）
func decodeToUTF8(b []byte) ([]byte, error) {
	b = bytes.TrimPrefix(b, []byte{0xEF, 0xBB, 0xBF})
	if utf8.Valid(b) {
		return b, nil
	}
	decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), b)
	if err != nil {
		return nil, err
	}
	return decoded, nil
}
