package cache

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gbabineau/statelist/internal/infra/fsx"
)

// DefaultDir 是 taxonomy 快照缓存的默认目录（相对工作目录）。
const DefaultDir = ".cache"

const taxonomyFile = "taxonomy.json"

// Store 提供 <dir>/taxonomy.json 的快照缓存读写。
//
// 约束：
// - 缓存不存在不算错误（miss 由调用方走网络补齐）
// - 缓存内容是来源的原始字节：Parse 失败时按坏缓存处理，重新拉取
type Store struct {
	Dir string
}

func New(dir string) Store {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = DefaultDir
	}
	return Store{Dir: filepath.Clean(dir)}
}

// TaxonomyPath 返回快照文件路径。
func (s Store) TaxonomyPath() string {
	return filepath.Join(s.Dir, taxonomyFile)
}

// ReadTaxonomy 读取快照。返回值 ok 表示是否命中。
func (s Store) ReadTaxonomy() ([]byte, bool, error) {
	b, err := os.ReadFile(s.TaxonomyPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return b, true, nil
}

// WriteTaxonomy 原子写入快照（覆盖旧快照）。
func (s Store) WriteTaxonomy(raw []byte) error {
	return fsx.WriteFileAtomicReplace(s.Dir, taxonomyFile, raw)
}
