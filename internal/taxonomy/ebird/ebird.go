package ebird

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/gbabineau/statelist/internal/domain"
	"github.com/gbabineau/statelist/internal/taxonomy"
)

// DefaultBaseURL 是 eBird API v2 的官方入口。
const DefaultBaseURL = "https://api.ebird.org/v2"

// Source 实现 eBird taxonomy 数据集的抓取与解析。
//
// 约束：
// - 完整数据集一次拉取（~1.7 万条），不做分页
// - Fetch 不做缓存/限速（快照缓存由上层 cache 层实现；重试在 http 层）
// - Parse 必须是纯函数（依赖输入 raw）
type Source struct {
	// BaseURL 允许指向测试服务器或镜像；为空时使用官方入口。
	BaseURL string
}

func (Source) Name() string { return "ebird" }

func (s Source) baseURL() string {
	u := strings.TrimSpace(s.BaseURL)
	if u == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(u, "/")
}

// Fetch 拉取完整的 eBird taxonomy（JSON）。
// API key 的注入由 http client 的 Transport 统一完成，这里不感知凭据。
func (s Source) Fetch(ctx context.Context, c *http.Client) ([]byte, string, error) {
	if c == nil {
		return nil, "", errors.New("http client 不能为空")
	}

	u := s.baseURL() + "/ref/taxonomy/ebird?fmt=json"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := c.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", &taxonomy.HTTPStatusError{URL: u, StatusCode: resp.StatusCode}
	}
	b, err := io.ReadAll(resp.Body)
	return b, u, err
}

// Parse 把 taxonomy JSON 解析为规范条目集：
// - 过滤 hybrid 与 domestic（州名录不收录杂交与家养个体）
// - 剔除 comName 为空的条目
// - 按 TaxonOrder 升序输出（查询表与前缀回退依赖该顺序）
func (Source) Parse(raw []byte) ([]domain.Taxon, error) {
	if len(raw) == 0 {
		return nil, errors.New("taxonomy 数据为空")
	}

	var taxa []domain.Taxon
	if err := json.Unmarshal(raw, &taxa); err != nil {
		return nil, fmt.Errorf("taxonomy JSON 无效：%w", err)
	}

	out := make([]domain.Taxon, 0, len(taxa))
	for _, t := range taxa {
		if t.Category == domain.CategoryHybrid || t.Category == domain.CategoryDomestic {
			continue
		}
		if strings.TrimSpace(t.CommonName) == "" {
			continue
		}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil, errors.New("taxonomy 无可用条目")
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].TaxonOrder < out[j].TaxonOrder })
	return out, nil
}
