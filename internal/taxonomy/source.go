package taxonomy

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gbabineau/statelist/internal/domain"
)

// Source 把“上游数据集变化”限制在来源实现内部；核心流程只依赖统一接口与稳定的 Taxon。
//
// 约束：
// - Fetch 不做缓存、不做限速（缓存由上层 cache 层统一实现；重试在 http 层）
// - Parse 必须是纯函数：相同输入 => 相同输出
// - srcURL 必须是实际请求的 URL（用于 report 追溯与错误提示）
type Source interface {
	Name() string
	Fetch(ctx context.Context, c *http.Client) (raw []byte, srcURL string, err error)
	Parse(raw []byte) ([]domain.Taxon, error)
}

// Error 是来源阶段的可追溯错误。
// 上层可以据此把失败归类为 fetch_failed / parse_failed。
type Error struct {
	Source string // source name（小写）
	Stage  string // "fetch" 或 "parse"
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("source=%s stage=%s: %v", e.Source, e.Stage, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatusError 表示上游返回了非 2xx 的 HTTP 状态码。
// Source.Fetch 可以返回该错误，让上层生成更可操作的提示。
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	if e == nil {
		return "HTTP status error"
	}
	u := strings.TrimSpace(e.URL)
	if u == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d url=%s", e.StatusCode, u)
}
