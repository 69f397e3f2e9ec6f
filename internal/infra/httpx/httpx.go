package httpx

import (
	"errors"
	"net/http"
	"time"
)

const (
	// taxonomy 全量数据集 ~1.7 万条，给响应体留足时间。
	defaultTimeout  = 60 * time.Second
	defaultRetryMax = 2
)

// Transport 把“API token 注入 + 有界重试”固化为统一策略。
//
// 设计目标：taxonomy 来源只负责“定位端点 + 解析 JSON”，不关心凭据与网络策略细节。
type Transport struct {
	Base http.RoundTripper

	// Token 非空时，为每个请求设置 X-eBirdApiToken（不覆盖调用方已设置的值）。
	Token string

	// RetryMax 表示最大重试次数（不含首次尝试）。例如 2 表示最多 3 次尝试。
	RetryMax int
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, errors.New("nil request")
	}
	if t.Base == nil {
		return nil, errors.New("nil base transport")
	}

	// 只对“可重放”的请求做重试：GET/HEAD 且无 body。
	canRetry := (req.Method == http.MethodGet || req.Method == http.MethodHead) && req.Body == nil
	max := t.RetryMax
	if max < 0 {
		max = 0
	}
	if !canRetry {
		max = 0
	}

	var lastErr error
	for attempt := 0; attempt <= max; attempt++ {
		r := cloneRequest(req)
		if t.Token != "" && r.Header.Get("X-eBirdApiToken") == "" {
			r.Header.Set("X-eBirdApiToken", t.Token)
		}

		resp, err := t.Base.RoundTrip(r)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if req.Context().Err() != nil {
			// ctx 已取消：不再重试，直接返回最后错误（更可解释）。
			return nil, lastErr
		}
	}
	return nil, lastErr
}

func cloneRequest(req *http.Request) *http.Request {
	// Clone 会复制 Header 等，避免在 RoundTripper 内部“污染”调用方的 request。
	return req.Clone(req.Context())
}

// NewAPIClient 构造用于 taxonomy 拉取的 HTTP client。
//
// 规则：
// - token 以 header 方式逐请求注入（eBird API 的鉴权约定）
// - 有界重试 + 总超时
func NewAPIClient(token string) *http.Client {
	base := &http.Transport{
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 15 * time.Second,
	}
	return &http.Client{
		Transport: &Transport{
			Base:     base,
			Token:    token,
			RetryMax: defaultRetryMax,
		},
		Timeout: defaultTimeout,
	}
}
