package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// BrowserUserAgent 部分LP会拒绝非浏览器UA
const BrowserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

const (
	maxPageBytes     = 10 << 20
	maxErrorBodySize = 512
)

// StatusError 目标页面返回非2xx状态码
type StatusError struct {
	StatusCode int
	Body       string // 响应体前缀，只用于服务端日志
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("page returned status %d", e.StatusCode)
}

// PageFetcher LP页面获取器
type PageFetcher struct {
	httpClient *http.Client
}

// NewPageFetcher 创建页面获取器，timeout为0时不设置超时
func NewPageFetcher(timeout time.Duration) *PageFetcher {
	return &PageFetcher{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch 单次GET，不重试
func (f *PageFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", BrowserUserAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return "", &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	return string(body), nil
}
