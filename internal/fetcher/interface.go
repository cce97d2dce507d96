package fetcher

import "context"

// HTMLFetcher 获取LP页面HTML
type HTMLFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// LLMClient 生成式AI客户端 (Gemini)
type LLMClient interface {
	Generate(ctx context.Context, apiKey, prompt string) (string, error)
}

// 编译期检查
var (
	_ HTMLFetcher = (*PageFetcher)(nil)
	_ LLMClient   = (*GeminiClient)(nil)
)
