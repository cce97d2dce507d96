package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"lp-research-go/config"
	"lp-research-go/internal/fetcher"
	"lp-research-go/internal/model"
	"lp-research-go/internal/store"
)

// Stage 分析流程的阶段，只会向前推进
type Stage string

const (
	StageIdle       Stage = "idle"
	StageFetching   Stage = "fetching"
	StageExtracting Stage = "extracting"
	StagePrompting  Stage = "prompting"
	StageCallingAI  Stage = "calling_ai"
	StageParsing    Stage = "parsing"
	StageDone       Stage = "done"
	StageFailed     Stage = "failed"
)

// ProgressFunc 阶段变化回调
type ProgressFunc func(stage Stage)

// LPService LP分析服务
type LPService struct {
	htmlFetcher fetcher.HTMLFetcher
	llmClient   fetcher.LLMClient
	apiKey      func() string
	runs        store.RunLog
}

// NewLPService 根据配置创建服务，API key 每次请求时从环境变量读取
func NewLPService(cfg *config.Config, runs store.RunLog) *LPService {
	return NewLPServiceWith(
		fetcher.NewPageFetcher(cfg.FetchTimeout),
		fetcher.NewGeminiClient(cfg.GeminiBaseURL, cfg.GeminiModel, cfg.GeminiTimeout),
		config.GeminiAPIKey,
		runs,
	)
}

// NewLPServiceWith 使用指定的依赖创建服务
func NewLPServiceWith(htmlFetcher fetcher.HTMLFetcher, llmClient fetcher.LLMClient, apiKey func() string, runs store.RunLog) *LPService {
	if runs == nil {
		runs = store.NewMemoryRunLog(store.DefaultMemoryCapacity)
	}
	return &LPService{
		htmlFetcher: htmlFetcher,
		llmClient:   llmClient,
		apiKey:      apiKey,
		runs:        runs,
	}
}

// Runs 分析记录
func (s *LPService) Runs() store.RunLog {
	return s.runs
}

// Analyze 分析LP
func (s *LPService) Analyze(ctx context.Context, url string) (*model.AnalysisResult, error) {
	return s.AnalyzeWithProgress(ctx, url, nil)
}

// AnalyzeWithProgress 分析LP，每进入一个阶段调用一次progress
// 任一阶段失败直接结束，不重试，不返回部分结果
func (s *LPService) AnalyzeWithProgress(ctx context.Context, url string, progress ProgressFunc) (*model.AnalysisResult, error) {
	start := time.Now()
	url = strings.TrimSpace(url)

	result, err := s.run(ctx, url, progress)

	status := http.StatusOK
	run := store.Run{URL: url, Outcome: store.OutcomeSucceeded}
	if err != nil {
		ae := AsAnalysisError(err)
		status = ae.HTTPStatus()
		run.Outcome = store.OutcomeFailed
		run.Kind = ae.Kind.String()
		slog.Error("[LP Service] Analysis failed",
			slog.String("url", url),
			slog.String("stage", string(ae.Stage)),
			slog.String("kind", ae.Kind.String()),
			slog.Any("error", ae.Err))
	}
	run.Status = status
	run.DurationMS = time.Since(start).Milliseconds()
	run.CreatedAt = start

	// 客户端断开也要记录
	if recErr := s.runs.Record(context.WithoutCancel(ctx), run); recErr != nil {
		slog.Warn("[LP Service] Failed to record run", slog.String("url", url), slog.Any("error", recErr))
	}

	return result, err
}

func (s *LPService) run(ctx context.Context, url string, progress ProgressFunc) (*model.AnalysisResult, error) {
	enter := func(stage Stage) {
		slog.Debug("[LP Service] Stage", slog.String("url", url), slog.String("stage", string(stage)))
		if progress != nil {
			progress(stage)
		}
	}
	fail := func(kind Kind, stage Stage, message string, err error) error {
		if progress != nil {
			progress(StageFailed)
		}
		return &AnalysisError{Kind: kind, Stage: stage, Message: message, Err: err}
	}

	if url == "" {
		return nil, fail(KindInput, StageIdle, "URL is required", errors.New("empty url"))
	}

	// API key 在任何网络请求之前检查
	apiKey := s.apiKey()
	if !config.KeyConfigured(apiKey) {
		return nil, fail(KindConfig, StageIdle,
			"Gemini API key is not configured. Set GEMINI_API_KEY in your .env file.", errors.New("GEMINI_API_KEY missing or placeholder"))
	}

	// 1. 获取HTML
	enter(StageFetching)
	html, err := s.htmlFetcher.Fetch(ctx, url)
	if err != nil {
		var statusErr *fetcher.StatusError
		if errors.As(err, &statusErr) {
			slog.Warn("[LP Service] Page returned error status",
				slog.String("url", url),
				slog.Int("status", statusErr.StatusCode),
				slog.String("body", statusErr.Body))
			return nil, fail(KindFetch, StageFetching,
				fmt.Sprintf("could not fetch HTML from the URL (status: %d)", statusErr.StatusCode), err)
		}
		slog.Warn("[LP Service] Page fetch failed", slog.String("url", url), slog.Any("error", err))
		return nil, fail(KindFetch, StageFetching,
			fmt.Sprintf("could not access the URL. It may be blocked by CORS or a network error.\nerror: %s", err.Error()), err)
	}

	// 2. 提取文本
	enter(StageExtracting)
	page := fetcher.Extract(html)
	slog.Info("[LP Service] Page extracted",
		slog.String("url", url),
		slog.String("title", page.Title),
		slog.Int("body_chars", len([]rune(page.BodyText))))

	// 3. 生成prompt
	enter(StagePrompting)
	prompt := BuildPrompt(page)

	// 4. 调用Gemini
	enter(StageCallingAI)
	responseText, err := s.llmClient.Generate(ctx, apiKey, prompt)
	if err != nil {
		status := 0
		var apiErr *fetcher.APIError
		if errors.As(err, &apiErr) {
			status = apiErr.StatusCode
		}
		if ClassifyAIFailure(status, err.Error()) == KindAuth {
			return nil, fail(KindAuth, StageCallingAI,
				fmt.Sprintf("Gemini API key is invalid. Check your API key.\nerror: %s", err.Error()), err)
		}
		return nil, fail(KindUpstream, StageCallingAI,
			fmt.Sprintf("Gemini API call failed.\nerror: %s", err.Error()), err)
	}

	// 5. 解析JSON
	enter(StageParsing)
	result, err := fetcher.ParseAnalysis(responseText)
	if err != nil {
		slog.Error("[LP Service] Failed to parse Gemini response",
			slog.String("url", url),
			slog.String("response", responseText))
		return nil, fail(KindParse, StageParsing,
			fmt.Sprintf("failed to parse JSON. The Gemini API response is invalid.\nresponse: %s...", fetcher.Truncate(responseText, 200)), err)
	}

	enter(StageDone)
	slog.Info("[LP Service] Analysis completed",
		slog.String("url", url),
		slog.Int("impactful_words", len(result.ImpactfulWords)))
	return result, nil
}
