package service

import (
	"errors"
	"net/http"
	"strings"
)

// Kind 错误分类
type Kind int

const (
	KindInput    Kind = iota + 1 // 缺少URL
	KindFetch                    // 目标页面无法获取
	KindConfig                   // API key 未配置
	KindAuth                     // API key 被拒绝
	KindUpstream                 // Gemini 其他错误
	KindParse                    // Gemini 响应无法解析
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindFetch:
		return "fetch"
	case KindConfig:
		return "config"
	case KindAuth:
		return "auth"
	case KindUpstream:
		return "upstream"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// HTTPStatus 错误类型对应的HTTP状态码
func (k Kind) HTTPStatus() int {
	switch k {
	case KindInput, KindFetch:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// AnalysisError 分析流程中任一阶段的失败
// Message 是返回给用户的信息，Err 是原始错误（只写日志）
type AnalysisError struct {
	Kind    Kind
	Stage   Stage
	Message string
	Err     error
}

func (e *AnalysisError) Error() string {
	return e.Message
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// HTTPStatus 返回给调用方的状态码
func (e *AnalysisError) HTTPStatus() int {
	return e.Kind.HTTPStatus()
}

// AsAnalysisError 非 AnalysisError 的错误按 upstream 处理
func AsAnalysisError(err error) *AnalysisError {
	var ae *AnalysisError
	if errors.As(err, &ae) {
		return ae
	}
	return &AnalysisError{Kind: KindUpstream, Stage: StageFailed, Message: err.Error(), Err: err}
}

// ClassifyAIFailure 根据状态码和错误信息判断是否是API key问题
// status 为0表示没有拿到HTTP响应
func ClassifyAIFailure(status int, message string) Kind {
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return KindAuth
	}
	lower := strings.ToLower(message)
	if strings.Contains(lower, "api_key") || strings.Contains(lower, "api key") {
		return KindAuth
	}
	return KindUpstream
}
