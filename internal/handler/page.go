package handler

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"lp-research-go/internal/model"
	"lp-research-go/internal/service"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// PageStatus 页面状态，同一时刻只能是其中一个
type PageStatus int

const (
	PageIdle PageStatus = iota
	PageLoading
	PageSucceeded
	PageFailed
)

// PageState 表单页面的状态
// 通过构造函数创建，不会出现 loading 和 result 同时存在的情况
type PageState struct {
	status  PageStatus
	url     string
	result  *model.AnalysisResult
	message string
}

func IdleState(url string) PageState {
	return PageState{status: PageIdle, url: url}
}

// loadingState 提交后等待结果，页面脚本在客户端切换到此状态
func loadingState(url string) PageState {
	return PageState{status: PageLoading, url: url}
}

func SucceededState(url string, result *model.AnalysisResult) PageState {
	return PageState{status: PageSucceeded, url: url, result: result}
}

func FailedState(url, message string) PageState {
	return PageState{status: PageFailed, url: url, message: message}
}

func (s PageState) Status() PageStatus { return s.status }
func (s PageState) URL() string { return s.url }
func (s PageState) Loading() bool { return s.status == PageLoading }
func (s PageState) Result() *model.AnalysisResult { return s.result }
func (s PageState) ErrorMessage() string { return s.message }

// PageHandler 表单页面
type PageHandler struct {
	service *service.LPService
}

// NewPageHandler 创建页面处理器
func NewPageHandler(svc *service.LPService) *PageHandler {
	return &PageHandler{service: svc}
}

// Index GET / 显示空表单
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	render(w, http.StatusOK, IdleState(""))
}

// Submit POST / 表单提交，执行分析后渲染结果或错误
func (h *PageHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		render(w, http.StatusBadRequest, FailedState("", "invalid form"))
		return
	}
	url := r.PostFormValue("url")

	result, err := h.service.Analyze(r.Context(), url)
	if err != nil {
		ae := service.AsAnalysisError(err)
		render(w, ae.HTTPStatus(), FailedState(url, ae.Message))
		return
	}

	render(w, http.StatusOK, SucceededState(url, result))
}

func render(w http.ResponseWriter, status int, state PageState) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, state); err != nil {
		slog.Error("[Page Handler] Failed to render page", slog.Any("error", err))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
