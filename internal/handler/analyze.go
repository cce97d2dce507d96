package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"lp-research-go/internal/model"
	"lp-research-go/internal/service"
)

const (
	defaultRunsLimit = 20
	maxRunsLimit     = 100
	maxRequestBytes  = 1 << 20
)

// AnalyzeHandler LP分析HTTP处理器
type AnalyzeHandler struct {
	service *service.LPService
}

// NewAnalyzeHandler 创建处理器
func NewAnalyzeHandler(svc *service.LPService) *AnalyzeHandler {
	return &AnalyzeHandler{service: svc}
}

// Analyze 处理分析请求
// POST /api/analyze
// Body: {"url": "https://example.com/lp"}
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req model.AnalysisRequest

	// 解析JSON请求体
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	slog.Info("[Analyze Handler] Starting analysis", slog.String("url", req.URL))

	result, err := h.service.Analyze(r.Context(), req.URL)
	if err != nil {
		ae := service.AsAnalysisError(err)
		writeError(w, ae.HTTPStatus(), ae.Message)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Runs 最近的分析记录
// GET /api/runs?limit=20
func (h *AnalyzeHandler) Runs(w http.ResponseWriter, r *http.Request) {
	limit := defaultRunsLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxRunsLimit)
	}

	runs, err := h.service.Runs().Recent(r.Context(), limit)
	if err != nil {
		slog.Error("[Analyze Handler] Failed to load runs", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "failed to load runs")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(runs),
		"runs":  runs,
	})
}

// Health 健康检查
func (h *AnalyzeHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
