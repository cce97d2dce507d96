package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"lp-research-go/config"
	"lp-research-go/internal/handler"
	"lp-research-go/internal/logging"
	"lp-research-go/internal/service"
	"lp-research-go/internal/store"
)

func main() {
	// 加载 .env 文件（如果存在）
	envErr := godotenv.Load()

	cfg := config.Load()
	logging.Init(cfg.LogLevel)

	if envErr != nil {
		slog.Info("No .env file found, using environment variables")
	}

	// API key 每次请求时读取，这里只提示
	if !config.KeyConfigured(config.GeminiAPIKey()) {
		slog.Warn("GEMINI_API_KEY not configured, analysis requests will fail until it is set")
	}

	// 分析记录（优先使用PostgreSQL，否则使用内存）
	runs, err := store.Open(cfg.DatabaseURL)
	switch {
	case err != nil:
		slog.Warn("Failed to connect to PostgreSQL, using memory run log", slog.Any("error", err))
	case cfg.DatabaseURL != "":
		slog.Info("Using PostgreSQL run log")
	default:
		slog.Info("DATABASE_URL not configured, using memory run log")
	}

	lpService := service.NewLPService(cfg, runs)

	analyzeHandler := handler.NewAnalyzeHandler(lpService)
	pageHandler := handler.NewPageHandler(lpService)

	// 设置路由
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", analyzeHandler.Health)
	mux.HandleFunc("POST /api/analyze", analyzeHandler.Analyze)
	mux.HandleFunc("GET /api/runs", analyzeHandler.Runs)
	mux.HandleFunc("GET /", pageHandler.Index)
	mux.HandleFunc("POST /{$}", pageHandler.Submit)

	// CORS中间件
	corsHandler := corsMiddleware(mux)

	slog.Info("Server starting", slog.String("port", cfg.Port), slog.String("model", cfg.GeminiModel))
	if err := http.ListenAndServe(":"+cfg.Port, corsHandler); err != nil {
		slog.Error("Server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
