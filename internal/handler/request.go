package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"lp-research-go/internal/model"
)

// writeJSON 写JSON响应
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("[Handler] Failed to write response", slog.Any("error", err))
	}
}

// writeError 错误统一返回 {"error": "..."}
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, model.ErrorResponse{Error: message})
}
