package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Init 初始化全局 slog logger，输出到stdout
func Init(level string) {
	InitWriter(os.Stdout, level)
}

// InitWriter 初始化全局 slog logger，输出到指定writer
func InitWriter(w io.Writer, level string) {
	slog.SetDefault(New(w, level))
}

// New 创建 tint handler 的 logger
func New(w io.Writer, level string) *slog.Logger {
	handler := tint.NewHandler(w, &tint.Options{
		Level:      ParseLevel(level),
		TimeFormat: time.Kitchen,
		AddSource:  true,
	})
	return slog.New(handler)
}

// ParseLevel 未识别的值按 info 处理
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
