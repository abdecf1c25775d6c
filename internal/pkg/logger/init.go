package logger

import (
	"fmt"
	"io"
	log "log/slog"
	"os"
	"path/filepath"
)

// LogWriter gin 访问日志使用的输出
var LogWriter io.Writer = os.Stdout

var logFile *os.File

// InitLogger 日志输出到 stdout，配置了 logFile 时同时追加写入文件
func InitLogger(path string) error {
	hStdout := log.NewJSONHandler(os.Stdout, &log.HandlerOptions{Level: log.LevelInfo})

	var finalHandler log.Handler = hStdout
	LogWriter = os.Stdout

	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create log dir: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		hFile := log.NewJSONHandler(f, &log.HandlerOptions{Level: log.LevelInfo})
		finalHandler = NewTeeHandler(hStdout, hFile)
		LogWriter = io.MultiWriter(os.Stdout, f)
		logFile = f
	}

	log.SetDefault(log.New(&ContextHandler{finalHandler}))
	return nil
}

// Close 关闭日志文件
func Close() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	LogWriter = os.Stdout
	return err
}
