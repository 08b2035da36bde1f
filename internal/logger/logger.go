// Package logger 建立服務共用的 zerolog.Logger
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var output io.Writer = os.Stdout

// New 依環境選擇輸出格式：development 用 console，其餘輸出 JSON。
// level 無法解析時退回 info。
func New(level, env string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	w := output
	if env == "development" {
		w = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339, NoColor: true}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}
