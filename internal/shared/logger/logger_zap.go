// Package logger provides the zap logger shared by the server and salesctl.
//
// The logger writes to a rotated file (lumberjack) and exposes a helper
// for structured HTTP request logging.
package logger

import (
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// HTTPLogger wraps zap.Logger for HTTP event logging.
//
// Embedding *zap.Logger makes all zap methods available directly.
type HTTPLogger struct {
	*zap.Logger
}

// NewHTTPLogger creates the file-backed zap logger for HTTP logs.
//
// Logs go to runtime/logs/http.log. Files are rotated
// (MaxSize/MaxBackups/MaxAge) and old archives are compressed.
// Time format: "HH:MM:SS DD.MM.YYYY".
func NewHTTPLogger() *HTTPLogger {
	logDir := filepath.Join("runtime", "logs")
	_ = os.MkdirAll(logDir, 0755)

	logFile := filepath.Join(logDir, "http.log")

	// lumberjack owns file rotation
	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100, // MB
		MaxBackups: 10,
		MaxAge:     30, // days
		Compress:   true,
	})

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = customTimeEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		writer,
		zap.InfoLevel,
	)

	logger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))

	return &HTTPLogger{Logger: logger}
}

// LogRequest writes a structured log line about one HTTP request.
//
// method and uri describe the request, status is the response status code,
// responseSize is the body size in bytes, duration is the handling time in
// milliseconds, requestID is the value assigned by the request-id middleware.
func (logger *HTTPLogger) LogRequest(method, uri, requestID string, status, responseSize int, duration float64) {
	logger.Info("HTTP request",
		zap.String("method", method),
		zap.String("uri", uri),
		zap.String("request_id", requestID),
		zap.Int("status", status),
		zap.Int("response_size", responseSize),
		zap.Float64("duration_ms", duration),
	)
}

// customTimeEncoder formats log timestamps as "HH:MM:SS DD.MM.YYYY".
func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("15:04:05 02.01.2006"))
}
