package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Logger *zap.Logger

// Init initializes the global logger. Development config unless
// ENV=production.
func Init() {
	env := os.Getenv("ENV")
	var err error
	var logger *zap.Logger
	if env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}

	Logger = logger
}

// Close flushes the logger buffers (important for production to avoid
// losing log entries).
func Close() {
	_ = Logger.Sync()
}

func L() *zap.Logger {
	if Logger == nil {
		Init()
	}
	return Logger
}

// Global logging methods to avoid `logger.Logger` repetition

func Info(msg string, args ...zapcore.Field) {
	L().Info(msg, args...)
}

func Warn(msg string, args ...zapcore.Field) {
	L().Warn(msg, args...)
}

func Error(msg string, args ...zapcore.Field) {
	L().Error(msg, args...)
}

func Fatal(msg string, args ...zapcore.Field) {
	L().Fatal(msg, args...)
}

func Debug(msg string, args ...zapcore.Field) {
	L().Debug(msg, args...)
}
