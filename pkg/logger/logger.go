package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger printf-логгер поверх zap: пишет в stdout и, если задан файл, дублирует в него
type Logger struct {
	sugar *zap.SugaredLogger
	file  *os.File
}

// New создаёт логгер. file может быть пустым - тогда только stdout.
// level: debug, info, warn, error (по умолчанию info)
func New(file, level string) (*Logger, error) {
	encoder := zapcore.NewConsoleEncoder(encoderConfig())
	lvl := parseLevel(level)

	cores := []zapcore.Core{zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), lvl)}

	var f *os.File
	if file != "" {
		var err error
		f, err = os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file %s: %w", file, err)
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(f), lvl))
	}

	return &Logger{sugar: zap.New(zapcore.NewTee(cores...)).Sugar(), file: f}, nil
}

// NewWithCore логгер поверх произвольного zapcore.Core, используется в тестах (zaptest/observer)
func NewWithCore(core zapcore.Core) *Logger {
	return &Logger{sugar: zap.New(core).Sugar()}
}

// NewNop логгер, который ничего не пишет
func NewNop() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar()}
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return cfg
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l *Logger) Debug(format string, v ...interface{}) {
	l.sugar.Debugf(format, v...)
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.sugar.Infof(format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.sugar.Warnf(format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.sugar.Errorf(format, v...)
}

// Fatal логирует и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.sugar.Errorf(format, v...)
	l.Close()
	os.Exit(1)
}

// Close сбрасывает буферы и закрывает файл логов
func (l *Logger) Close() error {
	_ = l.sugar.Sync()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
