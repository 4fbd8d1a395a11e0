package logging

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const timeFormat = "2006/01/02 15:04:05.000"

const (
	defaultMaxSize    = 10 // MB
	defaultMaxAge     = 7  // days
	defaultMaxBackups = 3
)

// Config 日志配置
type Config struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

func DefaultConfig() Config {
	return Config{
		Level:      "info",
		MaxSizeMB:  defaultMaxSize,
		MaxBackups: defaultMaxBackups,
		MaxAgeDays: defaultMaxAge,
	}
}

// New builds a logger writing to stderr and, when File is set, to a rotated
// JSON log file.
func New(c Config) (*zap.Logger, error) {
	level := zap.NewAtomicLevel()
	if c.Level != "" {
		if err := level.UnmarshalText([]byte(c.Level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", c.Level, err)
		}
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(newEncoderConfig(false)), zapcore.Lock(os.Stderr), level),
	}
	if c.File != "" {
		cores = append(cores, newFileCore(c, level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zap.PanicLevel)), nil
}

func newFileCore(c Config, level zapcore.LevelEnabler) zapcore.Core {
	writer := &lumberjack.Logger{
		Filename:   c.File,
		MaxSize:    orDefault(c.MaxSizeMB, defaultMaxSize),
		MaxBackups: orDefault(c.MaxBackups, defaultMaxBackups),
		MaxAge:     orDefault(c.MaxAgeDays, defaultMaxAge),
		LocalTime:  true,
		Compress:   true,
	}
	return zapcore.NewCore(zapcore.NewJSONEncoder(newEncoderConfig(true)), zapcore.AddSync(writer), level)
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func newEncoderConfig(file bool) zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.ConsoleSeparator = " "
	if file {
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		return cfg
	}
	cfg.EncodeTime = timeEncoder
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg
}

func timeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + t.Format(timeFormat) + "]")
}
