// Package logger 提供统一的日志框架
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	once   sync.Once
	logger zerolog.Logger
)

type ctxKey string

// RequestIDKey 请求ID在 context 中的键
const RequestIDKey ctxKey = "request_id"

// Config 日志配置
type Config struct {
	Level      string `json:"level"`
	Format     string `json:"format"` // json/console
	Output     string `json:"output"` // stdout/stderr/file
	FilePath   string `json:"file_path,omitempty"`
	TimeFormat string `json:"time_format,omitempty"`
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Format:     "console",
		Output:     "stdout",
		TimeFormat: time.RFC3339,
	}
}

// Init 初始化日志器，仅首次调用生效
func Init(cfg Config) {
	once.Do(func() {
		zerolog.SetGlobalLevel(parseLevel(cfg.Level))
		logger = build(openOutput(cfg), cfg)
	})
}

func openOutput(cfg Config) io.Writer {
	switch cfg.Output {
	case "stderr":
		return os.Stderr
	case "file":
		if cfg.FilePath == "" {
			return os.Stdout
		}
		f, err := os.OpenFile(cfg.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return os.Stdout
		}
		return f
	default:
		return os.Stdout
	}
}

func build(output io.Writer, cfg Config) zerolog.Logger {
	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: cfg.TimeFormat,
		}
	}
	return zerolog.New(output).With().Timestamp().Logger()
}

// parseLevel 解析日志级别
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// Get 获取日志器，未初始化时使用默认配置
func Get() *zerolog.Logger {
	Init(DefaultConfig())
	return &logger
}

// WithContext 从上下文创建日志器
func WithContext(ctx context.Context) *zerolog.Logger {
	l := Get().With().Logger()
	if reqID, ok := ctx.Value(RequestIDKey).(string); ok {
		l = l.With().Str("request_id", reqID).Logger()
	}
	return &l
}

// Info 记录信息日志
func Info() *zerolog.Event {
	return Get().Info()
}

// Warn 记录警告日志
func Warn() *zerolog.Event {
	return Get().Warn()
}

// Error 记录错误日志
func Error() *zerolog.Event {
	return Get().Error()
}

// OptimizerLogger 排班优化专用日志器
type OptimizerLogger struct {
	base zerolog.Logger
}

// NewOptimizerLogger 创建优化器日志器
func NewOptimizerLogger() *OptimizerLogger {
	return &OptimizerLogger{base: Get().With().Str("component", "optimizer").Logger()}
}

// NewOptimizerLoggerTo 输出到指定 writer（测试用）
func NewOptimizerLoggerTo(w io.Writer) *OptimizerLogger {
	return &OptimizerLogger{base: zerolog.New(w).With().Str("component", "optimizer").Logger()}
}

// StartRun 记录优化开始
func (l *OptimizerLogger) StartRun(runID string, nurses, shifts, population int) {
	l.base.Info().
		Str("run_id", runID).
		Int("nurses", nurses).
		Int("shifts", shifts).
		Int("population", population).
		Msg("开始排班优化")
}

// Generation 记录单代进度
func (l *OptimizerLogger) Generation(runID string, gen int, best float64, stagnant int) {
	l.base.Debug().
		Str("run_id", runID).
		Int("generation", gen).
		Float64("best", best).
		Int("stagnant", stagnant).
		Msg("迭代")
}

// EarlyStop 记录提前终止
func (l *OptimizerLogger) EarlyStop(runID string, gen int, reason string, best float64) {
	l.base.Info().
		Str("run_id", runID).
		Int("generation", gen).
		Str("reason", reason).
		Float64("best", best).
		Msg("提前终止")
}

// ConstraintViolation 记录约束违反
func (l *OptimizerLogger) ConstraintViolation(constraint, details string) {
	l.base.Warn().
		Str("constraint", constraint).
		Str("details", details).
		Msg("约束违反")
}

// RunComplete 记录优化完成
func (l *OptimizerLogger) RunComplete(runID string, duration time.Duration, fitness float64, generations int) {
	l.base.Info().
		Str("run_id", runID).
		Dur("duration", duration).
		Float64("fitness", fitness).
		Int("generations", generations).
		Msg("排班优化完成")
}
