// Package config 提供配置管理
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/paiban/nurseplan/pkg/logger"
	"github.com/paiban/nurseplan/pkg/scheduler/constraint"
	"github.com/paiban/nurseplan/pkg/scheduler/fitness"
	"github.com/paiban/nurseplan/pkg/scheduler/optimizer"
)

// EnvPrefix 环境变量前缀，层级以双下划线分隔，如 NURSEPLAN_DATABASE__HOST
const EnvPrefix = "NURSEPLAN_"

// Config 应用配置
type Config struct {
	App       AppConfig         `json:"app"`
	Database  DatabaseConfig    `json:"database"`
	Redis     RedisConfig       `json:"redis"`
	Optimizer optimizer.Config  `json:"optimizer"`
	Limits    constraint.Limits `json:"limits"`
	Weights   fitness.Weights   `json:"weights"`
	Metrics   MetricsConfig     `json:"metrics"`
	Log       logger.Config     `json:"log"`
}

// AppConfig 应用基础配置
type AppConfig struct {
	Name           string        `json:"name"`
	Env            string        `json:"env"`
	Port           int           `json:"port"`
	RequestTimeout time.Duration `json:"request_timeout"`
	RateLimit      int           `json:"rate_limit"` // 每秒请求数，0 表示不限
	CORSOrigins    []string      `json:"cors_origins"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Enabled         bool          `json:"enabled"`
	Host            string        `json:"host"`
	Port            int           `json:"port"`
	Name            string        `json:"name"`
	User            string        `json:"user"`
	Password        string        `json:"password"`
	SSLMode         string        `json:"ssl_mode"`
	MaxOpenConns    int           `json:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`
}

// DSN 返回数据库连接字符串
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// RedisConfig Redis配置
type RedisConfig struct {
	Enabled  bool          `json:"enabled"`
	Host     string        `json:"host"`
	Port     int           `json:"port"`
	Password string        `json:"password"`
	DB       int           `json:"db"`
	PoolSize int           `json:"pool_size"`
	TTL      time.Duration `json:"ttl"` // 最新排班缓存时长
}

// Addr 返回Redis地址
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// MetricsConfig 监控配置
type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		App: AppConfig{
			Name:           "nurseplan",
			Env:            "development",
			Port:           7012,
			RequestTimeout: 60 * time.Second,
			RateLimit:      100,
			CORSOrigins:    []string{"*"},
		},
		Database: DatabaseConfig{
			Enabled:         true,
			Host:            "localhost",
			Port:            5432,
			Name:            "nurseplan",
			User:            "nurseplan",
			Password:        "nurseplan",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Redis: RedisConfig{
			Enabled:  true,
			Host:     "localhost",
			Port:     6379,
			PoolSize: 10,
			TTL:      24 * time.Hour,
		},
		Optimizer: *optimizer.DefaultConfig(),
		Limits:    constraint.DefaultLimits(),
		Weights:   fitness.DefaultWeights(),
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Log: logger.DefaultConfig(),
	}
}

// Load 加载配置：默认值 → 配置文件（可选）→ 环境变量
// 当前目录存在 .env 时先载入其中的环境变量
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("读取 .env 失败: %w", err)
	}

	k := koanf.New(".")
	if path != "" {
		var parser koanf.Parser
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("不支持的配置文件格式: %s", path)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("读取环境变量失败: %w", err)
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKey NURSEPLAN_DATABASE__MAX_OPEN_CONNS -> database.max_open_conns
func envKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(s), "__", ".")
}

// Validate 校验配置
func (c *Config) Validate() error {
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("无效的端口: %d", c.App.Port)
	}
	if c.Optimizer.PopulationSize <= 0 {
		return fmt.Errorf("种群规模必须大于 0: %d", c.Optimizer.PopulationSize)
	}
	if c.Optimizer.MutationRate < 0 || c.Optimizer.MutationRate > 1 {
		return fmt.Errorf("变异率必须在 [0,1] 之间: %v", c.Optimizer.MutationRate)
	}
	if c.Optimizer.Generations < 0 {
		return fmt.Errorf("迭代代数不能为负: %d", c.Optimizer.Generations)
	}
	return nil
}

// IsDevelopment 检查是否为开发环境
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction 检查是否为生产环境
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
