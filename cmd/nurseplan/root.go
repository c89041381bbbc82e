package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/paiban/nurseplan/internal/cache"
	"github.com/paiban/nurseplan/internal/config"
	"github.com/paiban/nurseplan/internal/database"
	"github.com/paiban/nurseplan/internal/metrics"
	"github.com/paiban/nurseplan/internal/planner"
	"github.com/paiban/nurseplan/internal/repository"
	"github.com/paiban/nurseplan/pkg/logger"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:           "nurseplan",
	Short:         "护士排班优化",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "配置文件（yaml/json）")
}

// loadConfig 读取配置并初始化日志
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("加载配置失败: %w", err)
	}
	logger.Init(cfg.Log)
	return cfg, nil
}

// app 按配置装配的运行时依赖
type app struct {
	cfg     *config.Config
	db      *database.DB
	rdb     *redis.Client
	metrics *metrics.Collector
	svc     *planner.Service
}

// newApp 连接数据库与 Redis，useDB 为假时跳过数据库
// Redis 不可用时仅记录警告，服务在无缓存模式下运行
func newApp(ctx context.Context, cfg *config.Config, useDB bool) (*app, error) {
	a := &app{cfg: cfg}
	var opts []planner.Option

	if cfg.Metrics.Enabled {
		m, err := metrics.New(nil)
		if err != nil {
			return nil, fmt.Errorf("注册指标失败: %w", err)
		}
		a.metrics = m
		opts = append(opts, planner.WithRecorder(m))
	}

	if useDB && cfg.Database.Enabled {
		db, err := database.New(ctx, &cfg.Database)
		if err != nil {
			return nil, err
		}
		a.db = db
		opts = append(opts, planner.WithStore(repository.NewStore(db)))

		if cfg.Redis.Enabled {
			rdb, err := cache.NewClient(ctx, &cfg.Redis)
			if err != nil {
				logger.Warn().Err(err).Msg("Redis 不可用，禁用排班缓存")
			} else {
				a.rdb = rdb
				opts = append(opts, planner.WithCache(cache.NewRosterCache(rdb, cfg.Redis.TTL)))
			}
		}
	}

	opts = append(opts, planner.WithWeights(cfg.Weights))
	a.svc = planner.New(cfg.Optimizer, cfg.Limits, opts...)
	return a, nil
}

// Close 释放连接
func (a *app) Close() {
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			logger.Error().Err(err).Msg("关闭 Redis 连接失败")
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			logger.Error().Err(err).Msg("关闭数据库连接失败")
		}
	}
}
