// Package optimizer 提供基于种群的排班优化算法
package optimizer

import (
	"time"
)

// Config 优化配置
type Config struct {
	PopulationSize         int           `json:"population_size"`          // 种群规模
	MutationRate           float64       `json:"mutation_rate"`            // 变异率
	Generations            int           `json:"generations"`              // 最大迭代代数
	FitnessThreshold       float64       `json:"fitness_threshold"`        // 达到后提前终止
	StagnantLimit          int           `json:"stagnant_limit"`           // 连续无改进代数上限
	ThresholdMinGeneration int           `json:"threshold_min_generation"` // 阈值检查起始代
	TournamentSize         int           `json:"tournament_size"`          // 锦标赛规模
	Workers                int           `json:"workers"`                  // 初始种群并行评估协程数
	Seed                   int64         `json:"seed"`                     // 随机种子，0 表示按时间
	MaxTime                time.Duration `json:"max_time"`                 // 最长运行时间，0 表示不限
}

// DefaultConfig 默认优化配置
func DefaultConfig() *Config {
	return &Config{
		PopulationSize:         20,
		MutationRate:           0.2,
		Generations:            100,
		FitnessThreshold:       500,
		StagnantLimit:          15,
		ThresholdMinGeneration: 5,
		TournamentSize:         3,
		Workers:                1,
	}
}

// normalized 修正非法取值
func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.PopulationSize <= 0 {
		c.PopulationSize = d.PopulationSize
	}
	if c.MutationRate < 0 {
		c.MutationRate = 0
	}
	if c.Generations < 0 {
		c.Generations = 0
	}
	if c.StagnantLimit <= 0 {
		c.StagnantLimit = d.StagnantLimit
	}
	if c.ThresholdMinGeneration < 0 {
		c.ThresholdMinGeneration = 0
	}
	if c.TournamentSize <= 0 {
		c.TournamentSize = d.TournamentSize
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	return c
}
