// pkg/integrity/options.go
package integrity

import (
	"github.com/lk2023060901/sm3fold/pkg/logger"
	"github.com/lk2023060901/sm3fold/pkg/sm3"
)

// Config 引擎配置
type Config struct {
	// Strategy 压缩函数执行策略 (generic/unrolled)
	Strategy string `mapstructure:"strategy"`

	// Workers 并行计算的默认工作协程数，0 表示取 CPU 核数
	Workers int `mapstructure:"workers"`

	// OutputBits 并行计算的默认输出位宽 (128/256)
	OutputBits int `mapstructure:"output_bits"`

	// EnablePrefetch 批处理时预取下一个数据块
	EnablePrefetch bool `mapstructure:"enable_prefetch"`

	// PoolSize 复用协程池容量，0 表示不使用协程池
	PoolSize int `mapstructure:"pool_size"`
}

// DefaultConfig 默认配置
func DefaultConfig() *Config {
	return &Config{
		Strategy:       string(sm3.StrategyGeneric),
		Workers:        0,
		OutputBits:     256,
		EnablePrefetch: false,
		PoolSize:       0,
	}
}

// Validate 验证配置
func (c *Config) Validate() error {
	if _, err := sm3.Block(sm3.Strategy(c.Strategy)); err != nil {
		return err
	}
	if c.Workers < 0 {
		return ErrWorkerCount
	}
	if c.OutputBits != 0 && c.OutputBits != 128 && c.OutputBits != 256 {
		return ErrOutputBits
	}
	return nil
}

// Option 引擎选项
type Option func(*Engine)

// WithStrategy 设置压缩函数执行策略
func WithStrategy(s sm3.Strategy) Option {
	return func(e *Engine) {
		e.strategy = s
	}
}

// WithWorkers 设置并行计算的默认工作协程数
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.workers = n
	}
}

// WithPrefetch 启用批处理预取
func WithPrefetch() Option {
	return func(e *Engine) {
		e.prefetch = true
	}
}

// WithLogger 设置日志记录器
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithMetrics 设置指标采集器
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithPool 使用固定容量的协程池执行并行计算
// 不设置时每次调用临时派生工作协程
func WithPool(size int) Option {
	return func(e *Engine) {
		e.poolSize = size
	}
}

// FromConfig 从配置构造选项
func FromConfig(cfg *Config) []Option {
	if cfg == nil {
		return nil
	}
	opts := []Option{WithStrategy(sm3.Strategy(cfg.Strategy))}
	if cfg.Workers > 0 {
		opts = append(opts, WithWorkers(cfg.Workers))
	}
	if cfg.EnablePrefetch {
		opts = append(opts, WithPrefetch())
	}
	if cfg.PoolSize > 0 {
		opts = append(opts, WithPool(cfg.PoolSize))
	}
	return opts
}
