// Package commonlib 提供原生服务的进程内并发基座
package commonlib

import (
	"fmt"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option 用户配置选项函数
type Option func(*options) error

// options 内部选项结构
type options struct {
	// 执行器配置
	threadCount   int
	queueCapacity int
	parkInterval  time.Duration

	// 事件总线配置
	compactionInterval uint32

	// 指标配置
	registerer prometheus.Registerer
}

// defaultOptions 默认配置
func defaultOptions() *options {
	return &options{
		threadCount:        runtime.NumCPU(),
		queueCapacity:      256,
		compactionInterval: 10,
	}
}

// WithThreadCount 设置请求的 worker 数
//
// 实际数量为 ≥ max(1, n) 的最小 2 的幂。
func WithThreadCount(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return fmt.Errorf("thread count must not be negative: %d", n)
		}
		o.threadCount = n
		return nil
	}
}

// WithQueueCapacity 设置每个工作队列的初始容量
func WithQueueCapacity(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("queue capacity must be positive: %d", n)
		}
		o.queueCapacity = n
		return nil
	}
}

// WithParkInterval 设置空闲 worker 的驻留上限
func WithParkInterval(d time.Duration) Option {
	return func(o *options) error {
		if d <= 0 {
			return fmt.Errorf("park interval must be positive: %v", d)
		}
		o.parkInterval = d
		return nil
	}
}

// WithCompactionInterval 设置压缩触发间隔（按取消订阅计数）
func WithCompactionInterval(n uint32) Option {
	return func(o *options) error {
		if n == 0 {
			return fmt.Errorf("compaction interval must be positive")
		}
		o.compactionInterval = n
		return nil
	}
}

// WithMetrics 启用指标并指定注册器
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) error {
		o.registerer = reg
		return nil
	}
}
