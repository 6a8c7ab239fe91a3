// Package interfaces 定义 common-lib 公共接口
//
// 本文件定义 TaskExecutor 接口，提供工作窃取线程池能力。
package interfaces

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// TaskFunc 提交给执行器的任务闭包
//
// 返回值经由 Future 交付；panic 由 worker 捕获并转换为 Future 的错误。
type TaskFunc func() (any, error)

// Future 一次性结果句柄
//
// 每个 Future 恰好被解析一次：要么携带任务返回值，要么携带任务
// 返回的错误（包括被捕获的 panic）。
type Future interface {
	// Done 返回结果就绪时关闭的通道
	Done() <-chan struct{}

	// Wait 阻塞等待结果；ctx 取消时提前返回 ctx.Err()
	//
	// Wait 不取消任务本身，任务一经提交就不可取消。
	Wait(ctx context.Context) (any, error)
}

// TaskExecutor 定义工作窃取执行器接口
//
// 固定数量的 worker，各自拥有一个双端任务队列；提交按轮转分发，
// 空闲 worker 从其他队列窃取任务。
type TaskExecutor interface {
	// Submit 提交任务
	//
	// 执行器停止后 Submit 返回 ErrExecutorStopped，同时返回的
	// Future 已被该错误解析，两种途径观察到的失败一致。
	Submit(fn TaskFunc) (Future, error)

	// Stop 停止执行器
	//
	// wait 为 true 时阻塞直到所有已入队任务执行完、全部 worker 退出。
	// Stop 总会完成，可重复调用。
	Stop(wait bool)

	// Running 报告执行器是否仍在接受任务
	Running() bool

	// WorkerCount 返回实际 worker 数（请求数向上取整到 2 的幂）
	WorkerCount() int
}

// ExecutorOpt 执行器选项函数类型
type ExecutorOpt func(*ExecutorSettings)

// ExecutorSettings 执行器设置（导出以供实现使用）
type ExecutorSettings struct {
	// Workers 请求的 worker 数；实际数量为 ≥ max(1, Workers) 的最小 2 的幂
	Workers int

	// QueueCapacity 每个工作队列的初始容量（向上取整到 2 的幂）
	QueueCapacity int

	// ParkInterval 空闲 worker 的驻留上限；超时后重新扫描可窃取的队列
	ParkInterval time.Duration

	// Registerer 指标注册器；为 nil 时不收集指标
	Registerer prometheus.Registerer
}

// WithWorkers 设置请求的 worker 数
func WithWorkers(n int) ExecutorOpt {
	return func(s *ExecutorSettings) {
		s.Workers = n
	}
}

// WithQueueCapacity 设置工作队列初始容量
func WithQueueCapacity(n int) ExecutorOpt {
	return func(s *ExecutorSettings) {
		s.QueueCapacity = n
	}
}

// WithParkInterval 设置空闲驻留上限
func WithParkInterval(d time.Duration) ExecutorOpt {
	return func(s *ExecutorSettings) {
		s.ParkInterval = d
	}
}

// WithExecutorMetrics 设置执行器指标注册器
func WithExecutorMetrics(reg prometheus.Registerer) ExecutorOpt {
	return func(s *ExecutorSettings) {
		s.Registerer = reg
	}
}
