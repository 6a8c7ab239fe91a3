// Package interfaces 定义 common-lib 公共接口
//
// 本文件定义定时器接口，提供周期任务调度。
package interfaces

import (
	"context"
	"time"
)

// Timer 定义周期定时器接口
type Timer interface {
	// Stop 停止定时器；幂等
	Stop()

	// Running 报告定时器是否仍在运行
	Running() bool

	// Done 返回定时循环退出时关闭的通道
	Done() <-chan struct{}
}

// TimerManager 定义定时器管理接口
//
// 管理器登记它创建的所有定时器，关停时统一停止。
// 不是进程级单例：生命周期归属创建它的调用方。
type TimerManager interface {
	// Schedule 创建并启动一个周期定时器
	Schedule(fn func(), interval time.Duration, opts ...TimerOpt) (Timer, error)

	// StopAll 停止所有登记的定时器并等待退出
	//
	// ctx 限定整体等待时间；未按时退出的定时器聚合进返回错误。
	StopAll(ctx context.Context) error
}

// TimerOpt 定时器选项函数类型
type TimerOpt func(*TimerSettings)

// TimerSettings 定时器设置（导出以供实现使用）
type TimerSettings struct {
	// Name 诊断用名称，出现在日志与 StopAll 错误中
	Name string

	// Async 为 true 时每次触发提交到共享执行器，否则在定时器
	// 自己的循环里同步执行
	Async bool
}

// WithTimerName 设置定时器名称
func WithTimerName(name string) TimerOpt {
	return func(s *TimerSettings) {
		s.Name = name
	}
}

// WithAsyncDispatch 让每次触发经共享执行器异步执行
func WithAsyncDispatch() TimerOpt {
	return func(s *TimerSettings) {
		s.Async = true
	}
}
