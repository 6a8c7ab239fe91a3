// Package timer 实现周期定时器与定时器管理
package timer

import (
	"context"

	"go.uber.org/fx"

	pkgif "github.com/pfpyh/common-lib/pkg/interfaces"
)

// ============================================================================
// Fx 模块
// ============================================================================

// Result Fx 模块输出结果
type Result struct {
	fx.Out

	Timers pkgif.TimerManager
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("timer",
		fx.Provide(ProvideTimerManager),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideTimerManager 提供 TimerManager 实例
func ProvideTimerManager(exec pkgif.TaskExecutor) Result {
	return Result{
		Timers: NewManager(exec),
	}
}

// lifecycleInput 生命周期输入参数
type lifecycleInput struct {
	fx.In
	LC     fx.Lifecycle
	Timers pkgif.TimerManager
}

// registerLifecycle 注册生命周期
func registerLifecycle(input lifecycleInput) {
	input.LC.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			// 定时器由使用方按需创建
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return input.Timers.StopAll(ctx)
		},
	})
}

// ============================================================================
// 模块元信息
// ============================================================================

const (
	// Version 模块版本
	Version = "1.0.0"
	// Name 模块名称
	Name = "timer"
	// Description 模块描述
	Description = "周期定时器与定时器管理，触发可经执行器异步分发"
)
