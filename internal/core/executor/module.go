// Package executor 实现工作窃取任务执行器
package executor

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

	Executor pkgif.TaskExecutor
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("executor",
		fx.Provide(ProvideTaskExecutor),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideTaskExecutor 提供 TaskExecutor 实例
func ProvideTaskExecutor(settings pkgif.ExecutorSettings) Result {
	return Result{
		Executor: NewWithSettings(settings),
	}
}

// lifecycleInput 生命周期输入参数
type lifecycleInput struct {
	fx.In
	LC       fx.Lifecycle
	Executor pkgif.TaskExecutor
}

// registerLifecycle 注册生命周期
func registerLifecycle(input lifecycleInput) {
	input.LC.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			// 构造即启动，无需额外逻辑
			return nil
		},
		OnStop: func(_ context.Context) error {
			input.Executor.Stop(true)
			return nil
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
	Name = "executor"
	// Description 模块描述
	Description = "工作窃取任务执行器，提供固定 worker 池与 Future 结果交付"
)
