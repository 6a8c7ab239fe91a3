// Package eventbus 实现进程内主题事件总线
package eventbus

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

	EventBus pkgif.EventBus
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("eventbus",
		fx.Provide(ProvideEventBus),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideEventBus 提供 EventBus 实例
//
// 执行器来自 executor 模块，总线与其余使用方共享同一个池。
func ProvideEventBus(exec pkgif.TaskExecutor, settings pkgif.BusSettings) Result {
	return Result{
		EventBus: NewWithSettings(exec, settings),
	}
}

// lifecycleInput 生命周期输入参数
type lifecycleInput struct {
	fx.In
	LC       fx.Lifecycle
	EventBus pkgif.EventBus
}

// registerLifecycle 注册生命周期
func registerLifecycle(input lifecycleInput) {
	input.LC.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			// 总线无启动逻辑
			return nil
		},
		OnStop: func(_ context.Context) error {
			return input.EventBus.Finalize()
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
	Name = "eventbus"
	// Description 模块描述
	Description = "主题事件总线，提供写时复制订阅列表与异步扇出分发"
)
