// Package commonlib 提供原生服务的进程内并发基座
package commonlib

import (
	"context"
	"sync/atomic"

	pkgif "github.com/pfpyh/common-lib/pkg/interfaces"
	"github.com/pfpyh/common-lib/pkg/lib/log"
)

var logger = log.Logger("commonlib")

// ============================================================================
// Core
// ============================================================================

// Core 并发核心句柄
//
// 持有经 Fx 组装的执行器、事件总线与定时器管理。
// 普通对象，无进程级状态；生命周期归创建方。
type Core struct {
	app *fxApp

	exec   pkgif.TaskExecutor
	bus    pkgif.EventBus
	timers pkgif.TimerManager

	started atomic.Bool
	closed  atomic.Bool
}

// New 创建核心（不启动）
func New(opts ...Option) (*Core, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	core := &Core{}
	app, err := buildFxApp(o, core)
	if err != nil {
		return nil, err
	}
	core.app = app
	return core, nil
}

// Start 创建并启动核心
func Start(ctx context.Context, opts ...Option) (*Core, error) {
	core, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if err := core.Run(ctx); err != nil {
		return nil, err
	}
	return core, nil
}

// Run 启动核心；重复启动返回 ErrAlreadyStarted
func (c *Core) Run(ctx context.Context) error {
	if !c.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	if err := c.app.Start(ctx); err != nil {
		return err
	}
	logger.Debug("核心已启动", "workers", c.exec.WorkerCount())
	return nil
}

// Close 停止核心
//
// 经 Fx 生命周期依次停止定时器、事件总线与执行器；可重复调用。
func (c *Core) Close(ctx context.Context) error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	if !c.started.Load() {
		return nil
	}
	return c.app.Stop(ctx)
}

// ============================================================================
// 访问器
// ============================================================================

// Executor 返回任务执行器
func (c *Core) Executor() pkgif.TaskExecutor {
	return c.exec
}

// EventBus 返回事件总线
func (c *Core) EventBus() pkgif.EventBus {
	return c.bus
}

// Timers 返回定时器管理
func (c *Core) Timers() pkgif.TimerManager {
	return c.timers
}
