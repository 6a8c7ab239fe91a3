// Package commonlib 提供原生服务的进程内并发基座
package commonlib

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/pfpyh/common-lib/internal/core/eventbus"
	"github.com/pfpyh/common-lib/internal/core/executor"
	"github.com/pfpyh/common-lib/internal/core/timer"
	pkgif "github.com/pfpyh/common-lib/pkg/interfaces"
)

// fxApp Fx 应用别名，隔离根包对 fx 类型的直接暴露
type fxApp = fx.App

// buildFxApp 构建 Fx 应用
//
// 组装顺序（按依赖）：
//  1. executor: 工作窃取池（Level 1，无依赖）
//  2. eventbus: 事件总线（依赖 executor）
//  3. timer:    定时器管理（依赖 executor）
//
// 设置结构经 fx.Supply 注入，Populate 把实例回填到 Core。
func buildFxApp(o *options, core *Core) (*fx.App, error) {
	execSettings := pkgif.ExecutorSettings{
		Workers:       o.threadCount,
		QueueCapacity: o.queueCapacity,
		ParkInterval:  o.parkInterval,
		Registerer:    o.registerer,
	}
	busSettings := pkgif.BusSettings{
		CompactionInterval: o.compactionInterval,
		Registerer:         o.registerer,
	}

	app := fx.New(
		// 配置注入
		fx.Supply(execSettings),
		fx.Supply(busSettings),

		// 核心模块
		executor.Module(),
		eventbus.Module(),
		timer.Module(),

		// 实例回填
		fx.Populate(&core.exec, &core.bus, &core.timers),

		// Fx 自身的日志保持静默，组件日志走 pkg/lib/log
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: zap.NewNop()}
		}),
	)
	if err := app.Err(); err != nil {
		return nil, err
	}
	return app, nil
}
