// Package timer 实现周期定时器与定时器管理
//
// 每个定时器一个滴答循环，按固定间隔触发回调；同步模式在循环内
// 执行，异步模式把回调提交给共享执行器。管理器登记存活的定时器，
// 关停时统一停止并等待退出。
//
// 时间源是 benbjohnson/clock，测试里用 mock 时钟驱动。
//
// # 快速开始
//
//	mgr := timer.NewManager(ex)
//	t, _ := mgr.Schedule(sample, 10*time.Millisecond,
//	    interfaces.WithTimerName("imu-sampler"))
//	...
//	t.Stop()
//	mgr.StopAll(ctx)
//
// # 架构定位
//
// Tier: Core Layer Level 2
//
// 依赖关系：
//   - 依赖：pkg/interfaces, pkg/lib/log, executor
//   - 被依赖：根包
package timer
