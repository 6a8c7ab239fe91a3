// Package commonlib 提供原生服务的进程内并发基座
//
// common-lib 是一个可复用的并发核心库：工作窃取任务执行器，
// 加上构建在它之上的主题事件总线与类型化事件层。
//
// # 核心概念
//
// commonlib 围绕三个核心概念构建：
//
//   - TaskExecutor: 固定 worker 数的工作窃取线程池，Future 交付结果
//   - EventBus: 主题寻址的异步扇出，写时复制的订阅者列表
//   - Timer: 周期任务调度，触发可经执行器异步分发
//
// # 快速开始
//
//	import "github.com/pfpyh/common-lib"
//
//	// 1. 创建并启动核心
//	core, err := commonlib.Start(ctx,
//	    commonlib.WithThreadCount(4),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer core.Close(context.Background())
//
//	// 2. 提交任务
//	fut, _ := core.Executor().Submit(func() (any, error) {
//	    return compute(), nil
//	})
//	v, err := fut.Wait(ctx)
//
//	// 3. 类型化事件
//	type Attitude struct{ Roll, Pitch, Yaw float32 }
//
//	id, _ := commonlib.Subscribe(core.EventBus(), "imu/attitude",
//	    func(a Attitude) { handle(a) })
//	commonlib.Publish(core.EventBus(), "imu/attitude",
//	    Attitude{Roll: 1.5})
//	core.EventBus().Unsubscribe(id)
//
// # API 层次结构
//
//	┌────────────────────────────────────────────────────────┐
//	│  入口层                                                 │
//	│    Core      commonlib.New() / commonlib.Start()        │
//	├────────────────────────────────────────────────────────┤
//	│  类型化层                                               │
//	│    Subscribe[T] / Publish[T]   固定尺寸载荷编解码        │
//	├────────────────────────────────────────────────────────┤
//	│  核心层                                                 │
//	│    EventBus    internal/core/eventbus                   │
//	│    Timer       internal/core/timer                      │
//	│    Executor    internal/core/executor                   │
//	└────────────────────────────────────────────────────────┘
//
// 公共契约在 pkg/interfaces，实现经 Fx 组装在 internal/core 下。
// 串口/套接字等平台封装和应用生命周期外壳不属于本库。
package commonlib
