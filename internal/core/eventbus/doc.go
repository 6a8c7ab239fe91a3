// Package eventbus 实现进程内主题事件总线
//
// 主题寻址的异步扇出，支持：
//   - 动态订阅/取消订阅（取消 O(1) 摊还）
//   - 写时复制的订阅者列表：发布者持有的快照永不被原地修改
//   - 墓碑标记 + 周期压缩：取消订阅先置 active=false，积累到
//     阈值后由执行器上的压缩任务重建各主题列表
//   - 每个活跃订阅者一个执行器任务的并发投递
//
// # 快速开始
//
//	ex := executor.New(interfaces.WithWorkers(2))
//	bus := eventbus.New(ex)
//
//	id, _ := bus.Subscribe("imu/attitude", func(payload []byte) {
//	    // 处理载荷
//	})
//	bus.Publish("imu/attitude", data)
//	bus.Unsubscribe(id)
//	bus.Finalize()
//
// # 架构定位
//
// Tier: Core Layer Level 2
//
// 依赖关系：
//   - 依赖：pkg/interfaces, pkg/types, pkg/lib/log, executor
//   - 被依赖：根包（泛型层）
//
// # 并发安全
//
// 主题索引用 sync.RWMutex：发布者并发读快照，订阅/取消/压缩写；
// 订阅者注册表用普通互斥量（操作都是 O(1)）；active 标志为原子量。
// 回调的 panic 由分发任务捕获并记录，不影响发布者。
//
// # 顺序保证
//
// 同一主题的各订阅者并发收到消息，相互之间无顺序；同一订阅者的
// 两次投递执行顺序亦不确定。需要有序的订阅者自行串行化。
// Subscribe 返回先于 Publish 发生时，保证能收到该次发布；
// Unsubscribe 返回先于回调任务开始时，保证回调不会执行。
package eventbus
