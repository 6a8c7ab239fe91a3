// Package executor 实现工作窃取任务执行器
//
// 固定数量的 worker（向上取整到 2 的幂），每个 worker 拥有一个
// Chase-Lev 双端工作队列：
//   - 所有者在 bottom 端压入/弹出（LIFO）
//   - 其他 worker 从 top 端窃取（FIFO）
//
// 外部提交不直接触碰无锁队列：任务先进入目标队列的收件箱
// （互斥量 + 信号保护），由所有者批量搬入自己的双端队列，
// 保证 bottom 只有所有者写入。空闲 worker 先窃取别人的队列，
// 再带超时驻留，超时后重新扫描。
//
// # 快速开始
//
//	ex := executor.New(interfaces.WithWorkers(4))
//	fut, err := ex.Submit(func() (any, error) { return 42, nil })
//	v, err := fut.Wait(ctx)
//	ex.Stop(true)
//
// # 架构定位
//
// Tier: Core Layer Level 1（无依赖）
//
// 依赖关系：
//   - 依赖：pkg/interfaces, pkg/lib/log
//   - 被依赖：eventbus, timer, 根包
//
// # 并发安全
//
// 双端队列的 push/pop/steal 无锁（atomic CAS）；互斥量只保护
// 收件箱与停止标志，驻留唤醒走容量 1 的信号通道。任务 panic 由 worker 捕获，经 Future 交付，
// worker 本身不会因此退出。
package executor
