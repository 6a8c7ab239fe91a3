// Package executor 实现工作窃取任务执行器
package executor

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	pkgif "github.com/pfpyh/common-lib/pkg/interfaces"
	"github.com/pfpyh/common-lib/pkg/lib/log"
)

var logger = log.Logger("core/executor")

// ============================================================================
// 错误定义
// ============================================================================

var (
	// ErrExecutorStopped 执行器已停止
	ErrExecutorStopped = errors.New("executor stopped")
	// ErrQueueOverflow 工作队列达到容量上限
	ErrQueueOverflow = errors.New("work queue overflow")
	// ErrNilTask 任务为空
	ErrNilTask = errors.New("submit called with nil task")
)

// ============================================================================
// 任务封套
// ============================================================================

// task 一次性任务封套：闭包加上交付结果的 future
type task struct {
	fn  pkgif.TaskFunc
	fut *future
}

// ============================================================================
// TaskExecutor 实现
// ============================================================================

// defaultParkInterval 空闲 worker 的驻留上限
//
// 驻留超时后 worker 重扫一遍可窃取的队列，压在单个队列上的
// 积压因此能被睡眠中的其他 worker 分担。
const defaultParkInterval = time.Millisecond

// TaskExecutor 工作窃取执行器
type TaskExecutor struct {
	queues []*WorkQueue

	running atomic.Bool
	rr      atomic.Uint32
	mask    uint32

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	parkInterval time.Duration

	// 统计（原子计数，prometheus 经 Func 采集器按需读取）
	submitted atomic.Uint64
	completed atomic.Uint64
	stolen    atomic.Uint64
	panics    atomic.Uint64
}

// New 创建执行器
//
// worker 数为 ≥ max(1, 请求数) 的最小 2 的幂，构造即启动。
func New(opts ...pkgif.ExecutorOpt) *TaskExecutor {
	settings := &pkgif.ExecutorSettings{
		Workers:       runtime.NumCPU(),
		QueueCapacity: defaultQueueCapacity,
		ParkInterval:  defaultParkInterval,
	}
	for _, opt := range opts {
		opt(settings)
	}
	return NewWithSettings(*settings)
}

// NewWithSettings 按既有设置创建执行器
func NewWithSettings(settings pkgif.ExecutorSettings) *TaskExecutor {
	requested := settings.Workers
	if requested < 1 {
		requested = 1
	}
	n := nextPowerOfTwo(uint32(requested))

	park := settings.ParkInterval
	if park <= 0 {
		park = defaultParkInterval
	}

	e := &TaskExecutor{
		queues:       make([]*WorkQueue, n),
		mask:         n - 1,
		stopCh:       make(chan struct{}),
		parkInterval: park,
	}
	for i := range e.queues {
		e.queues[i] = newWorkQueue(settings.QueueCapacity)
	}

	e.running.Store(true)
	e.wg.Add(int(n))
	for i := uint32(0); i < n; i++ {
		go e.workerLoop(int(i))
	}

	e.registerMetrics(settings.Registerer)

	logger.Debug("执行器已启动",
		"requested", settings.Workers,
		"workers", n)
	return e
}

// WorkerCount 返回实际 worker 数
func (e *TaskExecutor) WorkerCount() int {
	return len(e.queues)
}

// Running 报告执行器是否仍在接受任务
func (e *TaskExecutor) Running() bool {
	return e.running.Load()
}

// ============================================================================
// 提交
// ============================================================================

// Submit 提交任务
//
// 轮转计数对 worker 数取掩码选择队列。执行器停止后拒绝提交：
// 返回 ErrExecutorStopped，同时返回的 Future 已被同一错误解析。
func (e *TaskExecutor) Submit(fn pkgif.TaskFunc) (pkgif.Future, error) {
	if fn == nil {
		return nil, ErrNilTask
	}

	t := &task{fn: fn, fut: newFuture()}

	if !e.running.Load() {
		t.fut.resolve(nil, ErrExecutorStopped)
		return t.fut, ErrExecutorStopped
	}

	idx := (e.rr.Add(1) - 1) & e.mask
	if err := e.queues[idx].enqueue(t); err != nil {
		t.fut.resolve(nil, err)
		return t.fut, err
	}

	e.submitted.Add(1)
	return t.fut, nil
}

// submitTo 向指定 worker 的队列投递（测试钩子，绕过轮转）
func (e *TaskExecutor) submitTo(i int, fn pkgif.TaskFunc) (pkgif.Future, error) {
	t := &task{fn: fn, fut: newFuture()}
	if err := e.queues[i].enqueue(t); err != nil {
		t.fut.resolve(nil, err)
		return t.fut, err
	}
	e.submitted.Add(1)
	return t.fut, nil
}

// ============================================================================
// worker 循环
// ============================================================================

// workerLoop worker 主循环
//
//  1. 弹出自己队列的任务并执行；
//  2. 自己的队列空且执行器已停止则退出；
//  3. 按 (i+1)%N, (i+2)%N, … 的顺序扫描其他队列窃取；
//  4. 一无所获则驻留，等待唤醒或超时重扫。
func (e *TaskExecutor) workerLoop(i int) {
	defer e.wg.Done()
	q := e.queues[i]

	for {
		if t, ok := q.tryPop(); ok {
			e.runTask(t)
			continue
		}

		if !e.running.Load() && q.drained() {
			return
		}

		if t, ok := e.stealScan(i); ok {
			e.runTask(t)
			continue
		}

		q.park(e.parkInterval, e.stopCh)
	}
}

// stealScan 从 i 的下一个队列开始逐个尝试窃取
func (e *TaskExecutor) stealScan(i int) (*task, bool) {
	n := len(e.queues)
	for j := 1; j < n; j++ {
		if !e.running.Load() {
			return nil, false
		}
		target := (i + j) % n
		if t, ok := e.queues[target].trySteal(); ok {
			e.stolen.Add(1)
			return t, true
		}
	}
	return nil, false
}

// runTask 执行任务并经 future 交付结果
//
// panic 被捕获转换为错误，worker 继续存活。
func (e *TaskExecutor) runTask(t *task) {
	defer func() {
		if r := recover(); r != nil {
			e.panics.Add(1)
			logger.Error("任务 panic 已捕获", "panic", r)
			t.fut.resolve(nil, fmt.Errorf("task panicked: %v", r))
		}
		e.completed.Add(1)
	}()

	val, err := t.fn()
	t.fut.resolve(val, err)
}

// ============================================================================
// 停止
// ============================================================================

// Stop 停止执行器
//
// 翻转运行标志、停闭所有队列的提交端并广播停止信号；已入队的
// 任务仍会被各自的所有者排空。wait 为 true 时阻塞到全部 worker
// 退出，此后不再有停止前提交的任务在执行。可重复调用。
func (e *TaskExecutor) Stop(wait bool) {
	e.stopOnce.Do(func() {
		e.running.Store(false)
		for _, q := range e.queues {
			q.setStopped()
		}
		close(e.stopCh)
		logger.Debug("执行器停止中", "workers", len(e.queues))
	})

	if wait {
		e.wg.Wait()
	}
}

// ============================================================================
// 统计
// ============================================================================

// Stats 执行器运行统计快照
type Stats struct {
	Workers   int
	Submitted uint64
	Completed uint64
	Stolen    uint64
	Panics    uint64
	Resizes   uint64
	Pending   int64
}

// Snapshot 返回当前统计快照
func (e *TaskExecutor) Snapshot() Stats {
	s := Stats{
		Workers:   len(e.queues),
		Submitted: e.submitted.Load(),
		Completed: e.completed.Load(),
		Stolen:    e.stolen.Load(),
		Panics:    e.panics.Load(),
	}
	for _, q := range e.queues {
		s.Resizes += q.resizes.Load()
		s.Pending += q.size()
	}
	return s
}
