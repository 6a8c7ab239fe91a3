// Package eventbus 实现进程内主题事件总线
package eventbus

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	pkgif "github.com/pfpyh/common-lib/pkg/interfaces"
	"github.com/pfpyh/common-lib/pkg/lib/log"
	"github.com/pfpyh/common-lib/pkg/types"
)

var logger = log.Logger("core/eventbus")

// ============================================================================
// 错误定义
// ============================================================================

var (
	// ErrNilHandler 订阅回调为空
	ErrNilHandler = errors.New("subscribe called with nil handler")
)

// defaultCompactionInterval 触发一次压缩所需的取消订阅次数
const defaultCompactionInterval = 10

// ============================================================================
// 订阅者记录
// ============================================================================

// handlerRecord 单个订阅者
//
// active 置 false 后成为墓碑：仍可能被旧快照引用，但分发任务的
// 二次检查会跳过它，压缩最终把它从主题索引中移除。
type handlerRecord struct {
	id      types.SubscriberID
	handler pkgif.Handler
	active  atomic.Bool
}

// ============================================================================
// Bus 实现
// ============================================================================

// Bus 事件总线
type Bus struct {
	// 主题索引：topic → 不可变订阅者列表（整体替换，从不原地修改）
	mu     sync.RWMutex
	topics map[string][]*handlerRecord

	// 订阅者注册表：O(1) 取消订阅的查找辅助
	subMu sync.Mutex
	subs  map[types.SubscriberID]*handlerRecord

	nextID       atomic.Uint32
	cleanupCount atomic.Uint32

	exec      pkgif.TaskExecutor
	finalized atomic.Bool

	compactionInterval uint32

	// 统计（原子计数，prometheus 经 Func 采集器按需读取）
	published     atomic.Uint64
	dispatched    atomic.Uint64
	handlerPanics atomic.Uint64
	compactions   atomic.Uint64
	activeSubs    atomic.Int64
}

// New 创建事件总线
//
// 执行器由调用方注入并共享；Finalize 会停止它。
func New(exec pkgif.TaskExecutor, opts ...pkgif.BusOpt) *Bus {
	settings := &pkgif.BusSettings{
		CompactionInterval: defaultCompactionInterval,
	}
	for _, opt := range opts {
		opt(settings)
	}
	return NewWithSettings(exec, *settings)
}

// NewWithSettings 按既有设置创建事件总线
func NewWithSettings(exec pkgif.TaskExecutor, settings pkgif.BusSettings) *Bus {
	interval := settings.CompactionInterval
	if interval == 0 {
		interval = defaultCompactionInterval
	}
	b := &Bus{
		topics:             make(map[string][]*handlerRecord),
		subs:               make(map[types.SubscriberID]*handlerRecord),
		exec:               exec,
		compactionInterval: interval,
	}
	b.registerMetrics(settings.Registerer)
	return b
}

// ============================================================================
// EventBus 接口实现
// ============================================================================

// Subscribe 订阅主题
//
// 主题列表按写时复制更新：克隆、追加、整体替换。
// 返回本总线内唯一的订阅者 ID（计数器按总线实例独立，从 0 开始）。
func (b *Bus) Subscribe(topic string, handler pkgif.Handler) (types.SubscriberID, error) {
	if handler == nil {
		return 0, ErrNilHandler
	}

	id := types.SubscriberID(b.nextID.Add(1) - 1)
	rec := &handlerRecord{id: id, handler: handler}
	rec.active.Store(true)

	b.subMu.Lock()
	b.subs[id] = rec
	b.subMu.Unlock()

	b.mu.Lock()
	cur := b.topics[topic]
	next := make([]*handlerRecord, len(cur)+1)
	copy(next, cur)
	next[len(cur)] = rec
	b.topics[topic] = next
	b.mu.Unlock()

	b.activeSubs.Add(1)
	return id, nil
}

// Unsubscribe 取消订阅
//
// 幂等：未知 ID 记一条 debug 日志后忽略。记录先打墓碑，
// 积累到压缩间隔后把一次压缩任务交给执行器。
func (b *Bus) Unsubscribe(id types.SubscriberID) {
	b.subMu.Lock()
	rec, ok := b.subs[id]
	if ok {
		delete(b.subs, id)
	}
	b.subMu.Unlock()

	if !ok {
		logger.Debug("取消订阅：未知订阅者", "subscriber", id)
		return
	}

	rec.active.Store(false)
	b.activeSubs.Add(-1)

	if b.cleanupCount.Add(1)%b.compactionInterval == 0 {
		b.scheduleCompaction()
	}
}

// Publish 向主题的所有活跃订阅者异步投递载荷
//
// 读锁下取快照后立即放锁；每个活跃订阅者提交一个分发任务，
// 任务内二次检查 active 并用载荷的私有副本调用回调。
// 无订阅者静默返回。
func (b *Bus) Publish(topic string, payload []byte) {
	if b.finalized.Load() {
		return
	}

	b.mu.RLock()
	snapshot := b.topics[topic]
	b.mu.RUnlock()

	if len(snapshot) == 0 {
		return
	}

	ev := types.Event{
		ID:      uuid.New().String(),
		Topic:   topic,
		Payload: payload,
	}
	b.published.Add(1)

	for _, rec := range snapshot {
		if !rec.active.Load() {
			continue
		}
		rec := rec
		buf := make([]byte, len(ev.Payload))
		copy(buf, ev.Payload)

		_, err := b.exec.Submit(func() (any, error) {
			if !rec.active.Load() {
				return nil, nil
			}
			b.invoke(rec, ev.Topic, ev.ID, buf)
			return nil, nil
		})
		if err != nil {
			logger.Warn("事件分发被执行器拒绝",
				"topic", ev.Topic,
				"event", ev.ID,
				"subscriber", rec.id,
				"err", err)
			continue
		}
		b.dispatched.Add(1)
	}
}

// Finalize 停止事件总线
//
// 停止注入的执行器并等待排空；可重复调用。
// 之后的 Publish 是空操作，Subscribe 仍成功但回调不会再被分发。
func (b *Bus) Finalize() error {
	if b.finalized.CompareAndSwap(false, true) {
		b.exec.Stop(true)
		logger.Debug("事件总线已终止")
	}
	return nil
}

// ============================================================================
// 内部方法
// ============================================================================

// invoke 调用订阅回调，捕获 panic
//
// 回调失败只记日志，发布者不受影响。
func (b *Bus) invoke(rec *handlerRecord, topic, eventID string, payload []byte) {
	defer func() {
		if r := recover(); r != nil {
			b.handlerPanics.Add(1)
			logger.Error("订阅回调 panic 已捕获",
				"topic", topic,
				"event", eventID,
				"subscriber", rec.id,
				"panic", r)
		}
	}()
	rec.handler(payload)
}

// scheduleCompaction 把一次压缩任务交给执行器
func (b *Bus) scheduleCompaction() {
	_, err := b.exec.Submit(func() (any, error) {
		b.compact()
		return nil, nil
	})
	if err != nil {
		logger.Debug("压缩任务提交被拒", "err", err)
	}
}

// compact 重建所有主题列表，剔除墓碑记录
//
// 写锁下整体替换各主题的列表；清空的主题从索引中删除。
// 旧列表由仍持有快照的发布者继续引用，最终由 GC 回收。
func (b *Bus) compact() {
	b.mu.Lock()
	defer b.mu.Unlock()

	removed := 0
	for topic, list := range b.topics {
		live := make([]*handlerRecord, 0, len(list))
		for _, rec := range list {
			if rec.active.Load() {
				live = append(live, rec)
			}
		}
		switch {
		case len(live) == 0:
			delete(b.topics, topic)
			removed += len(list)
		case len(live) != len(list):
			b.topics[topic] = live
			removed += len(list) - len(live)
		}
	}

	b.compactions.Add(1)
	if removed > 0 {
		logger.Debug("压缩完成", "removed", removed)
	}
}

// ============================================================================
// 统计
// ============================================================================

// Stats 事件总线运行统计快照
type Stats struct {
	Published     uint64
	Dispatched    uint64
	HandlerPanics uint64
	Compactions   uint64
	ActiveSubs    int64
	Topics        int
}

// Snapshot 返回当前统计快照
func (b *Bus) Snapshot() Stats {
	b.mu.RLock()
	topics := len(b.topics)
	b.mu.RUnlock()

	return Stats{
		Published:     b.published.Load(),
		Dispatched:    b.dispatched.Load(),
		HandlerPanics: b.handlerPanics.Load(),
		Compactions:   b.compactions.Load(),
		ActiveSubs:    b.activeSubs.Load(),
		Topics:        topics,
	}
}
