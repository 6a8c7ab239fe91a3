// Package interfaces 定义 common-lib 公共接口
//
// 本文件定义 EventBus 接口，提供主题寻址的异步事件分发。
package interfaces

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pfpyh/common-lib/pkg/types"
)

// Handler 订阅者回调
//
// 收到的切片是该次投递的私有副本，handler 可以保留或修改它。
// handler 的 panic 被分发任务捕获并记录，不会影响发布者。
type Handler func(payload []byte)

// EventBus 定义事件总线接口
//
// 主题 → 订阅者列表采用写时复制：列表一经发布不再原地修改，
// 变更以替换整个列表完成，发布者持有的快照始终安全。
type EventBus interface {
	// Subscribe 订阅主题，返回在该总线内唯一的订阅者 ID
	Subscribe(topic string, handler Handler) (types.SubscriberID, error)

	// Unsubscribe 取消订阅
	//
	// 幂等：未知或已移除的 ID 被静默忽略。
	// 返回后该 handler 不会再开始新的调用；已在执行中的调用会跑完。
	Unsubscribe(id types.SubscriberID)

	// Publish 向主题的所有活跃订阅者异步投递载荷
	//
	// 无订阅者的主题是静默空操作；Finalize 之后是空操作。
	Publish(topic string, payload []byte)

	// Finalize 停止事件总线及其执行器
	//
	// 可重复调用。之后的 Publish 不再投递。
	Finalize() error
}

// BusOpt 事件总线选项函数类型
type BusOpt func(*BusSettings)

// BusSettings 事件总线设置（导出以供实现使用）
type BusSettings struct {
	// CompactionInterval 触发一次压缩所需的取消订阅次数
	CompactionInterval uint32

	// Registerer 指标注册器；为 nil 时不收集指标
	Registerer prometheus.Registerer
}

// WithCompactionInterval 设置压缩触发间隔（按取消订阅计数）
func WithCompactionInterval(n uint32) BusOpt {
	return func(s *BusSettings) {
		s.CompactionInterval = n
	}
}

// WithBusMetrics 设置事件总线指标注册器
func WithBusMetrics(reg prometheus.Registerer) BusOpt {
	return func(s *BusSettings) {
		s.Registerer = reg
	}
}
