// Package eventbus 实现进程内主题事件总线
package eventbus

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ============================================================================
// Prometheus 采集器
// ============================================================================

// registerMetrics 注册基于 Func 的采集器
//
// 与执行器一致：运行时只动原子计数，注册器为 nil 时零开销。
func (b *Bus) registerMetrics(reg prometheus.Registerer) {
	if reg == nil {
		return
	}

	reg.MustRegister(
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: "commonlib",
			Subsystem: "eventbus",
			Name:      "events_published_total",
			Help:      "已发布的事件数",
		}, func() float64 { return float64(b.published.Load()) }),

		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: "commonlib",
			Subsystem: "eventbus",
			Name:      "dispatches_total",
			Help:      "已提交的分发任务数（每个活跃订阅者一个）",
		}, func() float64 { return float64(b.dispatched.Load()) }),

		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: "commonlib",
			Subsystem: "eventbus",
			Name:      "handler_panics_total",
			Help:      "被捕获的订阅回调 panic 数",
		}, func() float64 { return float64(b.handlerPanics.Load()) }),

		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: "commonlib",
			Subsystem: "eventbus",
			Name:      "compactions_total",
			Help:      "已执行的压缩次数",
		}, func() float64 { return float64(b.compactions.Load()) }),

		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "commonlib",
			Subsystem: "eventbus",
			Name:      "active_subscribers",
			Help:      "活跃订阅者数",
		}, func() float64 { return float64(b.activeSubs.Load()) }),
	)
}
