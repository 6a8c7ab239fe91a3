// Package executor 实现工作窃取任务执行器
package executor

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ============================================================================
// Prometheus 采集器
// ============================================================================

// registerMetrics 注册基于 Func 的采集器
//
// 运行时计数全部落在原子变量上，采集器只在抓取时读取，
// 注册器为 nil 时完全不产生开销。
func (e *TaskExecutor) registerMetrics(reg prometheus.Registerer) {
	if reg == nil {
		return
	}

	reg.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "commonlib",
			Subsystem: "executor",
			Name:      "workers",
			Help:      "worker 数量",
		}, func() float64 { return float64(len(e.queues)) }),

		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: "commonlib",
			Subsystem: "executor",
			Name:      "tasks_submitted_total",
			Help:      "已接受的任务数",
		}, func() float64 { return float64(e.submitted.Load()) }),

		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: "commonlib",
			Subsystem: "executor",
			Name:      "tasks_completed_total",
			Help:      "已完成的任务数（含 panic 任务）",
		}, func() float64 { return float64(e.completed.Load()) }),

		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: "commonlib",
			Subsystem: "executor",
			Name:      "tasks_stolen_total",
			Help:      "经窃取执行的任务数",
		}, func() float64 { return float64(e.stolen.Load()) }),

		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: "commonlib",
			Subsystem: "executor",
			Name:      "task_panics_total",
			Help:      "被捕获的任务 panic 数",
		}, func() float64 { return float64(e.panics.Load()) }),

		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: "commonlib",
			Subsystem: "executor",
			Name:      "queue_resizes_total",
			Help:      "工作队列扩容次数",
		}, func() float64 {
			var n uint64
			for _, q := range e.queues {
				n += q.resizes.Load()
			}
			return float64(n)
		}),

		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "commonlib",
			Subsystem: "executor",
			Name:      "tasks_pending",
			Help:      "排队中的任务数（近似值）",
		}, func() float64 {
			var n int64
			for _, q := range e.queues {
				n += q.size()
			}
			return float64(n)
		}),
	)
}
