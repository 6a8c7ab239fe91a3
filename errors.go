// Package commonlib 提供原生服务的进程内并发基座
package commonlib

import (
	"errors"

	"github.com/pfpyh/common-lib/internal/core/eventbus"
	"github.com/pfpyh/common-lib/internal/core/executor"
	"github.com/pfpyh/common-lib/internal/core/timer"
)

// 公共错误定义
var (
	// ────────────────────────────────────────────────────────────────────────
	// 核心生命周期错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrAlreadyStarted 核心已启动
	ErrAlreadyStarted = errors.New("core already started")

	// ────────────────────────────────────────────────────────────────────────
	// 执行器错误（internal/core/executor 的再导出）
	// ────────────────────────────────────────────────────────────────────────

	// ErrExecutorStopped 执行器已停止
	ErrExecutorStopped = executor.ErrExecutorStopped

	// ErrQueueOverflow 工作队列达到容量上限
	ErrQueueOverflow = executor.ErrQueueOverflow

	// ErrNilTask 任务为空
	ErrNilTask = executor.ErrNilTask

	// ────────────────────────────────────────────────────────────────────────
	// 事件总线错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrNilHandler 订阅回调为空
	ErrNilHandler = eventbus.ErrNilHandler

	// ErrNotFixedSize 类型化载荷不是固定尺寸布局
	ErrNotFixedSize = errors.New("payload type is not fixed-size")

	// ────────────────────────────────────────────────────────────────────────
	// 定时器错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrTimerManagerClosed 定时器管理已关停
	ErrTimerManagerClosed = timer.ErrManagerClosed
)
