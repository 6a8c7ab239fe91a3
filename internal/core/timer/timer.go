// Package timer 实现周期定时器与定时器管理
package timer

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"

	pkgif "github.com/pfpyh/common-lib/pkg/interfaces"
	"github.com/pfpyh/common-lib/pkg/lib/log"
)

var logger = log.Logger("core/timer")

// ============================================================================
// 错误定义
// ============================================================================

var (
	// ErrNilFunc 回调为空
	ErrNilFunc = errors.New("schedule called with nil func")
	// ErrInvalidInterval 间隔必须为正
	ErrInvalidInterval = errors.New("timer interval must be positive")
	// ErrManagerClosed 管理器已关停
	ErrManagerClosed = errors.New("timer manager closed")
)

// ============================================================================
// Timer 实现
// ============================================================================

// Timer 周期定时器
type Timer struct {
	name     string
	fn       func()
	interval time.Duration
	async    bool

	clk  clock.Clock
	exec pkgif.TaskExecutor

	running  atomic.Bool
	stopCh   chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func newTimer(fn func(), interval time.Duration, settings pkgif.TimerSettings,
	clk clock.Clock, exec pkgif.TaskExecutor) *Timer {
	return &Timer{
		name:     settings.Name,
		fn:       fn,
		interval: interval,
		async:    settings.Async,
		clk:      clk,
		exec:     exec,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// start 启动滴答循环
func (t *Timer) start() {
	t.running.Store(true)
	go t.loop()
}

// loop 滴答循环：按间隔触发，直到停止
func (t *Timer) loop() {
	defer close(t.done)
	defer t.running.Store(false)

	ticker := t.clk.Ticker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-t.stopCh:
			return
		case <-ticker.C:
			t.fire()
		}
	}
}

// fire 触发一次回调
//
// 异步模式提交到执行器（执行器已停止时降级记日志）；
// 同步模式在循环内直接执行。panic 被捕获，循环继续。
func (t *Timer) fire() {
	if t.async {
		_, err := t.exec.Submit(func() (any, error) {
			t.call()
			return nil, nil
		})
		if err != nil {
			logger.Warn("定时回调提交被拒", "timer", t.name, "err", err)
		}
		return
	}
	t.call()
}

func (t *Timer) call() {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("定时回调 panic 已捕获", "timer", t.name, "panic", r)
		}
	}()
	t.fn()
}

// Stop 停止定时器；幂等
func (t *Timer) Stop() {
	t.stopOnce.Do(func() {
		close(t.stopCh)
	})
}

// Running 报告定时器是否仍在运行
func (t *Timer) Running() bool {
	return t.running.Load()
}

// Done 返回定时循环退出时关闭的通道
func (t *Timer) Done() <-chan struct{} {
	return t.done
}
