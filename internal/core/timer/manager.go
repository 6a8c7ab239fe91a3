// Package timer 实现周期定时器与定时器管理
package timer

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/multierr"

	pkgif "github.com/pfpyh/common-lib/pkg/interfaces"
)

// ============================================================================
// Manager 实现
// ============================================================================

// Manager 定时器管理
//
// 登记自己创建的定时器；StopAll 统一停止并等待退出。
// 普通对象，无进程级状态，生命周期归创建方。
type Manager struct {
	clk  clock.Clock
	exec pkgif.TaskExecutor

	mu     sync.Mutex
	timers []*Timer

	closed atomic.Bool
}

// NewManager 创建定时器管理
func NewManager(exec pkgif.TaskExecutor) *Manager {
	return NewManagerWithClock(exec, clock.New())
}

// NewManagerWithClock 用指定时钟创建定时器管理（测试注入 mock）
func NewManagerWithClock(exec pkgif.TaskExecutor, clk clock.Clock) *Manager {
	return &Manager{
		clk:  clk,
		exec: exec,
	}
}

// Schedule 创建并启动一个周期定时器
func (m *Manager) Schedule(fn func(), interval time.Duration, opts ...pkgif.TimerOpt) (pkgif.Timer, error) {
	if fn == nil {
		return nil, ErrNilFunc
	}
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}
	if m.closed.Load() {
		return nil, ErrManagerClosed
	}

	settings := &pkgif.TimerSettings{}
	for _, opt := range opts {
		opt(settings)
	}

	t := newTimer(fn, interval, *settings, m.clk, m.exec)

	m.mu.Lock()
	if m.closed.Load() {
		m.mu.Unlock()
		return nil, ErrManagerClosed
	}
	m.timers = append(m.timers, t)
	m.mu.Unlock()

	t.start()
	logger.Debug("定时器已启动",
		"timer", t.name,
		"interval", interval,
		"async", settings.Async)
	return t, nil
}

// StopAll 停止所有登记的定时器并等待退出
//
// ctx 限定整体等待时间；未按时退出的定时器聚合进返回错误。
// 之后的 Schedule 被拒绝。
func (m *Manager) StopAll(ctx context.Context) error {
	m.closed.Store(true)

	m.mu.Lock()
	timers := m.timers
	m.timers = nil
	m.mu.Unlock()

	var err error
	for _, t := range timers {
		t.Stop()
		select {
		case <-t.Done():
		case <-ctx.Done():
			err = multierr.Append(err,
				fmt.Errorf("timer %q did not stop: %w", t.name, ctx.Err()))
		}
	}
	return err
}
