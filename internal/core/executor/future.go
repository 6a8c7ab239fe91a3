// Package executor 实现工作窃取任务执行器
package executor

import (
	"context"
	"sync"
)

// ============================================================================
// Future 实现
// ============================================================================

// future 一次性结果句柄
//
// resolve 恰好生效一次；之后 done 关闭，值与错误不再变化。
type future struct {
	done chan struct{}
	once sync.Once

	val any
	err error
}

func newFuture() *future {
	return &future{done: make(chan struct{})}
}

// resolve 写入结果并关闭 done
func (f *future) resolve(val any, err error) {
	f.once.Do(func() {
		f.val = val
		f.err = err
		close(f.done)
	})
}

// Done 返回结果就绪时关闭的通道
func (f *future) Done() <-chan struct{} {
	return f.done
}

// Wait 阻塞等待结果；ctx 取消时返回 ctx.Err()
func (f *future) Wait(ctx context.Context) (any, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
