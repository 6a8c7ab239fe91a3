package executor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"

	pkgif "github.com/pfpyh/common-lib/pkg/interfaces"
)

// TestMain 全包泄漏检查：每个用例结束后不允许遗留 goroutine
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// ============================================================================
// 并发测试
// ============================================================================

// TestConcurrent_ManySubmitters 测试多提交方并发，所有 Future 解析
func TestConcurrent_ManySubmitters(t *testing.T) {
	const submitters = 8
	const perSubmitter = 200

	ex := New(pkgif.WithWorkers(4))

	var g errgroup.Group
	for i := 0; i < submitters; i++ {
		g.Go(func() error {
			for j := 0; j < perSubmitter; j++ {
				fut, err := ex.Submit(func() (any, error) { return j, nil })
				if err != nil {
					return err
				}
				if _, err := fut.Wait(context.Background()); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	ex.Stop(true)

	s := ex.Snapshot()
	require.Equal(t, uint64(submitters*perSubmitter), s.Submitted)
	require.Equal(t, uint64(submitters*perSubmitter), s.Completed)
}

// TestConcurrent_SubmitDuringStop 测试提交与停止竞争时无悬挂 Future
func TestConcurrent_SubmitDuringStop(t *testing.T) {
	ex := New(pkgif.WithWorkers(2))

	var wg sync.WaitGroup
	futs := make(chan pkgif.Future, 4096)

	// 收集方持续取走被接受的 Future，提交方不会因通道写满而阻塞
	collected := make(chan []pkgif.Future, 1)
	go func() {
		var all []pkgif.Future
		for fut := range futs {
			all = append(all, fut)
		}
		collected <- all
	}()

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				fut, err := ex.Submit(func() (any, error) { return nil, nil })
				if err != nil {
					if !errors.Is(err, ErrExecutorStopped) {
						t.Errorf("unexpected submit error: %v", err)
					}
					return
				}
				futs <- fut
			}
		}()
	}

	time.Sleep(5 * time.Millisecond)
	ex.Stop(true)
	wg.Wait()
	close(futs)

	// 被接受的任务全部执行完；被拒绝的在提交处已拿到错误
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for _, fut := range <-collected {
		_, err := fut.Wait(ctx)
		require.NoError(t, err, "accepted task must complete")
	}
}

// TestConcurrent_GrowthUnderSteal 测试扩容与窃取并发时不丢任务
func TestConcurrent_GrowthUnderSteal(t *testing.T) {
	const tasks = 5000

	// 小初始容量逼出大量扩容
	ex := New(pkgif.WithWorkers(2), pkgif.WithQueueCapacity(2))

	futs := make([]pkgif.Future, 0, tasks)
	for i := 0; i < tasks; i++ {
		fut, err := ex.Submit(func() (any, error) { return nil, nil })
		require.NoError(t, err)
		futs = append(futs, fut)
	}

	ex.Stop(true)

	for _, fut := range futs {
		select {
		case <-fut.Done():
		default:
			t.Fatal("future not resolved after Stop(true)")
		}
	}
	require.Greater(t, ex.Snapshot().Resizes, uint64(0))
}
