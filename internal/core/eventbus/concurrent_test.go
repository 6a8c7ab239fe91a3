package eventbus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"

	"github.com/pfpyh/common-lib/internal/core/executor"
	pkgif "github.com/pfpyh/common-lib/pkg/interfaces"
	"github.com/pfpyh/common-lib/pkg/types"
)

// TestMain 全包泄漏检查
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// ============================================================================
// 并发测试
// ============================================================================

// TestConcurrent_ChurnUnderRead 测试订阅/取消与密集发布并发
//
// 一个写入方在主题上反复订阅又取消，多个读取方紧循环发布。
// 期望干净终止：无崩溃、无竞态、执行器排空。
func TestConcurrent_ChurnUnderRead(t *testing.T) {
	const readers = 8

	ex := executor.New(pkgif.WithWorkers(4))
	bus := New(ex, pkgif.WithCompactionInterval(3))

	stop := make(chan struct{})
	var g errgroup.Group

	// 写入方：订阅/取消循环
	g.Go(func() error {
		for {
			select {
			case <-stop:
				return nil
			default:
			}
			id, err := bus.Subscribe("churn", func([]byte) {})
			if err != nil {
				return err
			}
			bus.Unsubscribe(id)
		}
	})

	// 读取方：紧循环发布
	for i := 0; i < readers; i++ {
		g.Go(func() error {
			for {
				select {
				case <-stop:
					return nil
				default:
					bus.Publish("churn", nil)
				}
			}
		})
	}

	time.Sleep(100 * time.Millisecond)
	close(stop)
	require.NoError(t, g.Wait())
	require.NoError(t, bus.Finalize())
}

// TestConcurrent_SubscribersUnique 测试并发订阅的 ID 仍然唯一
func TestConcurrent_SubscribersUnique(t *testing.T) {
	const goroutines = 50
	const perGoroutine = 20

	ex := executor.New(pkgif.WithWorkers(2))
	bus := New(ex)
	defer func() { _ = bus.Finalize() }()

	ids := make(chan types.SubscriberID, goroutines*perGoroutine)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				id, err := bus.Subscribe("many", func([]byte) {})
				if err != nil {
					t.Errorf("subscribe failed: %v", err)
					return
				}
				ids <- id
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[types.SubscriberID]bool)
	for id := range ids {
		require.False(t, seen[id], "duplicate id %v", id)
		seen[id] = true
	}
	require.Len(t, seen, goroutines*perGoroutine)
}

// TestConcurrent_PublishWhileCompacting 测试发布与压缩并发
func TestConcurrent_PublishWhileCompacting(t *testing.T) {
	ex := executor.New(pkgif.WithWorkers(4))
	bus := New(ex, pkgif.WithCompactionInterval(1))

	// 保持一个常驻订阅者，主题始终存在
	var delivered sync.WaitGroup
	delivered.Add(1)
	once := sync.Once{}
	_, err := bus.Subscribe("live", func([]byte) {
		once.Do(delivered.Done)
	})
	require.NoError(t, err)

	var g errgroup.Group
	g.Go(func() error {
		// 每次取消都触发压缩
		for i := 0; i < 200; i++ {
			id, err := bus.Subscribe("live", func([]byte) {})
			if err != nil {
				return err
			}
			bus.Unsubscribe(id)
		}
		return nil
	})
	g.Go(func() error {
		for i := 0; i < 200; i++ {
			bus.Publish("live", []byte{byte(i)})
		}
		return nil
	})

	require.NoError(t, g.Wait())
	delivered.Wait()
	require.NoError(t, bus.Finalize())
}
