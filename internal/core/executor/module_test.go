package executor

import (
	"context"
	"testing"

	"go.uber.org/fx"

	pkgif "github.com/pfpyh/common-lib/pkg/interfaces"
)

// ============================================================================
// Fx 模块测试
// ============================================================================

// TestModule_Load 测试 Fx 模块加载与生命周期
func TestModule_Load(t *testing.T) {
	var loaded pkgif.TaskExecutor

	app := fx.New(
		fx.Supply(pkgif.ExecutorSettings{Workers: 2}),
		Module(),
		fx.Invoke(func(ex pkgif.TaskExecutor) {
			loaded = ex
		}),
		fx.NopLogger,
	)

	ctx := context.Background()

	if err := app.Start(ctx); err != nil {
		t.Fatalf("app.Start() failed: %v", err)
	}

	if loaded == nil {
		t.Fatal("TaskExecutor not injected by Fx")
	}
	if got := loaded.WorkerCount(); got != 2 {
		t.Errorf("WorkerCount() = %d, want 2", got)
	}

	// OnStop 停止执行器
	if err := app.Stop(ctx); err != nil {
		t.Errorf("app.Stop() failed: %v", err)
	}
	if loaded.Running() {
		t.Error("executor still running after app.Stop()")
	}
}

// TestModule_Provides 测试模块提供的类型
func TestModule_Provides(t *testing.T) {
	result := ProvideTaskExecutor(pkgif.ExecutorSettings{Workers: 1})

	if result.Executor == nil {
		t.Fatal("ProvideTaskExecutor() did not provide TaskExecutor")
	}
	result.Executor.Stop(true)
}
