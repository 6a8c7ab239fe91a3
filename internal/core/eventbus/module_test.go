package eventbus

import (
	"context"
	"testing"

	"go.uber.org/fx"

	"github.com/pfpyh/common-lib/internal/core/executor"
	pkgif "github.com/pfpyh/common-lib/pkg/interfaces"
)

// ============================================================================
// Fx 模块测试
// ============================================================================

// TestModule_Load 测试 Fx 模块加载与生命周期
func TestModule_Load(t *testing.T) {
	var loaded pkgif.EventBus

	app := fx.New(
		fx.Supply(pkgif.ExecutorSettings{Workers: 2}),
		fx.Supply(pkgif.BusSettings{}),
		executor.Module(),
		Module(),
		fx.Invoke(func(bus pkgif.EventBus) {
			loaded = bus
		}),
		fx.NopLogger,
	)

	ctx := context.Background()

	if err := app.Start(ctx); err != nil {
		t.Fatalf("app.Start() failed: %v", err)
	}

	if loaded == nil {
		t.Fatal("EventBus not injected by Fx")
	}

	// OnStop 终止总线
	if err := app.Stop(ctx); err != nil {
		t.Errorf("app.Stop() failed: %v", err)
	}
}

// TestModule_Provides 测试模块提供的类型
func TestModule_Provides(t *testing.T) {
	ex := executor.New(pkgif.WithWorkers(1))
	defer ex.Stop(true)

	result := ProvideEventBus(ex, pkgif.BusSettings{})
	if result.EventBus == nil {
		t.Fatal("ProvideEventBus() did not provide EventBus")
	}
}
