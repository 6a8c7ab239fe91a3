package commonlib

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// 类型化事件层测试
// ============================================================================

// TestGeneric_RoundTrip 测试类型化发布/订阅往返
func TestGeneric_RoundTrip(t *testing.T) {
	ctx := context.Background()
	core, err := Start(ctx, WithThreadCount(2))
	require.NoError(t, err)
	defer core.Close(ctx)

	type payload struct {
		A int32
		B int32
	}

	got := make(chan payload, 1)
	_, err = Subscribe(core.EventBus(), "t", func(p payload) { got <- p })
	require.NoError(t, err)

	require.NoError(t, Publish(core.EventBus(), "t", payload{A: 100, B: -50}))

	select {
	case p := <-got:
		assert.Equal(t, payload{A: 100, B: -50}, p)
	case <-time.After(2 * time.Second):
		t.Fatal("typed handler not invoked")
	}
}

// TestGeneric_BitExact 测试任意固定尺寸类型逐位还原
func TestGeneric_BitExact(t *testing.T) {
	ctx := context.Background()
	core, err := Start(ctx, WithThreadCount(2))
	require.NoError(t, err)
	defer core.Close(ctx)

	type sample struct {
		Roll  float32
		Pitch float32
		Yaw   float32
		Seq   uint64
		Flags [4]uint8
	}
	want := sample{
		Roll:  1.5,
		Pitch: -0.25,
		Yaw:   359.875,
		Seq:   0xDEADBEEFCAFE,
		Flags: [4]uint8{1, 0, 255, 42},
	}

	got := make(chan sample, 1)
	_, err = Subscribe(core.EventBus(), "imu", func(s sample) { got <- s })
	require.NoError(t, err)

	require.NoError(t, Publish(core.EventBus(), "imu", want))

	select {
	case s := <-got:
		assert.Equal(t, want, s)
	case <-time.After(2 * time.Second):
		t.Fatal("typed handler not invoked")
	}
}

// TestGeneric_NotFixedSize 测试非固定尺寸类型被拒绝
func TestGeneric_NotFixedSize(t *testing.T) {
	ctx := context.Background()
	core, err := Start(ctx, WithThreadCount(1))
	require.NoError(t, err)
	defer core.Close(ctx)

	type bad struct {
		Name string
	}

	_, err = Subscribe(core.EventBus(), "t", func(bad) {})
	assert.ErrorIs(t, err, ErrNotFixedSize)

	err = Publish(core.EventBus(), "t", bad{Name: "x"})
	assert.ErrorIs(t, err, ErrNotFixedSize)
}

// TestGeneric_SizeMismatchSkipsHandler 测试尺寸不匹配的载荷被跳过
func TestGeneric_SizeMismatchSkipsHandler(t *testing.T) {
	ctx := context.Background()
	core, err := Start(ctx, WithThreadCount(1))
	require.NoError(t, err)
	defer core.Close(ctx)

	type payload struct {
		A int32
	}

	got := make(chan payload, 2)
	_, err = Subscribe(core.EventBus(), "t", func(p payload) { got <- p })
	require.NoError(t, err)

	// 错误尺寸的原始载荷：诊断并跳过，不是多路复用
	core.EventBus().Publish("t", []byte{1, 2})
	// 正确的类型化发布仍然送达
	require.NoError(t, Publish(core.EventBus(), "t", payload{A: 7}))

	select {
	case p := <-got:
		assert.Equal(t, payload{A: 7}, p)
	case <-time.After(2 * time.Second):
		t.Fatal("typed handler not invoked")
	}
	select {
	case p := <-got:
		t.Fatalf("mismatched payload must be skipped, got %+v", p)
	case <-time.After(50 * time.Millisecond):
	}
}

// TestGeneric_NilHandler 测试空回调被拒绝
func TestGeneric_NilHandler(t *testing.T) {
	ctx := context.Background()
	core, err := Start(ctx, WithThreadCount(1))
	require.NoError(t, err)
	defer core.Close(ctx)

	_, err = Subscribe[int32](core.EventBus(), "t", nil)
	assert.ErrorIs(t, err, ErrNilHandler)
}
