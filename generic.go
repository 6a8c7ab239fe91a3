// Package commonlib 提供原生服务的进程内并发基座
package commonlib

import (
	"bytes"
	"encoding/binary"
	"fmt"

	pkgif "github.com/pfpyh/common-lib/pkg/interfaces"
	"github.com/pfpyh/common-lib/pkg/types"
)

// ============================================================================
// 类型化事件层
// ============================================================================
//
// 事件总线的载荷是不透明字节；本层把固定尺寸的值类型编码成
// 小端字节缓冲，在投递侧还原。每个主题约定使用单一载荷类型，
// 尺寸不匹配是诊断信息而不是多路复用手段。

// Subscribe 订阅主题并以 T 类型接收载荷
//
// T 必须是固定尺寸布局（binary.Size 可度量：定宽整数、浮点数、
// 它们的数组以及仅由这些构成的结构体）。收到的缓冲长度与
// binary.Size(T) 不符时记日志并跳过回调。
func Subscribe[T any](bus pkgif.EventBus, topic string, handler func(T)) (types.SubscriberID, error) {
	if handler == nil {
		return 0, ErrNilHandler
	}

	var zero T
	size := binary.Size(zero)
	if size < 0 {
		return 0, fmt.Errorf("%w: %T", ErrNotFixedSize, zero)
	}

	return bus.Subscribe(topic, func(payload []byte) {
		if len(payload) != size {
			logger.Warn("载荷尺寸不匹配，跳过回调",
				"topic", topic,
				"want", size,
				"got", len(payload))
			return
		}
		var v T
		if err := binary.Read(bytes.NewReader(payload), binary.LittleEndian, &v); err != nil {
			logger.Warn("载荷解码失败", "topic", topic, "err", err)
			return
		}
		handler(v)
	})
}

// Publish 把 T 类型的值编码后发布到主题
//
// 与 Subscribe 相同的固定尺寸约束；对任意固定尺寸 T，
// 发布再接收得到逐位相等的值。
func Publish[T any](bus pkgif.EventBus, topic string, value T) error {
	size := binary.Size(value)
	if size < 0 {
		return fmt.Errorf("%w: %T", ErrNotFixedSize, value)
	}

	buf := bytes.NewBuffer(make([]byte, 0, size))
	if err := binary.Write(buf, binary.LittleEndian, value); err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	bus.Publish(topic, buf.Bytes())
	return nil
}
