// Package types 提供 common-lib 公共值类型
package types

// ============================================================================
//                              订阅者标识
// ============================================================================

// SubscriberID 订阅者标识
//
// 由事件总线在订阅时分配，在该总线的生命周期内唯一；
// 不同总线各自计数，分配的 ID 可能相同。
// 取消订阅后该 ID 失效，不会被复用。
type SubscriberID uint32

// ============================================================================
//                              事件
// ============================================================================

// Event 一次发布的事件
//
// ID 用于日志关联；Payload 为不透明字节载荷，
// 类型化载荷由根包的泛型层负责编解码。
type Event struct {
	// ID 事件标识（UUID 字符串）
	ID string

	// Topic 主题
	Topic string

	// Payload 载荷
	Payload []byte
}
