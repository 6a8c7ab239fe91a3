// Package interfaces 定义 common-lib 公共接口
//
// 本包只包含接口、选项函数和设置结构，不包含实现。
// 实现位于 internal/core 下的各模块，经由根包 commonlib 暴露。
//
// 依赖关系：
//   - 依赖：pkg/types
//   - 被依赖：internal/core/executor, internal/core/eventbus,
//     internal/core/timer, 根包
package interfaces
