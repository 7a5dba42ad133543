// pkg/sm3/strategy.go
package sm3

import "fmt"

// Strategy 压缩函数执行策略
// 所有策略对任意合法输入必须输出逐字节一致的结果
type Strategy string

const (
	// StrategyGeneric 紧凑循环实现
	StrategyGeneric Strategy = "generic"
	// StrategyUnrolled 分段展开实现
	StrategyUnrolled Strategy = "unrolled"
)

// BlockFunc 压缩函数签名: 以 64 字节为分组迭代更新 8x32 位状态
// p 长度必须是 64 的整数倍
type BlockFunc func(h *[8]uint32, p []byte)

// Block 返回指定策略的压缩函数
func Block(s Strategy) (BlockFunc, error) {
	switch s {
	case StrategyGeneric, "":
		return compressGeneric, nil
	case StrategyUnrolled:
		return compressUnrolled, nil
	default:
		return nil, fmt.Errorf("unsupported sm3 strategy: %s", s)
	}
}

// Strategies 返回所有可用策略
func Strategies() []Strategy {
	return []Strategy{StrategyGeneric, StrategyUnrolled}
}
