// pkg/checksum/sm3.go
package checksum

import (
	"bytes"

	"github.com/lk2023060901/sm3fold/pkg/integrity"
	"github.com/lk2023060901/sm3fold/pkg/sm3"
)

// sm3Hasher 标准 SM3 杂凑实现，接受任意长度数据
type sm3Hasher struct{}

// newSM3Hasher 创建标准 SM3 计算器
func newSM3Hasher() *sm3Hasher {
	return &sm3Hasher{}
}

// Sum 计算 SM3 摘要
func (h *sm3Hasher) Sum(data []byte) []byte {
	if data == nil {
		return nil
	}
	sum := sm3.Sum(data)
	return sum[:]
}

// Verify 验证 SM3 摘要
func (h *sm3Hasher) Verify(data []byte, expected []byte) bool {
	sum := h.Sum(data)
	return sum != nil && bytes.Equal(sum, expected)
}

// Name 返回算法名称
func (h *sm3Hasher) Name() string {
	return string(TypeSM3)
}

// Size 返回摘要长度
func (h *sm3Hasher) Size() int {
	return sm3.Size
}

// sm3foldHasher XOR 折叠 + SM3 固定块校验实现
// 只接受 4096 字节块，其余长度返回 nil
type sm3foldHasher struct {
	engine *integrity.Engine
}

// newSM3FoldHasher 创建固定块校验计算器
func newSM3FoldHasher() (*sm3foldHasher, error) {
	engine, err := integrity.New()
	if err != nil {
		return nil, err
	}
	return &sm3foldHasher{engine: engine}, nil
}

// Sum 计算固定块摘要，输入长度不是 4096 字节时返回 nil
func (h *sm3foldHasher) Sum(data []byte) []byte {
	sum, err := h.engine.Sum256(data)
	if err != nil {
		return nil
	}
	return sum[:]
}

// Verify 验证固定块摘要
func (h *sm3foldHasher) Verify(data []byte, expected []byte) bool {
	sum := h.Sum(data)
	return sum != nil && bytes.Equal(sum, expected)
}

// Name 返回算法名称
func (h *sm3foldHasher) Name() string {
	return string(TypeSM3Fold)
}

// Size 返回摘要长度
func (h *sm3foldHasher) Size() int {
	return integrity.Size256
}
