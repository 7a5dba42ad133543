// pkg/checksum/xxhash.go
package checksum

import (
	"bytes"
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// xxhashHasher XXHash64 摘要实现
// XXHash 是一种极快的非加密哈希算法
type xxhashHasher struct{}

// newXXHashHasher 创建 XXHash 计算器
func newXXHashHasher() *xxhashHasher {
	return &xxhashHasher{}
}

// Sum 计算 XXHash64 摘要（8 字节大端）
func (h *xxhashHasher) Sum(data []byte) []byte {
	if data == nil {
		return nil
	}
	out := make([]byte, 8)
	binary.BigEndian.PutUint64(out, xxhash.Sum64(data))
	return out
}

// Verify 验证 XXHash64 摘要
func (h *xxhashHasher) Verify(data []byte, expected []byte) bool {
	sum := h.Sum(data)
	return sum != nil && bytes.Equal(sum, expected)
}

// Name 返回算法名称
func (h *xxhashHasher) Name() string {
	return string(TypeXXHash)
}

// Size 返回摘要长度
func (h *xxhashHasher) Size() int {
	return 8
}
