// pkg/fold/fold.go
package fold

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
)

// XOR 折叠压缩: 将 4096 字节数据块压缩为 64 字节中间值
// 块划分为 64 条车道，每条车道 64 字节，车道内逐字节异或归约为 1 字节
// 折叠是线性变换，保留全块的奇偶类信息，扩散由后续哈希完成

const (
	// BlockSize 输入数据块长度（字节）
	BlockSize = 4096
	// LaneCount 车道数量
	LaneCount = 64
	// LaneSize 单条车道长度（字节）
	LaneSize = 64
)

// ErrBlockSize 输入长度不是 4096 字节
var ErrBlockSize = errors.New("fold: block must be exactly 4096 bytes")

// Fold 折叠一个 4096 字节数据块
// 注意: 全 0 块与全 0xFF 块折叠结果相同（车道宽度为偶数，异或抵消），
// 这是算法定义的一部分，不是缺陷
func Fold(block []byte) ([LaneCount]byte, error) {
	var out [LaneCount]byte
	if len(block) != BlockSize {
		return out, errors.Wrapf(ErrBlockSize, "got %d bytes", len(block))
	}
	for i := 0; i < LaneCount; i++ {
		out[i] = foldLane(block[i*LaneSize : (i+1)*LaneSize])
	}
	return out, nil
}

// foldLane 以 64 位字为单位异或归约一条车道
func foldLane(lane []byte) byte {
	_ = lane[LaneSize-1]
	acc := binary.LittleEndian.Uint64(lane[0:8])
	acc ^= binary.LittleEndian.Uint64(lane[8:16])
	acc ^= binary.LittleEndian.Uint64(lane[16:24])
	acc ^= binary.LittleEndian.Uint64(lane[24:32])
	acc ^= binary.LittleEndian.Uint64(lane[32:40])
	acc ^= binary.LittleEndian.Uint64(lane[40:48])
	acc ^= binary.LittleEndian.Uint64(lane[48:56])
	acc ^= binary.LittleEndian.Uint64(lane[56:64])

	acc ^= acc >> 32
	acc ^= acc >> 16
	acc ^= acc >> 8
	return byte(acc)
}
