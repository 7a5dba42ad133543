// pkg/integrity/errors.go
package integrity

import "github.com/cockroachdb/errors"

var (
	// ErrBlockSize 数据块长度不是 4096 字节
	ErrBlockSize = errors.New("integrity: block must be exactly 4096 bytes")

	// ErrCountMismatch 块数量与输入/输出缓冲区长度不一致
	ErrCountMismatch = errors.New("integrity: block count does not match buffer length")

	// ErrSlotSize 输出槽长度与摘要长度不一致
	ErrSlotSize = errors.New("integrity: output slot size does not match digest size")

	// ErrWorkerCount 工作协程数量非法
	ErrWorkerCount = errors.New("integrity: worker count must be at least 1")

	// ErrOutputBits 输出位宽非法，仅支持 128 和 256
	ErrOutputBits = errors.New("integrity: output bits must be 128 or 256")

	// ErrEngineClosed 引擎已关闭
	ErrEngineClosed = errors.New("integrity: engine is closed")
)
