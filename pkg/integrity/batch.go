// pkg/integrity/batch.go
package integrity

import (
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
)

// prefetchSink 吸收预取读取，防止被编译器消除
// 原子写入，批处理可以在多个协程上并发执行
var prefetchSink atomic.Uint32

// SumBatch 按序计算一组块的 256 位摘要并写入对应输出槽
// 结果与逐块调用 Sum256 完全一致；所有前置条件先于任何写入校验，
// 校验失败时输出槽保持原样
func (e *Engine) SumBatch(blocks [][]byte, outputs [][]byte) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}
	if len(blocks) != len(outputs) {
		return errors.Wrapf(ErrCountMismatch, "%d blocks, %d outputs", len(blocks), len(outputs))
	}
	for i, b := range blocks {
		if len(b) != BlockSize {
			return errors.Wrapf(ErrBlockSize, "block %d: got %d bytes", i, len(b))
		}
	}
	for i, o := range outputs {
		if len(o) != Size256 {
			return errors.Wrapf(ErrSlotSize, "slot %d: got %d bytes", i, len(o))
		}
	}

	start := time.Now()
	var out [Size256]byte
	for i, b := range blocks {
		if e.prefetch && i+1 < len(blocks) {
			touch(blocks[i+1])
		}
		e.sumInto(b, &out)
		copy(outputs[i], out[:])
	}
	e.observe(len(blocks), time.Since(start))
	return nil
}

// touch 顺序触碰下一个块的缓存行，作为预取提示
// 仅影响访存时序，不参与摘要计算
func touch(block []byte) {
	var t byte
	for off := 0; off < len(block); off += 512 {
		t ^= block[off]
	}
	prefetchSink.Store(uint32(t))
}
