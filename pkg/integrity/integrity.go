// pkg/integrity/integrity.go
package integrity

import (
	"encoding/binary"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"

	"github.com/lk2023060901/sm3fold/pkg/fold"
	"github.com/lk2023060901/sm3fold/pkg/logger"
	"github.com/lk2023060901/sm3fold/pkg/sm3"
)

// 固定块完整性校验引擎
// 流水线: 4096 字节块 -> XOR 折叠 64 字节 -> SM3 填充压缩 -> 256 位摘要
// 摘要只由块内容决定，引擎不保留任何跨调用状态

const (
	// BlockSize 输入数据块长度（字节）
	BlockSize = fold.BlockSize
	// Size256 完整摘要长度（字节）
	Size256 = 32
	// Size128 截断摘要长度（字节）
	Size128 = 16
)

// 64 字节折叠结果经标准填充后恰好是两个压缩分组 (128 字节)
const paddedLen = 2 * sm3.BlockSize

// Engine 完整性校验引擎
type Engine struct {
	strategy sm3.Strategy
	block    sm3.BlockFunc
	workers  int
	prefetch bool
	poolSize int
	pool     *ants.Pool
	log      logger.Logger
	metrics  *Metrics
	closed   atomic.Bool
}

// New 创建引擎
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		strategy: sm3.StrategyGeneric,
		log:      logger.Noop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	blockFn, err := sm3.Block(e.strategy)
	if err != nil {
		return nil, errors.Wrap(err, "integrity: invalid strategy")
	}
	e.block = blockFn

	if e.workers <= 0 {
		e.workers = runtime.NumCPU()
	}

	if e.poolSize > 0 {
		pool, err := ants.NewPool(e.poolSize)
		if err != nil {
			return nil, errors.Wrap(err, "integrity: failed to create worker pool")
		}
		e.pool = pool
	}

	e.log.Debug("integrity engine created",
		"strategy", string(e.strategy),
		"workers", e.workers,
		"pool_size", e.poolSize,
	)
	return e, nil
}

// Strategy 返回引擎使用的压缩函数执行策略
func (e *Engine) Strategy() sm3.Strategy {
	return e.strategy
}

// Close 关闭引擎并释放持有的协程池
// 关闭后任何摘要计算都返回 ErrEngineClosed，重复关闭无害
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return nil
	}
	if e.pool != nil {
		e.pool.Release()
	}
	return nil
}

// Sum256 计算单个 4096 字节块的 256 位摘要
func (e *Engine) Sum256(block []byte) ([Size256]byte, error) {
	var out [Size256]byte
	if e.closed.Load() {
		return out, ErrEngineClosed
	}
	if len(block) != BlockSize {
		return out, errors.Wrapf(ErrBlockSize, "got %d bytes", len(block))
	}

	start := time.Now()
	e.sumInto(block, &out)
	e.observe(1, time.Since(start))
	return out, nil
}

// Sum128 计算单个块的 128 位摘要，恒等于 256 位摘要的前 16 字节
func (e *Engine) Sum128(block []byte) ([Size128]byte, error) {
	var out [Size128]byte
	full, err := e.Sum256(block)
	if err != nil {
		return out, err
	}
	copy(out[:], full[:Size128])
	return out, nil
}

// sumInto 单块流水线，调用方保证 block 长度为 4096
func (e *Engine) sumInto(block []byte, out *[Size256]byte) {
	folded, _ := fold.Fold(block)

	// 64 字节消息的标准填充: 0x80 + 55 个 0 + 大端比特长度 512
	var msg [paddedLen]byte
	copy(msg[:fold.LaneCount], folded[:])
	msg[fold.LaneCount] = 0x80
	binary.BigEndian.PutUint64(msg[paddedLen-8:], fold.LaneCount*8)

	state := sm3.IV()
	e.block(&state, msg[:])

	for i, s := range state {
		binary.BigEndian.PutUint32(out[i*4:], s)
	}
}

func (e *Engine) observe(blocks int, elapsed time.Duration) {
	if e.metrics == nil {
		return
	}
	e.metrics.observe(blocks, elapsed)
}
