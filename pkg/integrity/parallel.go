// pkg/integrity/parallel.go
package integrity

import (
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"
)

// 并行引擎: 将 M 个块的索引划分为 T 个互不相交的连续区间，
// 每个工作协程只读写自己区间对应的输入/输出范围，区间静态划分，
// 无需任何锁；调用方阻塞到所有工作协程汇合后返回
// 对任意 T，输出与逐块顺序计算完全一致

// SumParallel 并行计算平铺缓冲区中 blockCount 个块的摘要
// blocks 长度必须为 blockCount*4096，outputs 长度必须为 blockCount*(outputBits/8)
// outputBits 仅支持 128 或 256，128 位输出为 256 位摘要的前 16 字节
func (e *Engine) SumParallel(blocks, outputs []byte, blockCount, workers, outputBits int) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}

	var outSize int
	switch outputBits {
	case 256:
		outSize = Size256
	case 128:
		outSize = Size128
	default:
		return errors.Wrapf(ErrOutputBits, "got %d", outputBits)
	}

	if blockCount < 0 || len(blocks) != blockCount*BlockSize {
		return errors.Wrapf(ErrCountMismatch, "%d blocks, %d input bytes", blockCount, len(blocks))
	}
	if len(outputs) != blockCount*outSize {
		return errors.Wrapf(ErrSlotSize, "%d blocks, %d output bytes", blockCount, len(outputs))
	}
	if workers < 1 {
		return errors.Wrapf(ErrWorkerCount, "got %d", workers)
	}
	if blockCount == 0 {
		return nil
	}
	if workers > blockCount {
		workers = blockCount
	}

	run := func(start, end int) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = errors.Newf("integrity: worker panic: %v", r)
			}
		}()
		var out [Size256]byte
		for i := start; i < end; i++ {
			e.sumInto(blocks[i*BlockSize:(i+1)*BlockSize], &out)
			copy(outputs[i*outSize:(i+1)*outSize], out[:outSize])
		}
		return nil
	}

	e.log.Debug("parallel digest dispatch",
		"blocks", blockCount,
		"workers", workers,
		"output_bits", outputBits,
	)

	start := time.Now()
	err := e.dispatch(blockCount, workers, run)
	if err != nil {
		e.log.Error("parallel digest failed", "error", err)
		return err
	}
	e.observe(blockCount, time.Since(start))
	return nil
}

// SumBlocks 并行计算一组独立块的 256 位摘要
// workers <= 0 时使用引擎默认工作协程数
func (e *Engine) SumBlocks(blocks [][]byte, workers int) ([][Size256]byte, error) {
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}
	for i, b := range blocks {
		if len(b) != BlockSize {
			return nil, errors.Wrapf(ErrBlockSize, "block %d: got %d bytes", i, len(b))
		}
	}
	if workers <= 0 {
		workers = e.workers
	}
	if len(blocks) == 0 {
		return nil, nil
	}
	if workers > len(blocks) {
		workers = len(blocks)
	}

	out := make([][Size256]byte, len(blocks))
	run := func(start, end int) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = errors.Newf("integrity: worker panic: %v", r)
			}
		}()
		for i := start; i < end; i++ {
			e.sumInto(blocks[i], &out[i])
		}
		return nil
	}

	startAt := time.Now()
	if err := e.dispatch(len(blocks), workers, run); err != nil {
		return nil, err
	}
	e.observe(len(blocks), time.Since(startAt))
	return out, nil
}

// dispatch 划分区间并派发到工作协程，阻塞到全部汇合
// 汇合后返回第一个错误；任何失败都意味着输出不可信
func (e *Engine) dispatch(n, workers int, run func(start, end int) error) error {
	if workers == 1 {
		return run(0, n)
	}
	if e.pool != nil {
		return e.dispatchPool(n, workers, run)
	}

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		start, end := partition(n, workers, w)
		if start == end {
			continue
		}
		g.Go(func() error {
			return run(start, end)
		})
	}
	return g.Wait()
}

// dispatchPool 通过复用协程池派发
func (e *Engine) dispatchPool(n, workers int, run func(start, end int) error) error {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	record := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	for w := 0; w < workers; w++ {
		start, end := partition(n, workers, w)
		if start == end {
			continue
		}
		wg.Add(1)
		err := e.pool.Submit(func() {
			defer wg.Done()
			if err := run(start, end); err != nil {
				record(err)
			}
		})
		if err != nil {
			wg.Done()
			record(errors.Wrap(err, "integrity: failed to submit to worker pool"))
		}
	}
	wg.Wait()
	return firstErr
}

// partition 将 n 个索引均分为 workers 个连续区间，余数摊到靠前的区间
// 区间只由 (n, workers, k) 决定，与执行顺序无关
func partition(n, workers, k int) (start, end int) {
	base := n / workers
	rem := n % workers
	start = k*base + min(k, rem)
	end = start + base
	if k < rem {
		end++
	}
	return start, end
}
