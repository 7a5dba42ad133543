// pkg/integrity/batch_test.go
package integrity

import (
	"bytes"
	"math/rand"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
)

func makeBatch(rng *rand.Rand, n int) ([][]byte, [][]byte) {
	blocks := make([][]byte, n)
	outputs := make([][]byte, n)
	for i := range blocks {
		blocks[i] = randomBlock(rng)
		outputs[i] = make([]byte, Size256)
	}
	return blocks, outputs
}

// 批处理结果必须与逐块调用 Sum256 完全一致
func TestBatchEquivalence(t *testing.T) {
	e := newTestEngine(t)
	rng := rand.New(rand.NewSource(20))

	for _, n := range []int{1, 2, 7, 64} {
		blocks, outputs := makeBatch(rng, n)
		if err := e.SumBatch(blocks, outputs); err != nil {
			t.Fatalf("n=%d: SumBatch failed: %v", n, err)
		}
		for i := range blocks {
			want, err := e.Sum256(blocks[i])
			if err != nil {
				t.Fatalf("Sum256 failed: %v", err)
			}
			if !bytes.Equal(outputs[i], want[:]) {
				t.Fatalf("n=%d: slot %d differs from single-block digest", n, i)
			}
		}
	}
}

// N 个相同块的批处理必须产生 N 个相同摘要
func TestBatchIdenticalBlocks(t *testing.T) {
	e := newTestEngine(t)
	block := make([]byte, BlockSize)
	for i := range block {
		block[i] = byte(i % 256)
	}

	const n = 8
	blocks := make([][]byte, n)
	outputs := make([][]byte, n)
	for i := range blocks {
		blocks[i] = block
		outputs[i] = make([]byte, Size256)
	}

	if err := e.SumBatch(blocks, outputs); err != nil {
		t.Fatalf("SumBatch failed: %v", err)
	}
	for i := 1; i < n; i++ {
		if !bytes.Equal(outputs[0], outputs[i]) {
			t.Fatalf("slot %d differs for identical input blocks", i)
		}
	}
}

// 预取提示不得改变结果
func TestBatchPrefetchEquivalence(t *testing.T) {
	plain := newTestEngine(t)
	prefetching := newTestEngine(t, WithPrefetch())
	rng := rand.New(rand.NewSource(21))

	blocks, out1 := makeBatch(rng, 16)
	out2 := make([][]byte, len(blocks))
	for i := range out2 {
		out2[i] = make([]byte, Size256)
	}

	if err := plain.SumBatch(blocks, out1); err != nil {
		t.Fatalf("SumBatch failed: %v", err)
	}
	if err := prefetching.SumBatch(blocks, out2); err != nil {
		t.Fatalf("prefetching SumBatch failed: %v", err)
	}
	for i := range blocks {
		if !bytes.Equal(out1[i], out2[i]) {
			t.Fatalf("slot %d: prefetch changed the digest", i)
		}
	}
}

// 启用预取时批处理必须可以在多个协程上并发执行
// 配合 -race 验证预取提示不引入共享可变状态
func TestBatchConcurrentPrefetch(t *testing.T) {
	e := newTestEngine(t, WithPrefetch())
	rng := rand.New(rand.NewSource(25))

	const goroutines = 4
	blocks, want := makeBatch(rng, 16)
	if err := e.SumBatch(blocks, want); err != nil {
		t.Fatalf("SumBatch failed: %v", err)
	}

	var wg sync.WaitGroup
	results := make([][][]byte, goroutines)
	for g := 0; g < goroutines; g++ {
		outputs := make([][]byte, len(blocks))
		for i := range outputs {
			outputs[i] = make([]byte, Size256)
		}
		results[g] = outputs

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := e.SumBatch(blocks, outputs); err != nil {
				t.Errorf("concurrent SumBatch failed: %v", err)
			}
		}()
	}
	wg.Wait()

	for g, outputs := range results {
		for i := range blocks {
			if !bytes.Equal(outputs[i], want[i]) {
				t.Fatalf("goroutine %d: slot %d differs from sequential digest", g, i)
			}
		}
	}
}

func TestBatchEmpty(t *testing.T) {
	e := newTestEngine(t)
	if err := e.SumBatch(nil, nil); err != nil {
		t.Errorf("empty batch should be a no-op, got %v", err)
	}
}

func TestBatchValidation(t *testing.T) {
	e := newTestEngine(t)
	rng := rand.New(rand.NewSource(22))
	blocks, outputs := makeBatch(rng, 4)

	// 数量不一致
	if err := e.SumBatch(blocks, outputs[:3]); !errors.Is(err, ErrCountMismatch) {
		t.Errorf("expected ErrCountMismatch, got %v", err)
	}

	// 块长度非法
	badBlocks := [][]byte{blocks[0], make([]byte, 100), blocks[2], blocks[3]}
	if err := e.SumBatch(badBlocks, outputs); !errors.Is(err, ErrBlockSize) {
		t.Errorf("expected ErrBlockSize, got %v", err)
	}

	// 输出槽长度非法
	badOutputs := [][]byte{outputs[0], outputs[1], make([]byte, 16), outputs[3]}
	if err := e.SumBatch(blocks, badOutputs); !errors.Is(err, ErrSlotSize) {
		t.Errorf("expected ErrSlotSize, got %v", err)
	}
}

// 校验失败时任何输出槽都不应被写入
func TestBatchNoPartialWrites(t *testing.T) {
	e := newTestEngine(t)
	rng := rand.New(rand.NewSource(23))
	blocks, outputs := makeBatch(rng, 4)
	blocks[3] = make([]byte, 10) // 最后一个块非法

	if err := e.SumBatch(blocks, outputs); !errors.Is(err, ErrBlockSize) {
		t.Fatalf("expected ErrBlockSize, got %v", err)
	}
	empty := make([]byte, Size256)
	for i, o := range outputs {
		if !bytes.Equal(o, empty) {
			t.Errorf("slot %d was written despite validation failure", i)
		}
	}
}

func BenchmarkBatch8(b *testing.B) {
	e := newTestEngine(b)
	rng := rand.New(rand.NewSource(24))
	blocks, outputs := makeBatch(rng, 8)

	b.SetBytes(8 * BlockSize)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.SumBatch(blocks, outputs)
	}
}

func BenchmarkBatch8Prefetch(b *testing.B) {
	e := newTestEngine(b, WithPrefetch())
	rng := rand.New(rand.NewSource(24))
	blocks, outputs := makeBatch(rng, 8)

	b.SetBytes(8 * BlockSize)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.SumBatch(blocks, outputs)
	}
}
