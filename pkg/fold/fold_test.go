// pkg/fold/fold_test.go
package fold

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/cockroachdb/errors"
)

// naiveFold 逐字节参考实现，用于对照字并行实现
func naiveFold(block []byte) [LaneCount]byte {
	var out [LaneCount]byte
	for i := 0; i < LaneCount; i++ {
		var b byte
		for j := 0; j < LaneSize; j++ {
			b ^= block[i*LaneSize+j]
		}
		out[i] = b
	}
	return out
}

func TestFoldAllZero(t *testing.T) {
	block := make([]byte, BlockSize)
	out, err := Fold(block)
	if err != nil {
		t.Fatalf("Fold failed: %v", err)
	}
	var zero [LaneCount]byte
	if out != zero {
		t.Error("all-zero block should fold to all-zero")
	}
}

// 车道宽度为偶数，64 个 0xFF 异或抵消为 0
func TestFoldAllOnes(t *testing.T) {
	block := bytes.Repeat([]byte{0xFF}, BlockSize)
	out, err := Fold(block)
	if err != nil {
		t.Fatalf("Fold failed: %v", err)
	}
	var zero [LaneCount]byte
	if out != zero {
		t.Error("all-0xFF block should fold to all-zero (even lane width cancels)")
	}
}

func TestFoldSingleBit(t *testing.T) {
	// 单比特落在哪条车道，输出就只有哪个字节非零
	for _, pos := range []int{0, 63, 64, 1024, 2048, 4095} {
		block := make([]byte, BlockSize)
		block[pos] = 0x01
		out, err := Fold(block)
		if err != nil {
			t.Fatalf("Fold failed: %v", err)
		}
		lane := pos / LaneSize
		for i := 0; i < LaneCount; i++ {
			want := byte(0)
			if i == lane {
				want = 0x01
			}
			if out[i] != want {
				t.Errorf("pos=%d: out[%d] = %#x, want %#x", pos, i, out[i], want)
			}
		}
	}
}

func TestFoldMatchesNaive(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	block := make([]byte, BlockSize)
	for i := 0; i < 100; i++ {
		rng.Read(block)
		got, err := Fold(block)
		if err != nil {
			t.Fatalf("Fold failed: %v", err)
		}
		if want := naiveFold(block); got != want {
			t.Fatalf("case %d: word-parallel fold differs from byte-wise reference", i)
		}
	}
}

// 折叠是线性变换: Fold(a^b) == Fold(a) ^ Fold(b)
func TestFoldLinearity(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	a := make([]byte, BlockSize)
	b := make([]byte, BlockSize)
	x := make([]byte, BlockSize)
	rng.Read(a)
	rng.Read(b)
	for i := range x {
		x[i] = a[i] ^ b[i]
	}

	fa, _ := Fold(a)
	fb, _ := Fold(b)
	fx, _ := Fold(x)
	for i := 0; i < LaneCount; i++ {
		if fx[i] != fa[i]^fb[i] {
			t.Fatalf("linearity violated at lane %d", i)
		}
	}
}

func TestFoldBadSize(t *testing.T) {
	for _, n := range []int{0, 1, 4095, 4097, 8192} {
		_, err := Fold(make([]byte, n))
		if !errors.Is(err, ErrBlockSize) {
			t.Errorf("len=%d: expected ErrBlockSize, got %v", n, err)
		}
	}
}

func BenchmarkFold(b *testing.B) {
	block := make([]byte, BlockSize)
	rand.New(rand.NewSource(1)).Read(block)
	b.SetBytes(BlockSize)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Fold(block)
	}
}
