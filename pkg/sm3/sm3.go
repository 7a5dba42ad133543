// pkg/sm3/sm3.go
package sm3

import (
	"encoding/binary"
	"hash"
)

// SM3 杂凑算法实现 (GB/T 32905-2016)
// 输出 256 位摘要，消息分组长度 64 字节

// Size SM3 摘要长度（字节）
const Size = 32

// BlockSize SM3 消息分组长度（字节）
const BlockSize = 64

const chunk = 64

// 标准初始向量 IV
const (
	init0 = 0x7380166f
	init1 = 0x4914b2b9
	init2 = 0x172442d7
	init3 = 0xda8a0600
	init4 = 0xa96f30bc
	init5 = 0x163138aa
	init6 = 0xe38dee4d
	init7 = 0xb0fb0e4e
)

// IV 返回标准初始向量
func IV() [8]uint32 {
	return [8]uint32{init0, init1, init2, init3, init4, init5, init6, init7}
}

// digest SM3 摘要计算的中间状态
type digest struct {
	h   [8]uint32
	x   [chunk]byte
	nx  int
	len uint64
}

// New 创建 SM3 哈希计算器
func New() hash.Hash {
	d := new(digest)
	d.Reset()
	return d
}

// Reset 重置为初始状态
func (d *digest) Reset() {
	d.h = IV()
	d.nx = 0
	d.len = 0
}

func (d *digest) Size() int { return Size }

func (d *digest) BlockSize() int { return BlockSize }

// Write 写入消息数据
func (d *digest) Write(p []byte) (nn int, err error) {
	nn = len(p)
	d.len += uint64(nn)
	if d.nx > 0 {
		n := copy(d.x[d.nx:], p)
		d.nx += n
		if d.nx == chunk {
			compressGeneric(&d.h, d.x[:])
			d.nx = 0
		}
		p = p[n:]
	}
	if len(p) >= chunk {
		n := len(p) &^ (chunk - 1)
		compressGeneric(&d.h, p[:n])
		p = p[n:]
	}
	if len(p) > 0 {
		d.nx = copy(d.x[:], p)
	}
	return
}

// Sum 追加当前摘要到 in 并返回，不改变内部状态
func (d *digest) Sum(in []byte) []byte {
	d0 := *d
	sum := d0.checkSum()
	return append(in, sum[:]...)
}

// checkSum 执行标准填充并输出最终摘要
// 填充规则: 追加比特 1，补 0 至模 64 余 56，再追加 64 位大端比特长度
func (d *digest) checkSum() [Size]byte {
	length := d.len << 3
	var buf [chunk * 2]byte
	n := copy(buf[:], d.x[:d.nx])
	buf[n] = 0x80
	n++
	nn := chunk
	if n > chunk-8 {
		nn += chunk
	}
	binary.BigEndian.PutUint64(buf[nn-8:nn], length)
	compressGeneric(&d.h, buf[:nn])

	var out [Size]byte
	for i, s := range d.h {
		binary.BigEndian.PutUint32(out[i*4:], s)
	}
	return out
}

// Sum 计算 data 的 SM3 摘要
func Sum(data []byte) [Size]byte {
	var d digest
	d.Reset()
	d.Write(data)
	return d.checkSum()
}
