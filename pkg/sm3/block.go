// pkg/sm3/block.go
package sm3

import "math/bits"

// rotT 预旋转的轮常量: rotT[j] = Tj <<< (j mod 32)
// Tj = 0x79cc4519 (j < 16), 0x7a879d8a (j >= 16)
var rotT = [64]uint32{
	0x79cc4519, 0xf3988a32, 0xe7311465, 0xce6228cb,
	0x9cc45197, 0x3988a32f, 0x7311465e, 0xe6228cbc,
	0xcc451979, 0x988a32f3, 0x311465e7, 0x6228cbce,
	0xc451979c, 0x88a32f39, 0x11465e73, 0x228cbce6,
	0x9d8a7a87, 0x3b14f50f, 0x7629ea1e, 0xec53d43c,
	0xd8a7a879, 0xb14f50f3, 0x629ea1e7, 0xc53d43ce,
	0x8a7a879d, 0x14f50f3b, 0x29ea1e76, 0x53d43cec,
	0xa7a879d8, 0x4f50f3b1, 0x9ea1e762, 0x3d43cec5,
	0x7a879d8a, 0xf50f3b14, 0xea1e7629, 0xd43cec53,
	0xa879d8a7, 0x50f3b14f, 0xa1e7629e, 0x43cec53d,
	0x879d8a7a, 0x0f3b14f5, 0x1e7629ea, 0x3cec53d4,
	0x79d8a7a8, 0xf3b14f50, 0xe7629ea1, 0xcec53d43,
	0x9d8a7a87, 0x3b14f50f, 0x7629ea1e, 0xec53d43c,
	0xd8a7a879, 0xb14f50f3, 0x629ea1e7, 0xc53d43ce,
	0x8a7a879d, 0x14f50f3b, 0x29ea1e76, 0x53d43cec,
	0xa7a879d8, 0x4f50f3b1, 0x9ea1e762, 0x3d43cec5,
}

// ff 布尔函数 FFj
func ff(x, y, z uint32, j int) uint32 {
	if j < 16 {
		return x ^ y ^ z
	}
	return (x & y) | (x & z) | (y & z)
}

// gg 布尔函数 GGj
func gg(x, y, z uint32, j int) uint32 {
	if j < 16 {
		return x ^ y ^ z
	}
	return (x & y) | (^x & z)
}

// p0 置换函数 P0
func p0(x uint32) uint32 {
	return x ^ bits.RotateLeft32(x, 9) ^ bits.RotateLeft32(x, 17)
}

// p1 置换函数 P1
func p1(x uint32) uint32 {
	return x ^ bits.RotateLeft32(x, 15) ^ bits.RotateLeft32(x, 23)
}

// expand 消息扩展: 64 字节分组 -> W[68]
func expand(w *[68]uint32, p []byte) {
	for i := 0; i < 16; i++ {
		j := i * 4
		w[i] = uint32(p[j])<<24 | uint32(p[j+1])<<16 | uint32(p[j+2])<<8 | uint32(p[j+3])
	}
	for i := 16; i < 68; i++ {
		w[i] = p1(w[i-16]^w[i-9]^bits.RotateLeft32(w[i-3], 15)) ^
			bits.RotateLeft32(w[i-13], 7) ^ w[i-6]
	}
}

// compressGeneric 压缩函数 CF 的紧凑循环实现
// p 长度必须是 64 的整数倍，每个分组迭代一次
func compressGeneric(h *[8]uint32, p []byte) {
	var w [68]uint32
	h0, h1, h2, h3, h4, h5, h6, h7 := h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7]

	for len(p) >= chunk {
		expand(&w, p)

		a, b, c, d, e, f, g, hh := h0, h1, h2, h3, h4, h5, h6, h7
		for j := 0; j < 64; j++ {
			x := bits.RotateLeft32(a, 12)
			ss1 := bits.RotateLeft32(x+e+rotT[j], 7)
			tt1 := ff(a, b, c, j) + d + (ss1 ^ x) + (w[j] ^ w[j+4])
			tt2 := gg(e, f, g, j) + hh + ss1 + w[j]

			d, c, b, a = c, bits.RotateLeft32(b, 9), a, tt1
			hh, g, f, e = g, bits.RotateLeft32(f, 19), e, p0(tt2)
		}

		h0 ^= a
		h1 ^= b
		h2 ^= c
		h3 ^= d
		h4 ^= e
		h5 ^= f
		h6 ^= g
		h7 ^= hh
		p = p[chunk:]
	}
	h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7] = h0, h1, h2, h3, h4, h5, h6, h7
}
