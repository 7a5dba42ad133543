// pkg/sm3/block_unrolled.go
package sm3

import "math/bits"

// compressUnrolled 压缩函数 CF 的展开实现
// 按轮次分段（0-15 / 16-63）消除每轮的布尔函数分支，
// 段内按 4 轮展开，寄存器显式轮转避免末尾的换位赋值
func compressUnrolled(h *[8]uint32, p []byte) {
	var w [68]uint32
	h0, h1, h2, h3, h4, h5, h6, h7 := h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7]

	for len(p) >= chunk {
		expand(&w, p)

		a, b, c, d, e, f, g, hh := h0, h1, h2, h3, h4, h5, h6, h7

		for j := 0; j < 16; j += 4 {
			a, b, c, d, e, f, g, hh = round1(a, b, c, d, e, f, g, hh, w[j], w[j+4], rotT[j])
			a, b, c, d, e, f, g, hh = round1(a, b, c, d, e, f, g, hh, w[j+1], w[j+5], rotT[j+1])
			a, b, c, d, e, f, g, hh = round1(a, b, c, d, e, f, g, hh, w[j+2], w[j+6], rotT[j+2])
			a, b, c, d, e, f, g, hh = round1(a, b, c, d, e, f, g, hh, w[j+3], w[j+7], rotT[j+3])
		}

		for j := 16; j < 64; j += 4 {
			a, b, c, d, e, f, g, hh = round2(a, b, c, d, e, f, g, hh, w[j], w[j+4], rotT[j])
			a, b, c, d, e, f, g, hh = round2(a, b, c, d, e, f, g, hh, w[j+1], w[j+5], rotT[j+1])
			a, b, c, d, e, f, g, hh = round2(a, b, c, d, e, f, g, hh, w[j+2], w[j+6], rotT[j+2])
			a, b, c, d, e, f, g, hh = round2(a, b, c, d, e, f, g, hh, w[j+3], w[j+7], rotT[j+3])
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

// round1 第 0-15 轮: FF/GG 均为 X^Y^Z
func round1(a, b, c, d, e, f, g, h, w, w4, t uint32) (uint32, uint32, uint32, uint32, uint32, uint32, uint32, uint32) {
	x := bits.RotateLeft32(a, 12)
	ss1 := bits.RotateLeft32(x+e+t, 7)
	tt1 := (a ^ b ^ c) + d + (ss1 ^ x) + (w ^ w4)
	tt2 := (e ^ f ^ g) + h + ss1 + w
	return tt1, a, bits.RotateLeft32(b, 9), c,
		tt2 ^ bits.RotateLeft32(tt2, 9) ^ bits.RotateLeft32(tt2, 17),
		e, bits.RotateLeft32(f, 19), g
}

// round2 第 16-63 轮: FF 为多数函数，GG 为选择函数
func round2(a, b, c, d, e, f, g, h, w, w4, t uint32) (uint32, uint32, uint32, uint32, uint32, uint32, uint32, uint32) {
	x := bits.RotateLeft32(a, 12)
	ss1 := bits.RotateLeft32(x+e+t, 7)
	tt1 := ((a & b) | (a & c) | (b & c)) + d + (ss1 ^ x) + (w ^ w4)
	tt2 := ((e & f) | (^e & g)) + h + ss1 + w
	return tt1, a, bits.RotateLeft32(b, 9), c,
		tt2 ^ bits.RotateLeft32(tt2, 9) ^ bits.RotateLeft32(tt2, 17),
		e, bits.RotateLeft32(f, 19), g
}
