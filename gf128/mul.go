package gf128

import "github.com/klauspost/cpuid/v2"

// hasCLMUL reports whether the running CPU exposes a carry-less-multiply
// instruction (PCLMULQDQ on amd64, PMULL on arm64). It is evaluated once at
// package init: a single up-front capability check rather than re-testing
// on every call.
var hasCLMUL = cpuid.CPU.Supports(cpuid.PCLMULQDQ) || cpuid.CPU.Supports(cpuid.PMULL)

// Mul returns a*b: carry-less 128x128 multiplication producing a 256-bit
// intermediate, reduced modulo p(x) = x^128+x^7+x^2+x+1.
//
// Two code paths compute the same 256-bit carry-less product and must
// agree on every input: mulCLMUL, taken when the CPU reports CLMUL
// support, builds the product from four 64x64 carry-less partial products
// (the schoolbook decomposition CLMUL hardware accelerates); mulFallback,
// taken otherwise, is the bit-serial reference multiply. Both feed the
// same reduce step.
func Mul(a, b Elem) Elem {
	var w0, w1, w2, w3 uint64
	if hasCLMUL {
		w0, w1, w2, w3 = mulCLMUL(a, b)
	} else {
		w0, w1, w2, w3 = mulFallback(a, b)
	}
	return reduce(w0, w1, w2, w3)
}

// clmul64 computes the 128-bit carry-less product of two 64-bit values.
func clmul64(a, b uint64) (hi, lo uint64) {
	for i := uint(0); i < 64; i++ {
		if (b>>i)&1 == 0 {
			continue
		}
		if i == 0 {
			lo ^= a
		} else {
			lo ^= a << i
			hi ^= a >> (64 - i)
		}
	}
	return hi, lo
}

// mulCLMUL builds the 256-bit carry-less product of a and b (returned as
// four words w0..w3, least-significant first) from four 64x64 partial
// products, the decomposition that CLMUL-capable hardware accelerates:
//
//	a*b = aLo*bLo + (aLo*bHi + aHi*bLo)*x^64 + aHi*bHi*x^128
func mulCLMUL(a, b Elem) (w0, w1, w2, w3 uint64) {
	loloHi, loloLo := clmul64(a.Lo, b.Lo)
	lohiHi, lohiLo := clmul64(a.Lo, b.Hi)
	hiloHi, hiloLo := clmul64(a.Hi, b.Lo)
	hihiHi, hihiLo := clmul64(a.Hi, b.Hi)

	w0 = loloLo
	w1 = loloHi ^ lohiLo ^ hiloLo
	w2 = lohiHi ^ hiloHi ^ hihiLo
	w3 = hihiHi
	return
}

// mulFallback computes the same 256-bit carry-less product one bit of b at
// a time: a textbook "shift a, xor into accumulator" multiply over the
// full 128-bit width. This is the bit-serial reference that mulCLMUL must
// agree with for every input.
func mulFallback(a, b Elem) (w0, w1, w2, w3 uint64) {
	words := [4]uint64{a.Lo, a.Hi, 0, 0} // a shifted left by the current bit position

	for i := 0; i < 128; i++ {
		var bit uint64
		if i < 64 {
			bit = (b.Lo >> uint(i)) & 1
		} else {
			bit = (b.Hi >> uint(i-64)) & 1
		}
		if bit == 1 {
			w0 ^= words[0]
			w1 ^= words[1]
			w2 ^= words[2]
			w3 ^= words[3]
		}
		shiftLeft1(&words)
	}
	return
}

// shiftLeft1 shifts the 256-bit value held in words left by one bit.
func shiftLeft1(words *[4]uint64) {
	carry := uint64(0)
	for i := 0; i < 4; i++ {
		next := words[i] >> 63
		words[i] = (words[i] << 1) | carry
		carry = next
	}
}

// reduce folds a 256-bit carry-less product (words w0..w3, least
// significant first) modulo p(x) = x^128+x^7+x^2+x+1, returning the unique
// degree-<128 representative as an Elem.
//
// It eliminates the top set bit at a time: while the product has degree
// >= 128 at some position pos, x^pos = x^(128+k) for k = pos-128, and
// x^(128+k) = x^(k+7)+x^(k+2)+x^(k+1)+x^k (mod p), so XOR-ing in p(x)
// shifted by k clears bit pos and only ever sets bits at position <= k+7 <
// pos, so the process terminates.
func reduce(w0, w1, w2, w3 uint64) Elem {
	words := [4]uint64{w0, w1, w2, w3}

	for pos := 255; pos >= 128; pos-- {
		idx := pos / 64
		bit := uint(pos % 64)
		if (words[idx]>>bit)&1 == 0 {
			continue
		}
		k := pos - 128
		xorBit(&words, k+128)
		xorBit(&words, k+7)
		xorBit(&words, k+2)
		xorBit(&words, k+1)
		xorBit(&words, k)
	}

	return Elem{Hi: words[1], Lo: words[0]}
}

func xorBit(words *[4]uint64, pos int) {
	words[pos/64] ^= uint64(1) << uint(pos%64)
}
