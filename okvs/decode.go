package okvs

import (
	"github.com/8888flbu/OTPSI/gf128"
	"github.com/8888flbu/OTPSI/xhash"
)

// Decode returns the XOR of the w-wide band S[a], S[a+1], ..., over the
// set bits of H2(key): O(w) XORs, no conditional logic beyond reading a
// bit. For a key that was encoded, this recovers its value; for any other
// key, the result is computationally indistinguishable from uniform (the
// obliviousness property the MPSI protocol relies on).
func (s Storage) Decode(key gf128.Elem, params Params) gf128.Elem {
	keyBytes := key.Bytes()
	a := xhash.H1(params.SeedR1, keyBytes[:], params.M-uint64(params.W)+1)
	pattern := xhash.H2(params.SeedR2, keyBytes[:], int(params.W))

	acc := gf128.Zero
	for j := 0; j < int(params.W); j++ {
		if xhash.BitAt(pattern, j) {
			acc = gf128.Add(acc, s[a+uint64(j)])
		}
	}
	return acc
}
