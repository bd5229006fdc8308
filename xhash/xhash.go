// Package xhash implements the keyed PRF/hash primitives the protocol
// builds on: H1 (slot/position hash), H2 (band-pattern XOF), Tag (element
// linking tag), and BlockPRNG (free-column filler), all backed by BLAKE3 in
// keyed mode (github.com/zeebo/blake3).
package xhash

import (
	"encoding/binary"
	"fmt"

	"github.com/8888flbu/OTPSI/gf128"
	"github.com/zeebo/blake3"
)

// Splatter constants used to expand a 64-bit seed into a 32-byte BLAKE3
// key. Each is XORed into one of the four 64-bit words of the key.
const (
	splatter0 uint64 = 0x4f54_5053_4931_2d30
	splatter1 uint64 = 0x4f54_5053_4931_2d31
	splatter2 uint64 = 0x4f54_5053_4931_2d32
	splatter3 uint64 = 0x4f54_5053_4931_2d33
)

// Domain-separation tags, one per operation, folded into the key so that
// H1, H2, Tag and BlockPRNG never collide even when invoked with the same
// seed (spec.md section 4.2, "Domain separation").
const (
	domainH1     byte = 0x01
	domainH2     byte = 0x02
	domainTag    byte = 0x03
	domainBlock  byte = 0x04
	domainDerive byte = 0x05
)

// expandKey deterministically splatters seed and domain into a 32-byte
// BLAKE3 key, serialized big-endian as spec.md section 4.2 requires.
func expandKey(seed uint64, domain byte) [32]byte {
	w0 := seed ^ splatter0 ^ (uint64(domain) << 56)
	w1 := seed ^ splatter1
	w2 := seed ^ splatter2
	w3 := seed ^ splatter3

	var key [32]byte
	binary.BigEndian.PutUint64(key[0:8], w0)
	binary.BigEndian.PutUint64(key[8:16], w1)
	binary.BigEndian.PutUint64(key[16:24], w2)
	binary.BigEndian.PutUint64(key[24:32], w3)
	return key
}

// newKeyed returns a BLAKE3 hasher keyed with seed under the given domain
// tag. The key is always exactly 32 bytes, so NewKeyed cannot fail in
// practice; a failure here indicates expandKey was changed to produce a
// key of the wrong length.
func newKeyed(seed uint64, domain byte) *blake3.Hasher {
	key := expandKey(seed, domain)
	h, err := blake3.NewKeyed(key[:])
	if err != nil {
		panic(fmt.Errorf("xhash: NewKeyed: %w", err))
	}
	return h
}

// H1 maps data to [0, modulus) via a keyed hash: the first 8 output bytes
// are read as a little-endian uint64 and reduced modulo modulus.
func H1(seed uint64, data []byte, modulus uint64) uint64 {
	if modulus == 0 {
		panic("xhash: H1: modulus must be > 0")
	}
	h := newKeyed(seed, domainH1)
	_, _ = h.Write(data)
	sum := h.Sum(nil)
	v := binary.LittleEndian.Uint64(sum[:8])
	return v % modulus
}

// H2 produces a w-bit band pattern as ceil(w/8) bytes via a keyed XOF; bit
// j of the pattern is bit (j mod 8) of byte (j div 8) — see BitAt. If the
// resulting pattern would be all-zero (probability 2^-w), bit 0 is forced
// to 1 (the degeneracy guard spec.md section 4.2 documents).
func H2(seed uint64, data []byte, w int) []byte {
	if w <= 0 {
		panic("xhash: H2: w must be > 0")
	}
	h := newKeyed(seed, domainH2)
	_, _ = h.Write(data)

	out := make([]byte, (w+7)/8)
	d := h.Digest()
	if _, err := d.Read(out); err != nil {
		panic(fmt.Errorf("xhash: H2: digest read: %w", err))
	}

	allZero := true
	for _, b := range out {
		if b != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		out[0] |= 1
	}
	return out
}

// BitAt reports bit j (0-indexed) of a band pattern produced by H2: bit j
// is bit (j mod 8) of byte (j div 8).
func BitAt(pattern []byte, j int) bool {
	return (pattern[j/8]>>uint(j%8))&1 == 1
}

// Tag produces a keyed 128-bit value linking shares derived from the same
// input element across parties, with tag-collision probability 2^-128.
func Tag(seed uint64, data []byte) gf128.Elem {
	h := newKeyed(seed, domainTag)
	_, _ = h.Write(data)
	sum := h.Sum(nil)
	e, err := gf128.FromBytes(sum[:16])
	if err != nil {
		panic(fmt.Errorf("xhash: Tag: %w", err))
	}
	return e
}

// Derive produces a general-purpose keyed pseudo-random field element from
// arbitrary data, domain-separated from H1/H2/Tag/BlockPRNG. Used wherever
// the protocol needs a deterministic field element keyed on a seed and a
// byte payload but outside those four named operations — e.g. deriving a
// per-element polynomial's coefficients from a seed that depends only on
// the element, never on party identity (shamir.GenPolynomial).
func Derive(seed uint64, data []byte) gf128.Elem {
	h := newKeyed(seed, domainDerive)
	_, _ = h.Write(data)
	sum := h.Sum(nil)
	e, err := gf128.FromBytes(sum[:16])
	if err != nil {
		panic(fmt.Errorf("xhash: Derive: %w", err))
	}
	return e
}

// BlockPRNG derives an independent pseudo-random field element from two
// integer inputs, used to fill free columns of an OKVS once the system is
// solvable.
func BlockPRNG(seed, s1, s2 uint64) gf128.Elem {
	h := newKeyed(seed, domainBlock)
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[0:8], s1)
	binary.BigEndian.PutUint64(buf[8:16], s2)
	_, _ = h.Write(buf[:])
	sum := h.Sum(nil)
	e, err := gf128.FromBytes(sum[:16])
	if err != nil {
		panic(fmt.Errorf("xhash: BlockPRNG: %w", err))
	}
	return e
}
