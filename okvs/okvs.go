// Package okvs implements the randomized-banded oblivious key-value store
// (RB-OKVS, C4): Encode packs a set of (key, value) pairs into a storage
// vector S of length m such that Decode(key) recovers value via an O(w)
// XOR over a w-wide band, while Decode on any key outside the encoded set
// is computationally indistinguishable from uniform.
//
// The elimination algorithm is domain-specific (linear algebra over GF(2)
// in a key-value-store setting); its coding style favors explicit
// preallocated scratch, no hidden allocation inside hot loops, and
// loop-local accumulators over destructive in-place slice operations.
package okvs

import (
	"errors"
	"fmt"

	"github.com/8888flbu/OTPSI/gf128"
)

// ErrParameterInvalid is returned when Params fails validation: m <= w,
// w == 0, or any other violation of the m > w, (m-w+1) > 0 invariant.
var ErrParameterInvalid = errors.New("okvs: invalid parameters")

// ErrUnsolvable is returned by Encode when the banded linear system is
// inconsistent for the given seeds. The caller should retry Encode with
// fresh seeds (bounded retries, e.g. 4); see party.Pipeline.RunS13.
var ErrUnsolvable = errors.New("okvs: system unsolvable for given seeds")

// Params configures an RB-OKVS instance: m is the storage length, w is the
// band width (recommended w >= 192 for ~128-bit statistical security),
// and SeedR1/SeedR2 key the position hash (H1) and band-pattern hash (H2)
// respectively.
type Params struct {
	M      uint64
	W      uint32
	SeedR1 uint64
	SeedR2 uint64
}

// Validate checks the invariant m > w and (m-w+1) > 0.
func (p Params) Validate() error {
	if p.W == 0 {
		return fmt.Errorf("%w: w must be > 0", ErrParameterInvalid)
	}
	if p.M <= uint64(p.W) {
		return fmt.Errorf("%w: m (%d) must be > w (%d)", ErrParameterInvalid, p.M, p.W)
	}
	return nil
}

// KV is a single input pair: Key is hashed via H1/H2 to a band (a, u);
// Value is the target the band must XOR-decode to.
type KV struct {
	Key   gf128.Elem
	Value gf128.Elem
}

// Storage is the encoded output: a sequence of m field elements, indexed
// [0, m).
type Storage []gf128.Elem

// NewStorage allocates a zeroed Storage of the given length (the empty
// OKVS of spec.md section 3: "all elements zero").
func NewStorage(m uint64) Storage {
	return make(Storage, m)
}
