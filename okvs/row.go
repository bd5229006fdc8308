package okvs

import (
	"sort"

	"github.com/8888flbu/OTPSI/gf128"
	"github.com/8888flbu/OTPSI/xhash"
)

// row is the internal {a, u, v} structure from spec.md section 3, except
// that u is tracked as a set of ABSOLUTE columns (rather than a fixed
// w-wide window relative to a) from the moment the row is built. This
// sidesteps having to re-align two rows' w-wide windows (which may start
// at different a) every time one is XORed into another during
// elimination: the elimination step and the final back-substitution step
// both only ever need "which absolute columns are set", never "where does
// this row's original band start".
type row struct {
	bits map[uint64]struct{} // absolute column -> set
	v    gf128.Elem
	sortKey uint64 // a + first_one(u), computed once before elimination
}

// buildRow hashes key to its band (a, u) and materializes it as an
// absolute-column row.
func buildRow(key gf128.Elem, value gf128.Elem, params Params) row {
	keyBytes := key.Bytes()
	a := xhash.H1(params.SeedR1, keyBytes[:], params.M-uint64(params.W)+1)
	pattern := xhash.H2(params.SeedR2, keyBytes[:], int(params.W))

	bits := make(map[uint64]struct{}, params.W)
	firstOne := int(params.W)
	for j := 0; j < int(params.W); j++ {
		if xhash.BitAt(pattern, j) {
			bits[a+uint64(j)] = struct{}{}
			if j < firstOne {
				firstOne = j
			}
		}
	}

	return row{bits: bits, v: value, sortKey: a + uint64(firstOne)}
}

// minSetColumn returns the smallest absolute column set in r.bits, or
// (0, false) if r.bits is empty (the "j* = w" / all-zero-u case of
// spec.md section 4.4 step 3, expressed in absolute-column terms).
func minSetColumn(bits map[uint64]struct{}) (uint64, bool) {
	first := true
	var min uint64
	for col := range bits {
		if first || col < min {
			min = col
			first = false
		}
	}
	return min, !first
}

// xorInto XORs src's bits and value into dst, in place.
func xorInto(dst *row, src row) {
	for col := range src.bits {
		if _, ok := dst.bits[col]; ok {
			delete(dst.bits, col)
		} else {
			dst.bits[col] = struct{}{}
		}
	}
	dst.v = gf128.Add(dst.v, src.v)
}

// sortRows sorts rows ascending by sortKey = a + first_one(u), the
// essential optimization that keeps elimination touching only locally
// overlapping rows (spec.md section 4.4 step 2).
func sortRows(rows []row) {
	sort.Slice(rows, func(i, j int) bool { return rows[i].sortKey < rows[j].sortKey })
}
