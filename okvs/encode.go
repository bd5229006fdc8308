package okvs

import (
	"fmt"
	"sort"

	"github.com/8888flbu/OTPSI/gf128"
	"github.com/8888flbu/OTPSI/xhash"
)

// Encode packs kvs into a Storage of length params.M following the
// randomized-banded Gaussian elimination algorithm of spec.md section 4.4:
// build rows, sort by a+first_one(u), eliminate against existing pivots,
// sample free columns, back-substitute.
//
// On an inconsistent key set (the rare, cryptographically negligible
// failure event spec.md documents), Encode returns a fully pseudo-random
// Storage together with ErrUnsolvable; the caller is expected to retry
// with fresh seeds (see party.Pipeline.RunS13).
func Encode(kvs []KV, params Params) (Storage, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	rows := make([]row, len(kvs))
	for i, kv := range kvs {
		rows[i] = buildRow(kv.Key, kv.Value, params)
	}
	sortRows(rows)

	pivotCol := make(map[uint64]int, len(rows))
	basis := make([]row, 0, len(rows))

	for _, r := range rows {
		for {
			c0, ok := minSetColumn(r.bits)
			if !ok {
				break
			}
			idx, hasPivot := pivotCol[c0]
			if !hasPivot {
				break
			}
			xorInto(&r, basis[idx])
		}

		c0, ok := minSetColumn(r.bits)
		if !ok {
			if !r.v.IsZero() {
				return randomStorage(params), fmt.Errorf("%w: inconsistent row with all-zero band", ErrUnsolvable)
			}
			// Redundant row (all-zero u, zero v): skip.
			continue
		}
		pivotCol[c0] = len(basis)
		basis = append(basis, r)
	}

	storage := NewStorage(params.M)
	fillFreeColumns(storage, pivotCol, params)
	backSubstitute(storage, basis, pivotCol)

	return storage, nil
}

// fillFreeColumns samples independent pseudo-random field values for
// every column not claimed as a pivot (spec.md section 4.4 step 4).
func fillFreeColumns(storage Storage, pivotCol map[uint64]int, params Params) {
	freeSeed := params.SeedR1 ^ params.SeedR2
	for col := uint64(0); col < params.M; col++ {
		if _, ok := pivotCol[col]; ok {
			continue
		}
		storage[col] = xhash.BlockPRNG(freeSeed, col, 0)
	}
}

// backSubstitute resolves every pivot column's storage value, processing
// pivot columns in descending order (spec.md section 4.4 step 5). Because
// the elimination loop always assigns a row's pivot as the SMALLEST set
// column remaining in that row, every other column the row touches is
// strictly larger and so already has a final value by the time we reach
// this row's own pivot column.
func backSubstitute(storage Storage, basis []row, pivotCol map[uint64]int) {
	cols := make([]uint64, 0, len(pivotCol))
	for col := range pivotCol {
		cols = append(cols, col)
	}
	sort.Slice(cols, func(i, j int) bool { return cols[i] > cols[j] })

	for _, col := range cols {
		r := basis[pivotCol[col]]
		val := r.v
		for j := range r.bits {
			if j != col {
				val = gf128.Add(val, storage[j])
			}
		}
		storage[col] = val
	}
}

// randomStorage fills every column with an independent pseudo-random
// value, the documented policy for an unsolvable system: decode will
// produce garbage on every key, signaling failure to the caller via the
// accompanying ErrUnsolvable rather than silently returning a usable but
// wrong table.
func randomStorage(params Params) Storage {
	storage := NewStorage(params.M)
	seed := params.SeedR1 ^ params.SeedR2 ^ 0x5244_4d5f_4641_4c4c // "RND_FALL" domain tweak
	for col := uint64(0); col < params.M; col++ {
		storage[col] = xhash.BlockPRNG(seed, col, 1)
	}
	return storage
}
