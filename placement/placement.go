// Package placement implements the cuckoo-style placement table (C5):
// deterministic per-element slot assignment spreading a party's own and
// its peers' cross-decoded shares across B buckets, scanned later by the
// aggregator. Correctness never depends on the slot rule — only on tag
// equality (see package aggregator) — the rule exists purely to bound
// per-bucket work.
package placement

import (
	"encoding/binary"
	"math"
	"sort"

	"github.com/8888flbu/OTPSI/gf128"
	"github.com/8888flbu/OTPSI/xhash"
)

// Share is a single placed share: the party it came from, its evaluation
// f_x(i), and the tag linking it to the element it was derived from.
type Share struct {
	PartyID uint32
	Fx      gf128.Elem
	Tag     gf128.Elem
}

// Bucket is an append-only (until the table is finalized) multiset of
// shares. Insertion order never matters: shares are matched by tag
// equality, not position.
type Bucket []Share

// Table is an indexed sequence of B buckets, built once by a single party
// during S14 and thereafter read-only.
type Table []Bucket

// NumBuckets computes B = ceil(epsilonHash * m) + 1 from spec.md section
// 4.2's bucket-count formula, where m is the max set size across parties.
func NumBuckets(m int, epsilonHash float64) int {
	if m <= 0 {
		return 1
	}
	return int(math.Ceil(epsilonHash*float64(m))) + 1
}

// NewTable allocates a Table with b empty buckets.
func NewTable(b int) Table {
	return make(Table, b)
}

// slotOrder computes I(x) = sort(h(x,1,seed), ..., h(x,n,seed)), each
// h mapping into [0, b) via a keyed hash of x concatenated with the
// 1-indexed party number g.
func slotOrder(x gf128.Elem, n int, seed uint64, b uint64) []uint64 {
	xb := x.Bytes()
	buf := make([]byte, 20)
	copy(buf, xb[:])

	order := make([]uint64, n)
	for g := 1; g <= n; g++ {
		binary.BigEndian.PutUint32(buf[16:], uint32(g))
		order[g-1] = xhash.H1(seed, buf, b)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })
	return order
}

// rotate implements the (a + b - 1) mod n slot-rotation rule of spec.md
// section 4.5, with a and b taken as 1-indexed party numbers.
func rotate(a, b, n int) int {
	return (a + b - 1) % n
}

// SelfSlot returns the bucket index for party i's own share of element x,
// i.e. slot I[(i + i - 1) mod n].
func SelfSlot(x gf128.Elem, i, n int, seed uint64, b uint64) uint64 {
	order := slotOrder(x, n, seed, b)
	return order[rotate(i, i, n)]
}

// CrossSlot returns the bucket index, at party i's table, for a
// cross-decoded share originating from peer gamma, i.e. slot
// I[(gamma + i - 1) mod n].
func CrossSlot(x gf128.Elem, gamma, i, n int, seed uint64, b uint64) uint64 {
	order := slotOrder(x, n, seed, b)
	return order[rotate(gamma, i, n)]
}

// InsertSelf places party i's own share for element x at its deterministic
// slot.
func (t Table) InsertSelf(x gf128.Elem, i, n int, seed uint64, share Share) {
	slot := SelfSlot(x, i, n, seed, uint64(len(t)))
	t[slot] = append(t[slot], share)
}

// InsertCross places a cross-decoded share (originating from peer gamma)
// at party i's table, at its deterministic slot.
func (t Table) InsertCross(x gf128.Elem, gamma, i, n int, seed uint64, share Share) {
	slot := CrossSlot(x, gamma, i, n, seed, uint64(len(t)))
	t[slot] = append(t[slot], share)
}
