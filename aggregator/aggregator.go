// Package aggregator implements the intersection-recovery scan (C6): union
// placement-table buckets across parties, group by tag, and recover an
// intersection witness for every tag group backed by at least k distinct
// parties' shares that agree on a single degree-(k-1) polynomial.
//
// Modeled on multiparty.Combiner.GenAdditiveShare's "collect active
// points, Lagrange-combine" shape, generalized from a single additive-share
// recovery to a full scan over B buckets.
package aggregator

import (
	"errors"
	"fmt"
	"sort"

	"github.com/8888flbu/OTPSI/gf128"
	"github.com/8888flbu/OTPSI/placement"
	"github.com/8888flbu/OTPSI/shamir"
)

// ErrThresholdNotMet is the non-fatal, per-tag-group error signaling that
// fewer than k distinct parties contributed a share: the element is
// silently omitted from the witness list, never surfaced as a hard error.
var ErrThresholdNotMet = errors.New("aggregator: fewer than k distinct parties present for tag group")

// ErrConsistencyCheckFailed is the non-fatal, per-tag-group error signaling
// that an extra (beyond the k used for recovery) share does not lie on the
// recovered polynomial: the element is silently omitted.
var ErrConsistencyCheckFailed = errors.New("aggregator: shares do not lie on a common polynomial")

// Witness is a recovered intersection element: its value (the constant
// term of the common polynomial) and the party ids whose shares agreed on
// it.
type Witness struct {
	Value   gf128.Elem
	Parties []uint32
}

// Recover scans bucket 0..B-1 across all of tables, pools shares by tag,
// and returns one Witness for every distinct value recovered from a tag
// group meeting the k-party threshold and passing the consistency check;
// a value recovered again in a later bucket is not repeated. Tables need not all have the same
// length; buckets beyond a shorter table's length are simply skipped for
// that table.
func Recover(tables []placement.Table, k int) ([]Witness, error) {
	if k < 1 {
		return nil, fmt.Errorf("aggregator: threshold k must be >= 1, got %d", k)
	}
	numBuckets := 0
	for _, t := range tables {
		if len(t) > numBuckets {
			numBuckets = len(t)
		}
	}

	var witnesses []Witness
	emitted := make(map[gf128.Elem]bool)
	for eta := 0; eta < numBuckets; eta++ {
		pool := pooledShares(tables, eta)
		for _, shares := range groupByTag(pool) {
			w, err := recoverGroup(shares, k)
			if err != nil {
				// ErrThresholdNotMet / ErrConsistencyCheckFailed: per-element,
				// non-fatal — the element is simply not a witness.
				continue
			}
			// The slot rule spreads an element's shares over several
			// buckets, so the same value can be recovered more than once.
			if emitted[w.Value] {
				continue
			}
			emitted[w.Value] = true
			witnesses = append(witnesses, w)
		}
	}
	return witnesses, nil
}

// pooledShares concatenates bucket eta's shares across every table.
func pooledShares(tables []placement.Table, eta int) []placement.Share {
	var pool []placement.Share
	for _, t := range tables {
		if eta < len(t) {
			pool = append(pool, t[eta]...)
		}
	}
	return pool
}

// groupByTag partitions shares by their tag.
func groupByTag(shares []placement.Share) map[gf128.Elem][]placement.Share {
	groups := make(map[gf128.Elem][]placement.Share)
	for _, s := range shares {
		groups[s.Tag] = append(groups[s.Tag], s)
	}
	return groups
}

// dedupeByParty keeps at most one share per party_id, preferring the first
// occurrence (spec.md section 4.6 step 1).
func dedupeByParty(shares []placement.Share) []placement.Share {
	seen := make(map[uint32]bool, len(shares))
	out := make([]placement.Share, 0, len(shares))
	for _, s := range shares {
		if seen[s.PartyID] {
			continue
		}
		seen[s.PartyID] = true
		out = append(out, s)
	}
	return out
}

// recoverGroup implements spec.md section 4.6 steps 1-4 for a single tag
// group: dedupe, threshold check, recover via the first k points, and
// verify any further available shares against the recovered polynomial.
//
// With only k shares present, verification is tautological — interpolation
// always reproduces its own inputs — so a group at exactly the threshold
// is accepted outright; that is the expected behavior, not a gap, since
// spec.md section 4.6 step 4 only asks for extra-share verification "if
// available". Once more than k shares are present, every share beyond the
// first k must confirm the recovered polynomial or the group is rejected
// as inconsistent.
func recoverGroup(shares []placement.Share, k int) (Witness, error) {
	dedup := dedupeByParty(shares)
	if len(dedup) < k {
		return Witness{}, fmt.Errorf("%w: have %d, need %d", ErrThresholdNotMet, len(dedup), k)
	}
	sort.Slice(dedup, func(i, j int) bool { return dedup[i].PartyID < dedup[j].PartyID })

	points := make([]shamir.Point, len(dedup))
	for i, s := range dedup {
		points[i] = shamir.Point{X: shamir.EvalPointForParty(uint64(s.PartyID)), Y: s.Fx}
	}

	combo := points[:k]
	value := shamir.LagrangeAt(combo, gf128.Zero)

	for i := k; i < len(points); i++ {
		if !shamir.LagrangeAt(combo, points[i].X).Equal(points[i].Y) {
			return Witness{}, fmt.Errorf("%w: party %d's share does not lie on the polynomial recovered from the first %d", ErrConsistencyCheckFailed, dedup[i].PartyID, k)
		}
	}

	parties := make([]uint32, len(dedup))
	for i, s := range dedup {
		parties[i] = s.PartyID
	}
	return Witness{Value: value, Parties: parties}, nil
}
