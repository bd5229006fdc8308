package gf128

// Domain constants for HashToField's two independent SplitMix64-style
// mixes, one per half, so that Hi and Lo never collapse into the same
// sequence for a given input.
const (
	hashToFieldDomainHi uint64 = 0x4850_4c48_4f5f_4849
	hashToFieldDomainLo uint64 = 0x4850_4c48_4f5f_4c4f
)

// HashToField deterministically injects a 64-bit integer into GF(2^128).
// It is consistent across parties: the same i always maps to the same
// Elem, independent of any process-local state. Used by the protocol to
// derive a party's Shamir evaluation point alpha_i = HashToField(i).
func HashToField(i uint64) Elem {
	return Elem{
		Hi: splitMix64(i ^ hashToFieldDomainHi),
		Lo: splitMix64(i ^ hashToFieldDomainLo),
	}
}

// splitMix64 is the standard SplitMix64 output mixing function.
func splitMix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	x ^= x >> 31
	return x
}
