package xhash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestH1Deterministic(t *testing.T) {
	data := []byte("element-x")
	a := H1(42, data, 1000)
	b := H1(42, data, 1000)
	require.Equal(t, a, b)
	require.Less(t, a, uint64(1000))
}

func TestH1DomainSeparatedFromH2(t *testing.T) {
	data := []byte("element-x")
	h1 := H1(42, data, 1<<32)
	h2 := H2(42, data, 64)
	// Not a proof of independence, but catches an accidental same-key bug:
	// H1's low 32 bits (its first 4 output bytes, little-endian) should not
	// equal H2's leading 4 bytes read the same way.
	require.NotEqual(t, h1, uint64(h2[0])|uint64(h2[1])<<8|uint64(h2[2])<<16|uint64(h2[3])<<24)
}

func TestH2Length(t *testing.T) {
	for _, w := range []int{1, 7, 8, 9, 64, 192, 200} {
		out := H2(1, []byte("x"), w)
		require.Equal(t, (w+7)/8, len(out))
	}
}

func TestH2DegeneracyGuard(t *testing.T) {
	// Can't force an all-zero XOF output deterministically without a known
	// seed/data pair that produces one, but the guard must never produce
	// an all-zero pattern for any w we exercise.
	for seed := uint64(0); seed < 200; seed++ {
		out := H2(seed, []byte("probe"), 192)
		allZero := true
		for _, b := range out {
			if b != 0 {
				allZero = false
				break
			}
		}
		require.False(t, allZero)
	}
}

func TestBitAt(t *testing.T) {
	pattern := []byte{0b0000_0010, 0b0000_0001}
	require.False(t, BitAt(pattern, 0))
	require.True(t, BitAt(pattern, 1))
	require.True(t, BitAt(pattern, 8))
	require.False(t, BitAt(pattern, 9))
}

func TestTagCollisionOnlyForSameInput(t *testing.T) {
	a := Tag(7, []byte("apple"))
	b := Tag(7, []byte("apple"))
	c := Tag(7, []byte("banana"))
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
}

func TestDeriveIndependentOfPartyIndex(t *testing.T) {
	// Derive must depend only on (seed, data), never on any extra party
	// index the caller might be tempted to mix in — this test documents
	// that by showing two calls with identical (seed, data) always agree.
	seed := uint64(0xC0FFEE)
	data := []byte{1, 2, 3, 4}
	require.True(t, Derive(seed, data).Equal(Derive(seed, data)))
}

func TestBlockPRNGVariesPerColumn(t *testing.T) {
	a := BlockPRNG(1, 10, 0)
	b := BlockPRNG(1, 10, 1)
	require.False(t, a.Equal(b))
}
