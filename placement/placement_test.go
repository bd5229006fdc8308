package placement

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/8888flbu/OTPSI/gf128"
)

func randElem(r *rand.Rand) gf128.Elem {
	return gf128.Elem{Hi: r.Uint64(), Lo: r.Uint64()}
}

func TestNumBuckets(t *testing.T) {
	require.Equal(t, 1, NumBuckets(0, 1.3))
	require.Equal(t, int(1.3*100)+1, NumBuckets(100, 1.3))
}

func TestSlotsWithinRange(t *testing.T) {
	r := rand.New(rand.NewSource(10))
	n, b := 5, uint64(37)
	seed := r.Uint64()

	for trial := 0; trial < 50; trial++ {
		x := randElem(r)
		for i := 1; i <= n; i++ {
			self := SelfSlot(x, i, n, seed, b)
			require.Less(t, self, b)
			for gamma := 1; gamma <= n; gamma++ {
				cross := CrossSlot(x, gamma, i, n, seed, b)
				require.Less(t, cross, b)
			}
		}
	}
}

func TestSelfSlotDeterministic(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	x := randElem(r)
	seed := r.Uint64()

	a := SelfSlot(x, 2, 4, seed, 50)
	b := SelfSlot(x, 2, 4, seed, 50)
	require.Equal(t, a, b)
}

func TestInsertSelfAndCross(t *testing.T) {
	r := rand.New(rand.NewSource(12))
	n, b := 3, 41
	seed := r.Uint64()
	table := NewTable(b)
	x := randElem(r)

	tag := gf128.Elem{Hi: 1, Lo: 2}
	table.InsertSelf(x, 1, n, seed, Share{PartyID: 1, Fx: randElem(r), Tag: tag})
	table.InsertCross(x, 2, 1, n, seed, Share{PartyID: 2, Fx: randElem(r), Tag: tag})
	table.InsertCross(x, 3, 1, n, seed, Share{PartyID: 3, Fx: randElem(r), Tag: tag})

	total := 0
	for _, bucket := range table {
		total += len(bucket)
	}
	require.Equal(t, 3, total)
}

func TestTableWireRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(13))
	table := NewTable(10)
	table[0] = Bucket{
		{PartyID: 1, Fx: randElem(r), Tag: randElem(r)},
		{PartyID: 2, Fx: randElem(r), Tag: randElem(r)},
	}
	table[5] = Bucket{
		{PartyID: 3, Fx: randElem(r), Tag: randElem(r)},
	}

	data, err := table.MarshalBinary()
	require.NoError(t, err)

	var decoded Table
	require.NoError(t, decoded.UnmarshalBinary(data))
	require.Equal(t, table, decoded)
}

func TestLoadStats(t *testing.T) {
	table := NewTable(4)
	table[0] = Bucket{{}, {}}
	table[1] = Bucket{{}}
	table[2] = Bucket{}
	table[3] = Bucket{{}, {}, {}}

	mean, stddev, err := table.LoadStats()
	require.NoError(t, err)
	require.InDelta(t, 1.5, mean, 1e-9)
	require.Greater(t, stddev, 0.0)
}
