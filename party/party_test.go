package party

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/8888flbu/OTPSI/config"
	"github.com/8888flbu/OTPSI/gf128"
	"github.com/8888flbu/OTPSI/transport"
)

func elem(hi, lo uint64) gf128.Elem {
	return gf128.Elem{Hi: hi, Lo: lo}
}

// TestFourPartyThresholdOverlap runs 4 parties with k=2: elements 20 and 30
// are each held by P1, P2 and P3, while every other element belongs to
// exactly one party and must not surface.
func TestFourPartyThresholdOverlap(t *testing.T) {
	sets := [][]gf128.Elem{
		{elem(0, 10), elem(0, 20), elem(0, 30)},
		{elem(0, 20), elem(0, 30), elem(0, 40)},
		{elem(0, 20), elem(0, 30), elem(0, 50)},
		{elem(0, 60)},
	}

	params := config.Params{
		N:           4,
		K:           2,
		EpsilonOKVS: 0.05,
		W:           48,
		EpsilonHash: 1.3,
		SaltTag:     0x1357_2468_abcd_ef99,
	}
	require.NoError(t, params.Validate())

	exchange := transport.NewInMemory()
	registry := NewRegistry()

	pipelines := make([]*Pipeline, params.N)
	maxSet := 0
	for i, set := range sets {
		if len(set) > maxSet {
			maxSet = len(set)
		}
		pipelines[i] = &Pipeline{
			ID:       i + 1,
			Params:   params,
			Set:      set,
			Exchange: exchange,
			Registry: registry,
		}
	}
	b := (int(params.EpsilonHash*float64(maxSet)))*2 + 3

	witnesses, err := RunProtocol(pipelines, b, params.K)
	require.NoError(t, err)

	got := map[gf128.Elem]bool{}
	for _, w := range witnesses {
		got[w.Value] = true
	}
	require.True(t, got[elem(0, 20)])
	require.True(t, got[elem(0, 30)])
	require.Len(t, witnesses, 2)
}

// TestFivePartyThresholdBoundary mirrors spec.md section 8 scenario 3: five
// parties, k=3. Element e appears in exactly 2 parties (below threshold,
// must not be emitted), e' appears in exactly 3 (at the threshold boundary,
// must be emitted with no extra share to confirm it), and e'' appears in
// all 5 (emitted once).
func TestFivePartyThresholdBoundary(t *testing.T) {
	e := elem(0, 1)
	eprime := elem(0, 2)
	eprimeprime := elem(0, 3)

	sets := [][]gf128.Elem{
		{e, eprime, eprimeprime},
		{e, eprime, eprimeprime},
		{eprime, eprimeprime},
		{eprimeprime},
		{eprimeprime},
	}

	params := config.Params{
		N:           5,
		K:           3,
		EpsilonOKVS: 0.05,
		W:           48,
		EpsilonHash: 1.3,
		SaltTag:     0x9999_aaaa_bbbb_cccc,
	}
	require.NoError(t, params.Validate())

	exchange := transport.NewInMemory()
	registry := NewRegistry()

	pipelines := make([]*Pipeline, params.N)
	maxSet := 0
	for i, set := range sets {
		if len(set) > maxSet {
			maxSet = len(set)
		}
		pipelines[i] = &Pipeline{
			ID:       i + 1,
			Params:   params,
			Set:      set,
			Exchange: exchange,
			Registry: registry,
		}
	}
	b := (int(params.EpsilonHash*float64(maxSet)))*2 + 3

	witnesses, err := RunProtocol(pipelines, b, params.K)
	require.NoError(t, err)

	got := map[gf128.Elem]bool{}
	for _, w := range witnesses {
		got[w.Value] = true
	}
	require.False(t, got[e], "element held by only 2 of 5 parties must not be emitted")
	require.True(t, got[eprime], "element held by exactly k=3 parties must be emitted")
	require.True(t, got[eprimeprime], "element held by all 5 parties must be emitted")
	require.Len(t, witnesses, 2)
}

// TestNoOverlapYieldsNoWitnesses checks that disjoint sets never produce a
// spurious intersection witness, including for the sole-holder elements
// every other party's S14 phase still has to blindly decode a (here,
// oblivious) cross-share for.
func TestNoOverlapYieldsNoWitnesses(t *testing.T) {
	sets := [][]gf128.Elem{
		{elem(100, 1), elem(101, 2)},
		{elem(200, 3), elem(201, 4)},
		{},
	}

	params := config.Params{
		N:           3,
		K:           2,
		EpsilonOKVS: 0.05,
		W:           32,
		EpsilonHash: 1.3,
		SaltTag:     0xdead_beef,
	}
	require.NoError(t, params.Validate())

	exchange := transport.NewInMemory()
	registry := NewRegistry()
	pipelines := make([]*Pipeline, params.N)
	for i, set := range sets {
		pipelines[i] = &Pipeline{
			ID:       i + 1,
			Params:   params,
			Set:      set,
			Exchange: exchange,
			Registry: registry,
		}
	}

	witnesses, err := RunProtocol(pipelines, 11, params.K)
	require.NoError(t, err)
	require.Empty(t, witnesses)
}
