// Package party implements the per-party phase sequencer (C7): S12
// (per-element share/tag derivation), S13 (OKVS encode and publish), and
// S14 (cross-OKVS decode and placement-table construction), plus
// RunProtocol, which drives a full multi-party run across hard phase
// barriers and finishes with an aggregator.Recover scan.
//
// Phase sequencing and per-phase goroutine fan-out structures a
// multi-party protocol run as a sequence of named phase functions, each
// internally parallel over parties/goroutines with a sync.WaitGroup, and
// logs phase start and completion through the standard log package.
package party

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/8888flbu/OTPSI/config"
	"github.com/8888flbu/OTPSI/gf128"
	"github.com/8888flbu/OTPSI/okvs"
	"github.com/8888flbu/OTPSI/placement"
	"github.com/8888flbu/OTPSI/shamir"
	"github.com/8888flbu/OTPSI/transport"
	"github.com/8888flbu/OTPSI/xhash"
)

// maxOKVSRetries bounds RunS13's reseed-and-retry loop for the rare,
// cryptographically negligible unsolvable-system event (spec.md section 7,
// okvs.ErrUnsolvable).
const maxOKVSRetries = 4

// elementState holds S12's per-element output: the polynomial shared by
// every party holding x (GenPolynomial depends only on x, never on party
// identity) and the tag linking shares derived from x.
type elementState struct {
	poly shamir.Polynomial
	tag  gf128.Elem
}

// Pipeline runs one party's S12/S13/S14 phases. ID is the party's
// 1-indexed number (matching shamir.EvalPointForParty and the placement
// slot rule's 1-indexed convention).
type Pipeline struct {
	ID       int
	Params   config.Params
	Set      []gf128.Elem
	Exchange transport.Exchange
	Registry *Registry
	Logger   *log.Logger

	elements   map[gf128.Elem]elementState
	okvsParams okvs.Params
	table      placement.Table
}

func (p *Pipeline) logf(format string, args ...interface{}) {
	if p.Logger != nil {
		p.Logger.Printf(format, args...)
	}
}

// RunS12 computes, in parallel over this party's elements, each element's
// shared polynomial and tag. Embarrassingly parallel: no cross-element
// state (spec.md section 4.7).
func (p *Pipeline) RunS12() error {
	p.logf("party %d: S12 start (%d elements)", p.ID, len(p.Set))
	p.elements = make(map[gf128.Elem]elementState, len(p.Set))

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for _, x := range p.Set {
		x := x
		wg.Add(1)
		go func() {
			defer wg.Done()
			poly, err := shamir.GenPolynomial(x, p.Params.K)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			xb := x.Bytes()
			tag := xhash.Tag(p.Params.SaltTag, xb[:])

			mu.Lock()
			p.elements[x] = elementState{poly: poly, tag: tag}
			mu.Unlock()
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return fmt.Errorf("party %d: S12: %w", p.ID, firstErr)
	}
	p.logf("party %d: S12 done", p.ID)
	return nil
}

// RunS13 encodes this party's own (x, f_x(alpha_i)) pairs into an RB-OKVS
// and publishes it, retrying with fresh seeds on an unsolvable system.
func (p *Pipeline) RunS13() error {
	p.logf("party %d: S13 start", p.ID)
	alpha := shamir.EvalPointForParty(uint64(p.ID))

	kvs := make([]okvs.KV, 0, len(p.Set))
	for _, x := range p.Set {
		st := p.elements[x]
		kvs = append(kvs, okvs.KV{Key: x, Value: st.poly.Eval(alpha)})
	}

	seedR1, seedR2 := deriveOKVSSeeds(p.Params.SaltTag, p.ID)
	params := okvs.Params{
		M:      p.Params.OKVSSize(len(p.Set)),
		W:      p.Params.W,
		SeedR1: seedR1,
		SeedR2: seedR2,
	}

	var storage okvs.Storage
	var err error
	for attempt := 0; attempt <= maxOKVSRetries; attempt++ {
		storage, err = okvs.Encode(kvs, params)
		if err == nil {
			break
		}
		if !errors.Is(err, okvs.ErrUnsolvable) {
			return fmt.Errorf("party %d: S13: %w", p.ID, err)
		}
		p.logf("party %d: S13: unsolvable system, retrying with fresh seeds (attempt %d)", p.ID, attempt+1)
		params.SeedR1, params.SeedR2 = reseed(params.SeedR1, params.SeedR2, attempt)
	}
	if err != nil {
		return fmt.Errorf("party %d: S13: %w after %d retries", p.ID, err, maxOKVSRetries)
	}

	p.okvsParams = params
	if p.Registry != nil {
		p.Registry.Publish(p.ID, params)
	}
	if err := p.Exchange.PublishOKVS(p.ID, storage); err != nil {
		return fmt.Errorf("party %d: S13: publish: %w", p.ID, err)
	}
	p.logf("party %d: S13 done (m=%d, w=%d)", p.ID, params.M, params.W)
	return nil
}

// RunS14 requires that every peer has completed S13 and announced its
// params (the happens-before barrier spec.md section 5 requires): for
// each of this party's elements, it evaluates its own share directly from
// the element's polynomial, decodes every other peer's OKVS to obtain that
// peer's share, and inserts all n shares into a local placement table.
func (p *Pipeline) RunS14(n, b int) error {
	p.logf("party %d: S14 start", p.ID)
	p.table = placement.NewTable(b)

	for _, x := range p.Set {
		st := p.elements[x]
		selfShare := placement.Share{
			PartyID: uint32(p.ID),
			Fx:      st.poly.Eval(shamir.EvalPointForParty(uint64(p.ID))),
			Tag:     st.tag,
		}
		p.table.InsertSelf(x, p.ID, n, p.Params.SaltTag, selfShare)

		for gamma := 1; gamma <= n; gamma++ {
			if gamma == p.ID {
				continue
			}
			peerStorage, err := p.Exchange.FetchOKVS(gamma)
			if err != nil {
				return fmt.Errorf("party %d: S14: fetch peer %d OKVS: %w", p.ID, gamma, err)
			}
			peerParams, ok := p.Registry.Fetch(gamma)
			if !ok {
				return fmt.Errorf("party %d: S14: no OKVS params announced for peer %d", p.ID, gamma)
			}
			crossFx := peerStorage.Decode(x, peerParams)
			cross := placement.Share{PartyID: uint32(gamma), Fx: crossFx, Tag: st.tag}
			p.table.InsertCross(x, gamma, p.ID, n, p.Params.SaltTag, cross)
		}
	}

	if err := p.Exchange.PublishTable(p.ID, p.table); err != nil {
		return fmt.Errorf("party %d: S14: publish table: %w", p.ID, err)
	}
	p.logf("party %d: S14 done", p.ID)
	return nil
}
