package party

import (
	"fmt"
	"sync"

	"github.com/8888flbu/OTPSI/aggregator"
	"github.com/8888flbu/OTPSI/placement"
)

// RunProtocol drives every phase across all of pipelines: S12 and S13 each
// run in parallel across parties behind a hard barrier (spec.md section 5,
// "all S13 outputs globally visible before any S14 decode begins"), then
// S14, then an aggregator.Recover scan (S3x) over every resulting
// placement table.
func RunProtocol(pipelines []*Pipeline, b, k int) ([]aggregator.Witness, error) {
	n := len(pipelines)

	if err := runPhase(pipelines, func(p *Pipeline) error { return p.RunS12() }); err != nil {
		return nil, err
	}
	if err := runPhase(pipelines, func(p *Pipeline) error { return p.RunS13() }); err != nil {
		return nil, err
	}
	if err := runPhase(pipelines, func(p *Pipeline) error { return p.RunS14(n, b) }); err != nil {
		return nil, err
	}

	tables := make([]placement.Table, n)
	for i, p := range pipelines {
		tables[i] = p.table
	}

	return aggregator.Recover(tables, k)
}

// runPhase runs fn over every pipeline concurrently and waits for all to
// finish before returning — the phase barrier itself.
func runPhase(pipelines []*Pipeline, fn func(*Pipeline) error) error {
	var wg sync.WaitGroup
	errs := make([]error, len(pipelines))
	for i, p := range pipelines {
		i, p := i, p
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = fn(p)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return fmt.Errorf("phase failed: %w", err)
		}
	}
	return nil
}
