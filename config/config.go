// Package config defines the protocol's run-time parameter record and its
// validation rules (spec.md section 6/7), loadable from YAML via
// gopkg.in/yaml.v3: a plain struct tagged for its serialization format with
// a small Validate method rather than a configuration framework.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrParameterInvalid is returned by Validate for any parameter
// combination spec.md section 7 documents as fatal.
var ErrParameterInvalid = errors.New("config: invalid parameter")

// Params is the shared protocol configuration every party and the
// aggregator load identically: party count n, threshold k, OKVS slack
// epsilonOKVS, OKVS band width w, bucket slack epsilonHash, and the fixed
// tag-derivation salt.
//
// EpsilonOKVS is the small positive slack term of spec.md section 4.4's
// m = ceil((1+epsilonOKVS)*n) sizing formula (recommended default 0.05),
// not a direct multiplicative factor on the set size.
type Params struct {
	N           int     `yaml:"n"`
	K           int     `yaml:"k"`
	EpsilonOKVS float64 `yaml:"epsilon_okvs"`
	W           uint32  `yaml:"w"`
	EpsilonHash float64 `yaml:"epsilon_hash"`
	SaltTag     uint64  `yaml:"salt_tag"`
}

// Validate checks n >= k >= 1, w > 0, epsilonOKVS > 0 and
// epsilonHash > 1.0. The m > w condition is not checked here: OKVSSize
// floors m at w+1, and okvs.Params.Validate checks it.
func (p Params) Validate() error {
	if p.K < 1 {
		return fmt.Errorf("%w: k must be >= 1, got %d", ErrParameterInvalid, p.K)
	}
	if p.K > p.N {
		return fmt.Errorf("%w: k (%d) must be <= n (%d)", ErrParameterInvalid, p.K, p.N)
	}
	if p.W == 0 {
		return fmt.Errorf("%w: w must be > 0", ErrParameterInvalid)
	}
	if p.EpsilonOKVS <= 0 {
		return fmt.Errorf("%w: epsilon_okvs must be > 0, got %f", ErrParameterInvalid, p.EpsilonOKVS)
	}
	if p.EpsilonHash <= 1.0 {
		return fmt.Errorf("%w: epsilon_hash must be > 1.0, got %f", ErrParameterInvalid, p.EpsilonHash)
	}
	return nil
}

// OKVSSize returns the recommended RB-OKVS storage length
// m = ceil((1+epsilonOKVS) * setSize), spec.md section 4.4's slack formula,
// floored at w+1 so that okvs.Params.M > W still holds for a party holding
// fewer than w elements (including none at all — a party with an empty set
// still runs S13/S14 and must publish a structurally valid, if entirely
// free-column, OKVS).
func (p Params) OKVSSize(setSize int) uint64 {
	m := uint64(math.Ceil((1 + p.EpsilonOKVS) * float64(setSize)))
	if floor := uint64(p.W) + 1; m < floor {
		m = floor
	}
	return m
}

// Load reads and validates a Params record from a YAML file at path.
func Load(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var p Params
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Params{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}
