package party

import (
	"sync"

	"github.com/8888flbu/OTPSI/okvs"
)

// Registry is the public parameter-announcement channel parties use to
// publish the OKVS seeds they ultimately used after any unsolvable-system
// retries (spec.md section 7, "OKVSUnsolvable: bounded retry with fresh
// seeds"). Unlike transport.Exchange, which carries the OKVS storage and
// placement-table payloads themselves, Registry carries only the small
// public metadata (m, w, seed_r1, seed_r2) a peer needs before it can call
// Storage.Decode against that party's table.
type Registry struct {
	mu     sync.RWMutex
	params map[int]okvs.Params
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{params: make(map[int]okvs.Params)}
}

// Publish announces partyID's final OKVS parameters.
func (r *Registry) Publish(partyID int, params okvs.Params) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.params[partyID] = params
}

// Fetch returns partyID's announced OKVS parameters, if published.
func (r *Registry) Fetch(partyID int) (okvs.Params, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.params[partyID]
	return p, ok
}
