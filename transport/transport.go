// Package transport supplies the one concrete Exchange implementation this
// module provides: an in-memory exchange suitable for a star or full-mesh
// topology among parties running in the same process. spec.md explicitly
// abstracts transport away from the core protocol packages; a real
// deployment is expected to implement the same Exchange interface over a
// network transport.
package transport

import (
	"fmt"
	"sync"

	"github.com/8888flbu/OTPSI/okvs"
	"github.com/8888flbu/OTPSI/placement"
)

// Exchange is the boundary the core protocol packages use to publish and
// fetch peer OKVS storages and placement tables, never touching a network
// socket directly.
type Exchange interface {
	PublishOKVS(partyID int, storage okvs.Storage) error
	FetchOKVS(partyID int) (okvs.Storage, error)
	PublishTable(partyID int, table placement.Table) error
	FetchTable(partyID int) (placement.Table, error)
}

// InMemory is an Exchange backed by a mutex-guarded map, usable by any
// number of parties running as goroutines within one process.
type InMemory struct {
	mu     sync.RWMutex
	okvs   map[int]okvs.Storage
	tables map[int]placement.Table
}

// NewInMemory returns an empty InMemory exchange.
func NewInMemory() *InMemory {
	return &InMemory{
		okvs:   make(map[int]okvs.Storage),
		tables: make(map[int]placement.Table),
	}
}

// PublishOKVS makes partyID's OKVS storage available to FetchOKVS.
func (e *InMemory) PublishOKVS(partyID int, storage okvs.Storage) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.okvs[partyID] = storage
	return nil
}

// FetchOKVS returns partyID's published OKVS storage, or an error if it
// has not been published yet.
func (e *InMemory) FetchOKVS(partyID int) (okvs.Storage, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	s, ok := e.okvs[partyID]
	if !ok {
		return nil, fmt.Errorf("transport: no OKVS published for party %d", partyID)
	}
	return s, nil
}

// PublishTable makes partyID's placement table available to FetchTable.
func (e *InMemory) PublishTable(partyID int, table placement.Table) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tables[partyID] = table
	return nil
}

// FetchTable returns partyID's published placement table, or an error if
// it has not been published yet.
func (e *InMemory) FetchTable(partyID int) (placement.Table, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	t, ok := e.tables[partyID]
	if !ok {
		return nil, fmt.Errorf("transport: no placement table published for party %d", partyID)
	}
	return t, nil
}
