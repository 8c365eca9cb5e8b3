package ledger

import (
	"sort"
	"sync"

	pebblestore "github.com/alastria/dome-relay/internal/storage/pebble"
)

// Registry hands out one Client per contract address, opening embedded
// ledgers lazily over a shared store.
type Registry struct {
	db *pebblestore.DB

	mu      sync.Mutex
	clients map[string]*Embedded
}

func NewRegistry(db *pebblestore.DB) *Registry {
	return &Registry{db: db, clients: make(map[string]*Embedded)}
}

// Client returns the ledger client for addr, opening it on first use.
func (r *Registry) Client(addr string) (Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.clients[addr]; ok {
		return c, nil
	}
	c, err := OpenEmbedded(r.db, addr)
	if err != nil {
		return nil, err
	}
	r.clients[addr] = c
	return c, nil
}

// Addresses lists the addresses with an open ledger, sorted.
func (r *Registry) Addresses() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.clients))
	for addr := range r.clients {
		out = append(out, addr)
	}
	sort.Strings(out)
	return out
}
