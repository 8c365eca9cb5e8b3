package runtime

import (
	"context"
	"errors"
	"time"

	cfgpkg "github.com/alastria/dome-relay/internal/config"
	"github.com/alastria/dome-relay/internal/ledger"
	pebblestore "github.com/alastria/dome-relay/internal/storage/pebble"
)

// Options for building the Runtime.
type Options struct {
	DataDir       string
	Fsync         pebblestore.FsyncMode
	FsyncInterval time.Duration
	Config        cfgpkg.Config
}

// Runtime wires storage, config, and the ledger registry for a single-node
// relay instance.
type Runtime struct {
	db      *pebblestore.DB
	ledgers *ledger.Registry
	config  cfgpkg.Config
}

// Open initializes the underlying storage and returns a Runtime.
func Open(opts Options) (*Runtime, error) {
	db, err := pebblestore.Open(pebblestore.Options{
		DataDir:       opts.DataDir,
		Fsync:         opts.Fsync,
		FsyncInterval: opts.FsyncInterval,
	})
	if err != nil {
		return nil, err
	}
	return &Runtime{db: db, ledgers: ledger.NewRegistry(db), config: opts.Config}, nil
}

// Close closes underlying resources.
func (r *Runtime) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// CheckHealth performs a simple health check.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	if r.db == nil {
		return errors.New("db not open")
	}
	it, err := r.db.NewIter(nil)
	if err != nil {
		return err
	}
	it.Close()
	return nil
}

// Ledger returns the ledger client for an event log address, opening the
// embedded ledger on first use.
func (r *Runtime) Ledger(addr string) (ledger.Client, error) {
	return r.ledgers.Client(addr)
}

// Ledgers exposes the address registry.
func (r *Runtime) Ledgers() *ledger.Registry { return r.ledgers }

// DB exposes the underlying DB for advanced operations (internal use only).
func (r *Runtime) DB() *pebblestore.DB { return r.db }

// Config returns the runtime configuration.
func (r *Runtime) Config() cfgpkg.Config { return r.config }
