package eventlog

import (
	"context"
	"encoding/binary"
	"errors"
	"sync"

	pebblestore "github.com/alastria/dome-relay/internal/storage/pebble"
)

// AppendRecord represents a single appendable block entry.
type AppendRecord struct {
	// Timestamp is the block time in seconds. Callers must supply
	// non-decreasing values; the ledger layer owns that assignment.
	Timestamp int64
	// EntityKey, when non-empty, adds the entry to the entity index.
	EntityKey string
	Payload   []byte
}

// Log provides append-only operations for one contract address.
type Log struct {
	db   *pebblestore.DB
	addr string

	mu       sync.Mutex
	lastSeq  uint64
	lastTs   int64
	notifyCh chan struct{}
}

// ErrNotFound reports a missing log entry.
var ErrNotFound = errors.New("eventlog: entry not found")

// OpenLog initializes a Log and loads sequence/timestamp metadata (if any).
func OpenLog(db *pebblestore.DB, addr string) (*Log, error) {
	l := &Log{db: db, addr: addr, notifyCh: make(chan struct{})}
	meta, err := db.Get(KeyMeta(addr))
	if err == nil && len(meta) >= 16 {
		l.lastSeq = binary.BigEndian.Uint64(meta[:8])
		l.lastTs = int64(binary.BigEndian.Uint64(meta[8:16]))
	}
	return l, nil
}

// Address returns the contract address this log is scoped to.
func (l *Log) Address() string { return l.addr }

// LastSeq returns the highest committed sequence number (0 when empty).
func (l *Log) LastSeq() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastSeq
}

// LastTimestamp returns the block time of the latest entry (0 when empty).
func (l *Log) LastTimestamp() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastTs
}

// Append appends the provided records as a single atomic batch and returns
// the assigned sequence numbers. Waiters blocked in WaitForAppend are woken.
func (l *Log) Append(ctx context.Context, recs []AppendRecord) ([]uint64, error) {
	if len(recs) == 0 {
		return nil, nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	b := l.db.NewBatch()
	defer b.Close()

	seqs := make([]uint64, len(recs))
	for i, r := range recs {
		if r.Timestamp < l.lastTs {
			return nil, errors.New("eventlog: timestamp regression")
		}
		l.lastSeq++
		seq := l.lastSeq
		l.lastTs = r.Timestamp
		val := EncodeRecord(r.Timestamp, r.Payload)
		if err := b.Set(KeyEntry(l.addr, seq), val, nil); err != nil {
			return nil, err
		}
		if r.EntityKey != "" {
			if err := b.Set(KeyEntityIndex(l.addr, r.EntityKey, seq), nil, nil); err != nil {
				return nil, err
			}
		}
		seqs[i] = seq
	}

	var meta [16]byte
	binary.BigEndian.PutUint64(meta[:8], l.lastSeq)
	binary.BigEndian.PutUint64(meta[8:16], uint64(l.lastTs))
	if err := b.Set(KeyMeta(l.addr), meta[:], nil); err != nil {
		return nil, err
	}

	if err := l.db.CommitBatch(ctx, b); err != nil {
		return nil, err
	}
	// notify waiters
	close(l.notifyCh)
	l.notifyCh = make(chan struct{})
	return seqs, nil
}
