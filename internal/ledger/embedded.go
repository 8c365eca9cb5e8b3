package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/alastria/dome-relay/internal/eventlog"
	pebblestore "github.com/alastria/dome-relay/internal/storage/pebble"
)

// Embedded is a pebble-backed ledger for one contract address. Block
// timestamps are assigned as max(lastTimestamp, now) so they never decrease
// in sequence order.
type Embedded struct {
	log *eventlog.Log
	now func() int64
}

// OpenEmbedded opens (or creates) the embedded ledger for addr.
func OpenEmbedded(db *pebblestore.DB, addr string) (*Embedded, error) {
	l, err := eventlog.OpenLog(db, addr)
	if err != nil {
		return nil, fmt.Errorf("ledger: open log for %s: %w", addr, err)
	}
	return &Embedded{log: l, now: func() int64 { return time.Now().Unix() }}, nil
}

// SetNowFunc replaces the wall clock used for block timestamps. Tests use
// this to pin timestamps.
func (e *Embedded) SetNowFunc(f func() int64) { e.now = f }

// Address returns the contract address this ledger serves.
func (e *Embedded) Address() string { return e.log.Address() }

// AppendEvent implements Client.
func (e *Embedded) AppendEvent(ctx context.Context, ev Event) (Receipt, error) {
	payload, err := encodeBody(ev)
	if err != nil {
		return Receipt{}, fmt.Errorf("ledger: encode event: %w", err)
	}
	ts := e.now()
	if last := e.log.LastTimestamp(); ts < last {
		ts = last
	}
	seqs, err := e.log.Append(ctx, []eventlog.AppendRecord{{
		Timestamp: ts,
		EntityKey: ev.EntityID,
		Payload:   payload,
	}})
	if err != nil {
		return Receipt{}, err
	}
	return Receipt{ID: seqs[0], Timestamp: ts}, nil
}

// QueryRange implements Client.
func (e *Embedded) QueryRange(ctx context.Context, fromID, toID uint64) ([]Event, error) {
	if fromID == 0 {
		fromID = 1
	}
	if toID == 0 {
		toID = e.log.LastSeq()
	}
	if toID < fromID {
		return nil, nil
	}
	items, _ := e.log.Read(eventlog.ReadOptions{
		Start: eventlog.TokenFromSeq(fromID),
		Limit: int(toID - fromID + 1),
	})
	out := make([]Event, 0, len(items))
	for _, it := range items {
		if it.Seq > toID {
			break
		}
		ev, err := decodeBody(it.Seq, it.Timestamp, it.Payload)
		if err != nil {
			return nil, fmt.Errorf("ledger: malformed entry %d: %w", it.Seq, err)
		}
		out = append(out, ev)
	}
	return out, nil
}

// QueryByEntity implements Client.
func (e *Embedded) QueryByEntity(ctx context.Context, entityID string, fromID, toID uint64) ([]Event, error) {
	items, err := e.log.ReadByEntity(entityID, fromID, toID, 0)
	if err != nil {
		return nil, err
	}
	out := make([]Event, 0, len(items))
	for _, it := range items {
		ev, err := decodeBody(it.Seq, it.Timestamp, it.Payload)
		if err != nil {
			return nil, fmt.Errorf("ledger: malformed entry %d: %w", it.Seq, err)
		}
		out = append(out, ev)
	}
	return out, nil
}

// CurrentHeight implements Client.
func (e *Embedded) CurrentHeight(ctx context.Context) (uint64, error) {
	return e.log.LastSeq(), nil
}

// SubscribeLive implements Client. Events are delivered on a dedicated
// goroutine in append order until the context is cancelled or the handle is
// closed.
func (e *Embedded) SubscribeLive(ctx context.Context, opts SubscribeOptions, fn func(Event)) (*LiveSubscription, error) {
	sctx, cancel := context.WithCancel(ctx)
	sub := &LiveSubscription{cancel: cancel, done: make(chan struct{})}

	next := opts.FromID
	if next == 0 {
		next = e.log.LastSeq() + 1
	}

	go func() {
		defer close(sub.done)
		for {
			if sctx.Err() != nil {
				return
			}
			items, _ := e.log.Read(eventlog.ReadOptions{
				Start: eventlog.TokenFromSeq(next),
				Limit: 128,
			})
			for _, it := range items {
				ev, err := decodeBody(it.Seq, it.Timestamp, it.Payload)
				if err == nil {
					fn(ev)
				}
				next = it.Seq + 1
				if sctx.Err() != nil {
					return
				}
			}
			if len(items) == 0 {
				e.log.WaitForAppend(250 * time.Millisecond)
			}
		}
	}()
	return sub, nil
}

// CommitCursor implements Client.
func (e *Embedded) CommitCursor(ctx context.Context, subID string, id uint64) error {
	return e.log.CommitCursor(subID, eventlog.TokenFromSeq(id))
}

// Cursor implements Client.
func (e *Embedded) Cursor(ctx context.Context, subID string) (uint64, bool) {
	tok, ok := e.log.GetCursor(subID)
	if !ok {
		return 0, false
	}
	return tok.Seq(), true
}

// DeleteCursor implements Client.
func (e *Embedded) DeleteCursor(ctx context.Context, subID string) error {
	return e.log.DeleteCursor(subID)
}
