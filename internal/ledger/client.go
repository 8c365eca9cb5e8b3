package ledger

import (
	"context"
)

// SubscribeOptions controls where a live subscription starts reading.
type SubscribeOptions struct {
	// FromID resumes delivery at the given sequence (inclusive). Zero means
	// "next appended event only" — no historical replay.
	FromID uint64
}

// Client is the event-log contract consumed by the relay core. All methods
// surface storage/transport failures unwrapped; retry policy belongs to
// callers.
type Client interface {
	// AppendEvent submits a new event and blocks until the log has durably
	// accepted it. The event's ID and Timestamp fields are ignored on input;
	// the assigned values are returned in the Receipt.
	AppendEvent(ctx context.Context, ev Event) (Receipt, error)

	// QueryRange returns all events with ID in [fromID, toID] in ascending
	// chronological order. A toID of 0 means the current height.
	QueryRange(ctx context.Context, fromID, toID uint64) ([]Event, error)

	// QueryByEntity returns, in ascending chronological order, all events
	// sharing entityID with ID in [fromID, toID]. A toID of 0 means the
	// current height.
	QueryByEntity(ctx context.Context, entityID string, fromID, toID uint64) ([]Event, error)

	// SubscribeLive registers fn to be invoked once per appended event,
	// asynchronously, in append order. The returned handle cancels delivery.
	SubscribeLive(ctx context.Context, opts SubscribeOptions, fn func(Event)) (*LiveSubscription, error)

	// CurrentHeight returns the latest committed log position.
	CurrentHeight(ctx context.Context) (uint64, error)

	// CommitCursor durably records the last event delivered to a subscriber,
	// enabling resume after a restart. Lower commits are ignored.
	CommitCursor(ctx context.Context, subID string, id uint64) error
	// Cursor returns the committed position for a subscriber, if any.
	Cursor(ctx context.Context, subID string) (uint64, bool)
	// DeleteCursor removes a subscriber's committed position.
	DeleteCursor(ctx context.Context, subID string) error
}

// LiveSubscription is a cancellable handle to a live event feed.
type LiveSubscription struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Close stops delivery. It is safe to call multiple times; it does not wait
// for an in-flight callback to return.
func (s *LiveSubscription) Close() {
	s.cancel()
}

// Done is closed once the delivery loop has fully stopped.
func (s *LiveSubscription) Done() <-chan struct{} { return s.done }
