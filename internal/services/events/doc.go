// Package eventsvc implements the relay's event operations on top of the
// ledger: the publish pipeline, active-event resolution over a date window,
// and filtered delivery of live events to webhook and in-process subscribers.
//
// An event is "active" for its entity when it is the most recent one whose
// block timestamp falls inside the requested window; ties on the same block
// timestamp resolve to the higher event ID. Subscriptions match on event
// type, optional metadata tags, self-exclusion by publisher DID, and an
// optional CEL expression, and deliver asynchronously with per-endpoint
// pacing. A per-subscription cursor makes delivery resumable across
// restarts.
package eventsvc
