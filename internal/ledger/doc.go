// Package ledger exposes the event-log contract the relay core consumes: an
// append-only, chronologically ordered log of DOME events with range and
// entity-indexed queries, a block-timestamp oracle, and live append
// notifications.
//
// The Client interface is the seam to the underlying distributed ledger. The embedded implementation persists blocks in Pebble via the
// internal eventlog and assigns non-decreasing block timestamps, which makes
// it suitable for development, tests, and single-node deployments. A remote
// RPC-backed client can implement the same interface without touching the
// core.
package ledger
