// Package pebblestore wraps Pebble for the relay's durable state: the
// embedded ledger's block log, entity indexes, subscription records, and
// delivery cursors. It centralizes fsync policy so callers never decide
// durability per write.
package pebblestore
