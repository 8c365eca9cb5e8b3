// Package eventlog implements the append-only block log backing the embedded
// ledger. Each log is scoped to one contract address and persisted in Pebble.
//
// # Keyspace
//
// Keys are lexicographically ordered for efficient range scans:
//   - dl/{addr}/m                      (log metadata: lastSeq, lastTimestamp)
//   - dl/{addr}/e/{seq_be8}            (entries)
//   - dl/{addr}/x/{entity}/{seq_be8}   (entity index, empty values)
//   - dl/{addr}/c/{subID}              (per-subscriber delivery cursors)
//
// Records are framed as: varint headerLen | header (8-byte BE seconds
// timestamp) | payload | crc32c(header|payload). Sequence numbers start at 1 and grow
// monotonically; timestamps are non-decreasing in sequence order, which the
// ledger layer enforces when assigning block times.
//
// API surface (internal)
//
//	l, _ := OpenLog(db, addr)
//	seqs, _ := l.Append(ctx, []AppendRecord{{Timestamp: ts, EntityKey: h, Payload: p}})
//	items, next := l.Read(ReadOptions{Start: TokenFromSeq(seqs[0]), Limit: 100})
//	hist, _ := l.ReadByEntity(h, 0, 0, 0)
//	woke := l.WaitForAppend(200 * time.Millisecond)
//	_ = l.CommitCursor(subID, TokenFromSeq(seqs[0]))
package eventlog
