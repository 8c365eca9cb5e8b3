package eventlog

import (
	"encoding/binary"

	"github.com/cockroachdb/pebble"
)

// Token encodes a read position as a sequence number (8 bytes big-endian).
type Token [8]byte

// TokenFromSeq builds a Token for the given sequence number.
func TokenFromSeq(seq uint64) Token {
	var t Token
	binary.BigEndian.PutUint64(t[:], seq)
	return t
}

// Seq returns the sequence number the token points at.
func (t Token) Seq() uint64 { return binary.BigEndian.Uint64(t[:]) }

// ReadOptions controls a bounded scan over the log.
type ReadOptions struct {
	Start   Token // if zero, begin from the first entry
	Limit   int
	Reverse bool
}

// Item is one decoded log entry.
type Item struct {
	Seq       uint64
	Timestamp int64
	Payload   []byte
}

// Read returns up to Limit items starting at Start (inclusive). Reverse scans
// descending. The second return value is the resume position for forward
// scans (zero when the log is exhausted).
func (l *Log) Read(opts ReadOptions) ([]Item, Token) {
	startSeq := opts.Start.Seq()
	startKey := KeyEntry(l.addr, startSeq)
	low := KeyEntry(l.addr, 0)
	hi := KeyEntry(l.addr, ^uint64(0))

	items := make([]Item, 0, minCap(opts.Limit))
	var next Token

	iter, err := l.db.NewIter(&pebble.IterOptions{LowerBound: low, UpperBound: append(hi, 0x00)})
	if err != nil {
		return items, next
	}
	defer iter.Close()

	if opts.Reverse {
		if startSeq == 0 {
			if !iter.Last() {
				return items, next
			}
		} else if !iter.SeekLT(startKey) {
			if !iter.Last() {
				return items, next
			}
		}
		for iter.Valid() && (opts.Limit == 0 || len(items) < opts.Limit) {
			seq := seqFromEntryKey(iter.Key())
			if dec, ok := DecodeRecord(iter.Value()); ok {
				items = append(items, Item{Seq: seq, Timestamp: dec.Timestamp, Payload: dec.Payload})
			}
			if !iter.Prev() {
				break
			}
		}
		return items, next
	}

	if startSeq == 0 {
		if !iter.First() {
			return items, next
		}
	} else if !iter.SeekGE(startKey) {
		return items, next
	}
	for iter.Valid() && (opts.Limit == 0 || len(items) < opts.Limit) {
		seq := seqFromEntryKey(iter.Key())
		if dec, ok := DecodeRecord(iter.Value()); ok {
			items = append(items, Item{Seq: seq, Timestamp: dec.Timestamp, Payload: dec.Payload})
		}
		if !iter.Next() {
			break
		}
	}
	if iter.Valid() {
		next = TokenFromSeq(seqFromEntryKey(iter.Key()))
	}
	return items, next
}

// ReadByEntity returns, in ascending sequence order, the decoded entries
// indexed under entityKey with sequence in [fromSeq, toSeq]. A toSeq of 0
// means no upper bound; a limit of 0 means no cap.
func (l *Log) ReadByEntity(entityKey string, fromSeq, toSeq uint64, limit int) ([]Item, error) {
	if toSeq == 0 {
		toSeq = ^uint64(0)
	}
	low := KeyEntityIndex(l.addr, entityKey, fromSeq)
	hi := KeyEntityIndex(l.addr, entityKey, toSeq)

	iter, err := l.db.NewIter(&pebble.IterOptions{LowerBound: low, UpperBound: append(hi, 0x00)})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	items := make([]Item, 0, minCap(limit))
	for ok := iter.First(); ok; ok = iter.Next() {
		seq := seqFromEntryKey(iter.Key())
		val, err := l.db.Get(KeyEntry(l.addr, seq))
		if err != nil {
			return nil, err
		}
		if dec, ok := DecodeRecord(val); ok {
			items = append(items, Item{Seq: seq, Timestamp: dec.Timestamp, Payload: dec.Payload})
		}
		if limit > 0 && len(items) >= limit {
			break
		}
	}
	return items, nil
}

// seqFromEntryKey extracts the trailing big-endian sequence from a key.
func seqFromEntryKey(k []byte) uint64 {
	if len(k) < 8 {
		return 0
	}
	return binary.BigEndian.Uint64(k[len(k)-8:])
}

func minCap(limit int) int {
	if limit > 0 && limit < 1024 {
		return limit
	}
	if limit == 0 {
		return 16
	}
	return 1024
}
