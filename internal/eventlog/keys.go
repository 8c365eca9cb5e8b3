package eventlog

import (
	"encoding/binary"
)

// Keyspace helpers for Pebble keys.
//
// Layout (byte-wise, lexicographically sortable):
// - dl/{addr}/m
// - dl/{addr}/e/{seq_be8}
// - dl/{addr}/x/{entity}/{seq_be8}
// - dl/{addr}/c/{subID}

var (
	sep        = byte('/')
	dlPrefix   = []byte("dl/")
	metaSuffix = []byte("/m")
	entrySeg   = []byte("/e/")
	entitySeg  = []byte("/x/")
	cursorSeg  = []byte("/c/")
)

func appendBE8(dst []byte, v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return append(dst, b[:]...)
}

// KeyMeta builds the log metadata key.
func KeyMeta(addr string) []byte {
	k := make([]byte, 0, len(addr)+8)
	k = append(k, dlPrefix...)
	k = append(k, addr...)
	k = append(k, metaSuffix...)
	return k
}

// KeyEntry builds the entry key with a big-endian sequence for ordering.
func KeyEntry(addr string, seq uint64) []byte {
	k := make([]byte, 0, len(addr)+16)
	k = append(k, dlPrefix...)
	k = append(k, addr...)
	k = append(k, entrySeg...)
	k = appendBE8(k, seq)
	return k
}

// KeyEntryPrefix returns the range prefix covering all entries of a log.
func KeyEntryPrefix(addr string) []byte {
	k := make([]byte, 0, len(addr)+8)
	k = append(k, dlPrefix...)
	k = append(k, addr...)
	k = append(k, entrySeg...)
	return k
}

// KeyEntityIndex builds the entity index key linking an entity to an entry.
func KeyEntityIndex(addr, entity string, seq uint64) []byte {
	k := make([]byte, 0, len(addr)+len(entity)+20)
	k = append(k, dlPrefix...)
	k = append(k, addr...)
	k = append(k, entitySeg...)
	k = append(k, entity...)
	k = append(k, sep)
	k = appendBE8(k, seq)
	return k
}

// KeyEntityIndexPrefix returns the range prefix covering one entity's index.
func KeyEntityIndexPrefix(addr, entity string) []byte {
	k := make([]byte, 0, len(addr)+len(entity)+12)
	k = append(k, dlPrefix...)
	k = append(k, addr...)
	k = append(k, entitySeg...)
	k = append(k, entity...)
	k = append(k, sep)
	return k
}

// KeyCursor builds the durable delivery cursor key for a subscriber.
func KeyCursor(addr, subID string) []byte {
	k := make([]byte, 0, len(addr)+len(subID)+12)
	k = append(k, dlPrefix...)
	k = append(k, addr...)
	k = append(k, cursorSeg...)
	k = append(k, subID...)
	return k
}
