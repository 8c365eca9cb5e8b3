package eventlog

import (
	"encoding/binary"
)

// CommitCursor stores the last delivered token for a subscriber idempotently.
// If the provided token is lower than the stored one, the commit is ignored.
func (l *Log) CommitCursor(subID string, tok Token) error {
	key := KeyCursor(l.addr, subID)
	cur, err := l.db.Get(key)
	if err == nil && len(cur) >= 8 {
		prev := binary.BigEndian.Uint64(cur[:8])
		if tok.Seq() <= prev {
			return nil
		}
	}
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], tok.Seq())
	return l.db.Set(key, b[:])
}

// GetCursor loads the current delivery cursor for a subscriber.
func (l *Log) GetCursor(subID string) (Token, bool) {
	cur, err := l.db.Get(KeyCursor(l.addr, subID))
	if err != nil || len(cur) < 8 {
		return Token{}, false
	}
	var t Token
	copy(t[:], cur[:8])
	return t, true
}

// DeleteCursor removes a subscriber's delivery cursor.
func (l *Log) DeleteCursor(subID string) error {
	return l.db.Delete(KeyCursor(l.addr, subID))
}
