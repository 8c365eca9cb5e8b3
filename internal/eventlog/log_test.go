package eventlog

import (
	"context"
	"testing"

	pebblestore "github.com/alastria/dome-relay/internal/storage/pebble"
)

const testAddr = "0x2bcab3e30d0eccd4728b48b80c92ff4e9430b3ee"

func newTestLog(t *testing.T) *Log {
	t.Helper()
	db, err := pebblestore.Open(pebblestore.Options{DataDir: t.TempDir(), Fsync: pebblestore.FsyncModeAlways})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	l, err := OpenLog(db, testAddr)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	return l
}

func TestAppendAssignsSequences(t *testing.T) {
	l := newTestLog(t)
	seqs, err := l.Append(context.Background(), []AppendRecord{
		{Timestamp: 100, EntityKey: "e1", Payload: []byte("a")},
		{Timestamp: 100, EntityKey: "e1", Payload: []byte("b")},
		{Timestamp: 101, EntityKey: "e2", Payload: []byte("c")},
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if len(seqs) != 3 || seqs[0] != 1 || seqs[2] != 3 {
		t.Fatalf("unexpected seqs: %v", seqs)
	}
	if l.LastSeq() != 3 {
		t.Fatalf("lastSeq: want 3 got %d", l.LastSeq())
	}
	if l.LastTimestamp() != 101 {
		t.Fatalf("lastTs: want 101 got %d", l.LastTimestamp())
	}
}

func TestAppendRejectsTimestampRegression(t *testing.T) {
	l := newTestLog(t)
	if _, err := l.Append(context.Background(), []AppendRecord{{Timestamp: 200, Payload: []byte("x")}}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := l.Append(context.Background(), []AppendRecord{{Timestamp: 199, Payload: []byte("y")}}); err == nil {
		t.Fatalf("expected regression error")
	}
}

func TestReadForwardAndReverse(t *testing.T) {
	l := newTestLog(t)
	for i := 0; i < 5; i++ {
		if _, err := l.Append(context.Background(), []AppendRecord{{Timestamp: int64(100 + i), Payload: []byte{byte(i)}}}); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	items, _ := l.Read(ReadOptions{Limit: 10})
	if len(items) != 5 {
		t.Fatalf("want 5 items, got %d", len(items))
	}
	for i, it := range items {
		if it.Seq != uint64(i+1) || it.Timestamp != int64(100+i) {
			t.Fatalf("item %d out of order: %+v", i, it)
		}
	}
	rev, _ := l.Read(ReadOptions{Reverse: true, Limit: 2})
	if len(rev) != 2 || rev[0].Seq != 5 || rev[1].Seq != 4 {
		t.Fatalf("reverse read wrong: %+v", rev)
	}
	// resume from token
	mid, next := l.Read(ReadOptions{Start: TokenFromSeq(3), Limit: 1})
	if len(mid) != 1 || mid[0].Seq != 3 {
		t.Fatalf("token read wrong: %+v", mid)
	}
	if next.Seq() != 4 {
		t.Fatalf("resume token: want 4 got %d", next.Seq())
	}
}

func TestReadByEntity(t *testing.T) {
	l := newTestLog(t)
	recs := []AppendRecord{
		{Timestamp: 100, EntityKey: "e1", Payload: []byte("a")},
		{Timestamp: 110, EntityKey: "e2", Payload: []byte("b")},
		{Timestamp: 120, EntityKey: "e1", Payload: []byte("c")},
		{Timestamp: 130, EntityKey: "e1", Payload: []byte("d")},
	}
	if _, err := l.Append(context.Background(), recs); err != nil {
		t.Fatalf("append: %v", err)
	}
	hist, err := l.ReadByEntity("e1", 0, 0, 0)
	if err != nil {
		t.Fatalf("read by entity: %v", err)
	}
	if len(hist) != 3 {
		t.Fatalf("want 3 entries for e1, got %d", len(hist))
	}
	if hist[0].Seq != 1 || hist[1].Seq != 3 || hist[2].Seq != 4 {
		t.Fatalf("entity history out of order: %+v", hist)
	}
	// bounded by sequence range
	part, err := l.ReadByEntity("e1", 2, 3, 0)
	if err != nil {
		t.Fatalf("read by entity bounded: %v", err)
	}
	if len(part) != 1 || part[0].Seq != 3 {
		t.Fatalf("bounded history wrong: %+v", part)
	}
}

func TestReopenLoadsMeta(t *testing.T) {
	db, err := pebblestore.Open(pebblestore.Options{DataDir: t.TempDir(), Fsync: pebblestore.FsyncModeAlways})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	l, err := OpenLog(db, testAddr)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	if _, err := l.Append(context.Background(), []AppendRecord{{Timestamp: 500, Payload: []byte("z")}}); err != nil {
		t.Fatalf("append: %v", err)
	}
	l2, err := OpenLog(db, testAddr)
	if err != nil {
		t.Fatalf("reopen log: %v", err)
	}
	if l2.LastSeq() != 1 || l2.LastTimestamp() != 500 {
		t.Fatalf("meta not loaded: seq=%d ts=%d", l2.LastSeq(), l2.LastTimestamp())
	}
}
