package ledger

import (
	"context"
	"testing"
	"time"

	pebblestore "github.com/alastria/dome-relay/internal/storage/pebble"
)

const testAddr = "0x2bcab1bbb3b29c9a1a63b1bc5cbc1ab73a4bb1ba"

func newTestClient(t *testing.T) *Embedded {
	t.Helper()
	db, err := pebblestore.Open(pebblestore.Options{
		DataDir: t.TempDir(),
		Fsync:   pebblestore.FsyncModeNever,
	})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	c, err := OpenEmbedded(db, testAddr)
	if err != nil {
		t.Fatalf("open embedded ledger: %v", err)
	}
	return c
}

func sampleEvent(entity string) Event {
	return Event{
		PublisherAddress: "did:elsi:VATES-A12345678",
		EntityID:         entity,
		EventType:        "ProductOffering",
		DataLocation:     "https://example.org/catalog/" + entity,
		RelevantMetadata: []string{"sbx"},
	}
}

func TestAppendAssignsIDAndTimestamp(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	before := time.Now().Unix()
	rc, err := c.AppendEvent(ctx, sampleEvent("e1"))
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if rc.ID != 1 {
		t.Fatalf("first receipt id = %d, want 1", rc.ID)
	}
	if rc.Timestamp < before {
		t.Fatalf("timestamp %d earlier than append time %d", rc.Timestamp, before)
	}

	rc2, err := c.AppendEvent(ctx, sampleEvent("e2"))
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if rc2.ID != 2 {
		t.Fatalf("second receipt id = %d, want 2", rc2.ID)
	}
	if rc2.Timestamp < rc.Timestamp {
		t.Fatalf("timestamps regressed: %d then %d", rc.Timestamp, rc2.Timestamp)
	}
}

func TestTimestampsNeverDecrease(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	c.SetNowFunc(func() int64 { return 5000 })
	rc1, err := c.AppendEvent(ctx, sampleEvent("e1"))
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	// Clock steps backwards; the ledger pins to the last timestamp.
	c.SetNowFunc(func() int64 { return 4000 })
	rc2, err := c.AppendEvent(ctx, sampleEvent("e2"))
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if rc2.Timestamp != rc1.Timestamp {
		t.Fatalf("timestamp = %d, want pinned %d", rc2.Timestamp, rc1.Timestamp)
	}
}

func TestQueryRange(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	for _, e := range []string{"a", "b", "c", "d"} {
		if _, err := c.AppendEvent(ctx, sampleEvent(e)); err != nil {
			t.Fatalf("append %s: %v", e, err)
		}
	}

	got, err := c.QueryRange(ctx, 2, 3)
	if err != nil {
		t.Fatalf("query range: %v", err)
	}
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 3 {
		t.Fatalf("range [2,3] returned %+v", got)
	}
	if got[0].EntityID != "b" || got[1].EntityID != "c" {
		t.Fatalf("range [2,3] entities = %q, %q", got[0].EntityID, got[1].EntityID)
	}

	// toID 0 means current height.
	all, err := c.QueryRange(ctx, 0, 0)
	if err != nil {
		t.Fatalf("query all: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("full range returned %d events, want 4", len(all))
	}

	empty, err := c.QueryRange(ctx, 4, 2)
	if err != nil {
		t.Fatalf("inverted range: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("inverted range returned %d events", len(empty))
	}
}

func TestQueryByEntity(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	for _, e := range []string{"x", "y", "x", "z", "x"} {
		if _, err := c.AppendEvent(ctx, sampleEvent(e)); err != nil {
			t.Fatalf("append %s: %v", e, err)
		}
	}

	got, err := c.QueryByEntity(ctx, "x", 0, 0)
	if err != nil {
		t.Fatalf("query by entity: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("entity x has %d events, want 3", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 3 || got[2].ID != 5 {
		t.Fatalf("entity x ids = %d,%d,%d", got[0].ID, got[1].ID, got[2].ID)
	}

	bounded, err := c.QueryByEntity(ctx, "x", 2, 4)
	if err != nil {
		t.Fatalf("bounded query: %v", err)
	}
	if len(bounded) != 1 || bounded[0].ID != 3 {
		t.Fatalf("bounded entity query returned %+v", bounded)
	}
}

func TestCurrentHeight(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	h, err := c.CurrentHeight(ctx)
	if err != nil || h != 0 {
		t.Fatalf("empty height = %d, %v", h, err)
	}
	c.AppendEvent(ctx, sampleEvent("e"))
	c.AppendEvent(ctx, sampleEvent("e"))
	if h, _ = c.CurrentHeight(ctx); h != 2 {
		t.Fatalf("height = %d, want 2", h)
	}
}

func TestSubscribeLiveNoReplay(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	// Pre-existing events must not be replayed to a fresh subscriber.
	c.AppendEvent(ctx, sampleEvent("old"))

	got := make(chan Event, 4)
	sub, err := c.SubscribeLive(ctx, SubscribeOptions{}, func(ev Event) { got <- ev })
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer sub.Close()

	rc, err := c.AppendEvent(ctx, sampleEvent("fresh"))
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	select {
	case ev := <-got:
		if ev.ID != rc.ID || ev.EntityID != "fresh" {
			t.Fatalf("delivered event %+v, want id %d entity fresh", ev, rc.ID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for live event")
	}

	select {
	case ev := <-got:
		t.Fatalf("unexpected extra delivery: %+v", ev)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSubscribeLiveFromID(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	for _, e := range []string{"a", "b", "c"} {
		c.AppendEvent(ctx, sampleEvent(e))
	}

	got := make(chan Event, 8)
	sub, err := c.SubscribeLive(ctx, SubscribeOptions{FromID: 2}, func(ev Event) { got <- ev })
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer sub.Close()

	var ids []uint64
	for len(ids) < 2 {
		select {
		case ev := <-got:
			ids = append(ids, ev.ID)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out, got ids %v", ids)
		}
	}
	if ids[0] != 2 || ids[1] != 3 {
		t.Fatalf("replayed ids = %v, want [2 3]", ids)
	}
}

func TestSubscribeLiveClose(t *testing.T) {
	c := newTestClient(t)
	sub, err := c.SubscribeLive(context.Background(), SubscribeOptions{}, func(Event) {})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	sub.Close()
	select {
	case <-sub.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("subscription did not stop after Close")
	}
}

func TestCursorLifecycle(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	if _, ok := c.Cursor(ctx, "sub-1"); ok {
		t.Fatal("cursor present before commit")
	}
	if err := c.CommitCursor(ctx, "sub-1", 7); err != nil {
		t.Fatalf("commit: %v", err)
	}
	id, ok := c.Cursor(ctx, "sub-1")
	if !ok || id != 7 {
		t.Fatalf("cursor = %d, %v, want 7, true", id, ok)
	}
	if err := c.DeleteCursor(ctx, "sub-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := c.Cursor(ctx, "sub-1"); ok {
		t.Fatal("cursor present after delete")
	}
}

func TestRegistryReusesClients(t *testing.T) {
	db, err := pebblestore.Open(pebblestore.Options{
		DataDir: t.TempDir(),
		Fsync:   pebblestore.FsyncModeNever,
	})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	reg := NewRegistry(db)
	a, err := reg.Client(testAddr)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	b, err := reg.Client(testAddr)
	if err != nil {
		t.Fatalf("client again: %v", err)
	}
	if a != b {
		t.Fatal("registry returned distinct clients for the same address")
	}
	if _, err := reg.Client("0xother"); err != nil {
		t.Fatalf("second address: %v", err)
	}
	addrs := reg.Addresses()
	if len(addrs) != 2 {
		t.Fatalf("addresses = %v", addrs)
	}
}
