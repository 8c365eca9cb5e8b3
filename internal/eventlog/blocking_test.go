package eventlog

import (
	"context"
	"testing"
	"time"
)

func TestWaitForAppendWakes(t *testing.T) {
	l := newTestLog(t)

	woke := make(chan bool, 1)
	go func() { woke <- l.WaitForAppend(2 * time.Second) }()

	// Give the waiter a moment to park on the notify channel.
	time.Sleep(20 * time.Millisecond)
	if _, err := l.Append(context.Background(), []AppendRecord{{Timestamp: 100, Payload: []byte("x")}}); err != nil {
		t.Fatalf("append: %v", err)
	}
	select {
	case ok := <-woke:
		if !ok {
			t.Fatalf("waiter timed out despite append")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("waiter never woke")
	}
}
