// Package runtime wires storage, config, and the ledger registry into a
// single-node relay instance. It exposes Open/Close, basic health checks,
// and lazy ledger clients per event log address.
//
// Example:
//
//	cfg := config.Default()
//	rt, _ := runtime.Open(runtime.Options{DataDir: "./data", Fsync: pebblestore.FsyncModeAlways, Config: cfg})
//	defer rt.Close()
//	_ = rt.CheckHealth(context.Background())
//	lc, _ := rt.Ledger("0x2bca…")
//	_, _ = lc.AppendEvent(context.Background(), ledger.Event{EntityID: "urn:..."})
package runtime
