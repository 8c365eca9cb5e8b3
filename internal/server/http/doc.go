// Package httpserver exposes the relay's HTTP API: event publishing,
// active-event queries, subscription management, and a diagnostic SSE tail.
//
// Example:
//
//	rt, _ := runtime.Open(runtime.Options{DataDir: "./data", Fsync: pebblestore.FsyncModeAlways, Config: config.Default()})
//	defer rt.Close()
//	srv := httpserver.New(rt, nil)
//	_ = srv.ListenAndServe(ctx, ":8080")
package httpserver
