// Package config provides loading and environment overlay for relay
// configuration. It exposes a Default() baseline, JSON/YAML file loading,
// and a RELAY_* environment overlay.
//
// Example:
//
//	cfg := config.Default()
//	if fileCfg, err := config.Load("/etc/dome-relay.yaml"); err == nil {
//	    cfg = fileCfg
//	}
//	config.FromEnv(&cfg)
//	rt, _ := runtime.Open(runtime.Options{DataDir: "/var/lib/dome-relay", Fsync: pebblestore.FsyncModeAlways, Config: cfg})
//	defer rt.Close()
package config
