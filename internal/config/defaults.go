package config

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaults sets all default values
func setDefaults(v *viper.Viper) {
	// Protocol defaults: 5% fee, auctions from one minute to one week
	v.SetDefault("protocol.seed", 0)
	v.SetDefault("protocol.admin", "")
	v.SetDefault("protocol.fee_bps", 500)
	v.SetDefault("protocol.min_duration", 1)
	v.SetDefault("protocol.max_duration", 7*24*60)
	v.SetDefault("protocol.record_rent", 2_000_000)

	v.SetDefault("engine.skip_signature_verification", false)
	v.SetDefault("engine.standalone", true)

	v.SetDefault("database.backend", "pebble")
	v.SetDefault("database.path", "data/state")
	v.SetDefault("database.compression", "lz4")
	v.SetDefault("database.cache_size", 4096)

	v.SetDefault("history.backend", "sqlite")
	v.SetDefault("history.dsn", "data/history.db")
	v.SetDefault("history.max_open_conns", 0)
	v.SetDefault("history.timeout", 30*time.Second)
	v.SetDefault("history.max_retries", 3)
	v.SetDefault("history.retry_delay", 100*time.Millisecond)
	v.SetDefault("history.retry_max_delay", 5*time.Second)

	v.SetDefault("server.rpc_address", "127.0.0.1:5005")
	v.SetDefault("server.enable_websocket", true)
	v.SetDefault("server.enable_metrics", true)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.admin_signing", true)

	v.SetDefault("log.verbose", false)
	v.SetDefault("log.debug", false)
}
