// Package config provides type-safe environment variable loading with caching
// using Go generics-free reflection. Each configuration type is loaded once
// and cached for subsequent calls.
//
// The package automatically loads .env files on first use and uses the
// caarlos0/env library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	import "github.com/dmitrymomot/engagement/core/config"
//
//	type TrackerConfig struct {
//		InactivityTimeout time.Duration `env:"TRACKER_INACTIVITY_TIMEOUT" envDefault:"5m"`
//		WriteTimeout      time.Duration `env:"TRACKER_WRITE_TIMEOUT" envDefault:"10s"`
//	}
//
//	func main() {
//		var cfg TrackerConfig
//
//		// Load with error handling
//		if err := config.Load(&cfg); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure (useful for startup)
//		config.MustLoad(&cfg)
//	}
//
// # Caching Behavior
//
// Each configuration type is loaded only once per application lifetime:
//
//	var cfg1 TrackerConfig
//	config.Load(&cfg1) // Loads from environment
//
//	var cfg2 TrackerConfig
//	config.Load(&cfg2) // Returns cached value, cfg1 == cfg2
//
// Different types are cached independently.
package config
