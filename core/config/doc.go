// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package loads a .env file from the working directory on first use and uses
// the caarlos0/env library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	type DemoConfig struct {
//		Producers   int    `env:"FANOUT_PRODUCERS" envDefault:"2"`
//		Subscribers int    `env:"FANOUT_SUBSCRIBERS" envDefault:"4"`
//		LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
//	}
//
//	var cfg DemoConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	// Or panic on failure (useful for startup)
//	config.MustLoad(&cfg)
//
// # Caching Behavior
//
// Each configuration type is loaded only once per process. Different types are
// cached independently, and changing the environment afterwards has no effect
// on an already loaded type.
package config
