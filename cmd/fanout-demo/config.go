package main

import "fmt"

// Config is loaded from the environment (and .env, if present).
type Config struct {
	AppName     string `env:"APP_NAME" envDefault:"fanout-demo"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text"`
	Producers   int    `env:"FANOUT_PRODUCERS" envDefault:"2"`
	Subscribers int    `env:"FANOUT_SUBSCRIBERS" envDefault:"4"`
	Messages    int    `env:"FANOUT_MESSAGES" envDefault:"100"`
	// Every DropEvery-th subscriber closes its receiver after the first value. 0 disables.
	DropEvery int `env:"FANOUT_DROP_EVERY" envDefault:"3"`
}

func (c Config) validate() error {
	switch {
	case c.Producers < 1:
		return fmt.Errorf("FANOUT_PRODUCERS must be at least 1, got %d", c.Producers)
	case c.Subscribers < 0:
		return fmt.Errorf("FANOUT_SUBSCRIBERS must not be negative, got %d", c.Subscribers)
	case c.Messages < 0:
		return fmt.Errorf("FANOUT_MESSAGES must not be negative, got %d", c.Messages)
	case c.DropEvery < 0:
		return fmt.Errorf("FANOUT_DROP_EVERY must not be negative, got %d", c.DropEvery)
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}
