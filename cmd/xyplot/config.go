package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// RendezvousConfig points at the run coordination server.
type RendezvousConfig struct {
	SyncAddr  string `yaml:"sync_addr"`  // start-token publisher
	AliveAddr string `yaml:"alive_addr"` // identity announcement endpoint
	Identity  string `yaml:"identity"`
}

// Config collects everything tunable from a YAML file. Flags override
// whatever the file sets.
type Config struct {
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`
	SPJS string `yaml:"spjs"` // websocket URL of a serial bridge, overrides Port

	ReadTimeoutMs  int `yaml:"read_timeout_ms"`
	WakeDelayMs    int `yaml:"wake_delay_ms"`
	PollIntervalMs int `yaml:"poll_interval_ms"`
	IdleTimeoutMs  int `yaml:"idle_timeout_ms"` // 0 waits forever

	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Margin float64 `yaml:"margin"`

	Pattern  string  `yaml:"pattern"`
	FeedRate float64 `yaml:"feed_rate"`
	DwellMs  int     `yaml:"dwell_ms"`
	NoWait   bool    `yaml:"no_wait"` // queue moves without idle confirmation

	Rendezvous RendezvousConfig `yaml:"rendezvous"`
}

func defaultConfig() Config {
	return Config{
		Port: "/dev/ttyUSB0",
		Baud: 115200,

		ReadTimeoutMs:  1000,
		WakeDelayMs:    2000,
		PollIntervalMs: 100,
		IdleTimeoutMs:  0,

		Width:  1250,
		Height: 1250,
		Margin: 10,

		FeedRate: 20,

		Rendezvous: RendezvousConfig{
			SyncAddr:  "tcp://192.108.0.1:5557",
			AliveAddr: "tcp://192.108.0.1:5558",
			Identity:  "ROVER",
		},
	}
}

// loadConfig overlays a YAML file, if given, onto the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func ms(v int) time.Duration { return time.Duration(v) * time.Millisecond }
