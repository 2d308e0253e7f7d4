package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ServerURL  string `yaml:"server_url"`
	PlayerName string `yaml:"player_name"`

	// PixelScale converts server cells to client world units.
	PixelScale int `yaml:"pixel_scale"`

	// PollIntervalMs throttles the receiver loop (~60 Hz at 16).
	PollIntervalMs int `yaml:"poll_interval_ms"`
	TickRateHz     int `yaml:"tick_rate_hz"`

	// Screen dimensions drive the viewport streaming radius.
	ScreenW int `yaml:"screen_w"`
	ScreenH int `yaml:"screen_h"`

	ChatLogCap int `yaml:"chat_log_cap"`

	// TraceDir enables the zstd wire trace when non-empty.
	TraceDir string `yaml:"trace_dir"`
	// SessionDB enables the local sqlite session index when non-empty.
	SessionDB string `yaml:"session_db"`
}

func defaults() Config {
	return Config{
		ServerURL:      "ws://localhost:8475/v1/ws",
		PlayerName:     "player",
		PixelScale:     25,
		PollIntervalMs: 16,
		TickRateHz:     50,
		ScreenW:        1920,
		ScreenH:        1080,
		ChatLogCap:     50,
	}
}

// Load reads the client config, falling back to defaults when path is empty.
func Load(path string) (Config, error) {
	cfg := defaults()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("client.yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("client.yaml: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("server_url is required")
	}
	if c.PixelScale <= 0 {
		return fmt.Errorf("pixel_scale must be positive")
	}
	if c.PollIntervalMs <= 0 {
		return fmt.Errorf("poll_interval_ms must be positive")
	}
	if c.TickRateHz <= 0 {
		return fmt.Errorf("tick_rate_hz must be positive")
	}
	if c.ScreenW <= 0 || c.ScreenH <= 0 {
		return fmt.Errorf("screen dimensions must be positive")
	}
	if c.ChatLogCap <= 0 {
		return fmt.Errorf("chat_log_cap must be positive")
	}
	return nil
}
