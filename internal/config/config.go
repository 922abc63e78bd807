package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

var ErrInvalidConfig = errors.New("invalid config")

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

type GameConfig struct {
	ClockSeconds        int `yaml:"clockSeconds"`
	MatchmakingInterval int `yaml:"matchmakingIntervalMs"`
}

type Config struct {
	Server   ServerConfig `yaml:"server"`
	Game     GameConfig   `yaml:"game"`
	LogLevel string       `yaml:"logLevel"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:           ":3000",
			AllowedOrigins: []string{"http://localhost:5173"},
		},
		Game: GameConfig{
			ClockSeconds:        600,
			MatchmakingInterval: 1000,
		},
		LogLevel: "info",
	}
}

// Load reads a YAML file over the defaults. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr is empty", ErrInvalidConfig)
	}
	if c.Game.ClockSeconds <= 0 {
		return fmt.Errorf("%w: game.clockSeconds must be positive", ErrInvalidConfig)
	}
	if c.Game.MatchmakingInterval <= 0 {
		return fmt.Errorf("%w: game.matchmakingIntervalMs must be positive", ErrInvalidConfig)
	}
	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown logLevel %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}

func (g GameConfig) Clock() time.Duration {
	return time.Duration(g.ClockSeconds) * time.Second
}

func (g GameConfig) Interval() time.Duration {
	return time.Duration(g.MatchmakingInterval) * time.Millisecond
}
