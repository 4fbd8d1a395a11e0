package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"holdem-session/holdem"
	"holdem-session/internal/logging"
)

const DefaultTCPAddr = "0.0.0.0:4444"

type Config struct {
	Server Server         `yaml:"server"`
	Game   Game           `yaml:"game"`
	Log    logging.Config `yaml:"log"`
}

type Server struct {
	TCPAddr string `yaml:"tcp_addr"`
	// WSAddr enables the HTTP listener serving /ws and /health when set.
	WSAddr string `yaml:"ws_addr"`
}

type Game struct {
	MaxPlayers    int    `yaml:"max_players"`
	MinPlayers    int    `yaml:"min_players"`
	SmallBlind    uint64 `yaml:"small_blind"`
	BigBlind      uint64 `yaml:"big_blind"`
	StartingStack uint64 `yaml:"starting_stack"`
}

func Default() *Config {
	g := holdem.DefaultConfig()
	return &Config{
		Server: Server{TCPAddr: DefaultTCPAddr},
		Game: Game{
			MaxPlayers:    g.MaxPlayers,
			MinPlayers:    g.MinPlayers,
			SmallBlind:    g.SmallBlind,
			BigBlind:      g.BigBlind,
			StartingStack: g.StartingStack,
		},
		Log: logging.DefaultConfig(),
	}
}

// Load reads path over the defaults, applies HOLDEM_* environment overrides
// and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyEnv() error {
	if v := env("HOLDEM_TCP_ADDR"); v != "" {
		c.Server.TCPAddr = v
	}
	if v := env("HOLDEM_WS_ADDR"); v != "" {
		c.Server.WSAddr = v
	}
	if v := env("HOLDEM_LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := env("HOLDEM_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := env("HOLDEM_MAX_PLAYERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("HOLDEM_MAX_PLAYERS: %w", err)
		}
		c.Game.MaxPlayers = n
	}
	return nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func (c *Config) Validate() error {
	if c.Server.TCPAddr == "" {
		return errors.New("server.tcp_addr is required")
	}
	if err := c.GameConfig().Validate(); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	return nil
}

func (c *Config) GameConfig() holdem.Config {
	return holdem.Config{
		MaxPlayers:    c.Game.MaxPlayers,
		MinPlayers:    c.Game.MinPlayers,
		SmallBlind:    c.Game.SmallBlind,
		BigBlind:      c.Game.BigBlind,
		StartingStack: c.Game.StartingStack,
	}
}
