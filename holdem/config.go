package holdem

import "fmt"

type Config struct {
	// Table
	MaxPlayers int
	MinPlayers int

	// Blinds
	SmallBlind uint64
	BigBlind   uint64

	// Chips handed to every new player.
	StartingStack uint64
}

// DefaultConfig is an eight-seat 1/2 table with 250-chip stacks.
func DefaultConfig() Config {
	return Config{
		MaxPlayers:    MaxPlayers,
		MinPlayers:    DefaultMinPlayers,
		SmallBlind:    DefaultSmallBlind,
		BigBlind:      DefaultBigBlind,
		StartingStack: DefaultStartingStack,
	}
}

func (c Config) Validate() error {
	if c.MaxPlayers < 2 || c.MaxPlayers > MaxPlayers {
		return fmt.Errorf("MaxPlayers must be in [2,%d], got %d", MaxPlayers, c.MaxPlayers)
	}
	if c.MinPlayers < 2 {
		return fmt.Errorf("MinPlayers must be >= 2, got %d", c.MinPlayers)
	}
	if c.MinPlayers > c.MaxPlayers {
		return fmt.Errorf("MinPlayers must be <= MaxPlayers")
	}
	if c.BigBlind == 0 || c.SmallBlind > c.BigBlind {
		return fmt.Errorf("invalid blinds: sb=%d bb=%d", c.SmallBlind, c.BigBlind)
	}
	if c.StartingStack == 0 {
		return fmt.Errorf("StartingStack must be > 0")
	}
	return nil
}
