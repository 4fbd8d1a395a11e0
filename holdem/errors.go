package holdem

import (
	"fmt"

	"github.com/google/uuid"
)

// JoinGameErrorKind enumerates why a player could not join.
type JoinGameErrorKind byte

const (
	GameFull JoinGameErrorKind = iota + 1
)

func (k JoinGameErrorKind) String() string {
	switch k {
	case GameFull:
		return "game is full"
	}
	return fmt.Sprintf("join error %d", byte(k))
}

type JoinGameError struct {
	Kind JoinGameErrorKind
}

func (e *JoinGameError) Error() string { return "cannot join game: " + e.Kind.String() }

func (e *JoinGameError) Is(target error) bool {
	t, ok := target.(*JoinGameError)
	return ok && t.Kind == e.Kind
}

// LeaveGameErrorKind enumerates why a player could not be removed.
type LeaveGameErrorKind byte

const (
	PlayerNotFound LeaveGameErrorKind = iota + 1
)

func (k LeaveGameErrorKind) String() string {
	switch k {
	case PlayerNotFound:
		return "player not found"
	}
	return fmt.Sprintf("leave error %d", byte(k))
}

type LeaveGameError struct {
	Kind     LeaveGameErrorKind
	PlayerID uuid.UUID
}

func (e *LeaveGameError) Error() string {
	return fmt.Sprintf("cannot leave game: %s (%s)", e.Kind, e.PlayerID)
}

// Is matches on Kind only, so errors.Is(err, ErrPlayerNotFound) holds for any id.
func (e *LeaveGameError) Is(target error) bool {
	t, ok := target.(*LeaveGameError)
	return ok && t.Kind == e.Kind
}

// GameStartErrorKind enumerates why a game could not start.
type GameStartErrorKind byte

const (
	InsufficientPlayers GameStartErrorKind = iota + 1
	GameInProgress
)

func (k GameStartErrorKind) String() string {
	switch k {
	case InsufficientPlayers:
		return "insufficient players to start the game"
	case GameInProgress:
		return "game is already in progress"
	}
	return fmt.Sprintf("start error %d", byte(k))
}

type GameStartError struct {
	Kind GameStartErrorKind
}

func (e *GameStartError) Error() string { return "cannot start game: " + e.Kind.String() }

func (e *GameStartError) Is(target error) bool {
	t, ok := target.(*GameStartError)
	return ok && t.Kind == e.Kind
}

var (
	ErrGameFull            = &JoinGameError{Kind: GameFull}
	ErrPlayerNotFound      = &LeaveGameError{Kind: PlayerNotFound}
	ErrInsufficientPlayers = &GameStartError{Kind: InsufficientPlayers}
	ErrGameInProgress      = &GameStartError{Kind: GameInProgress}
)
