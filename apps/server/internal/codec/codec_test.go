package codec

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holdem-session/card"
	"holdem-session/holdem"
	"holdem-session/protocol"
)

func TestSnapshotToState_HidesOtherHands(t *testing.T) {
	g, alice, err := holdem.NewGameWithCreator(holdem.DefaultConfig(), "alice")
	require.NoError(t, err)
	bob, err := g.AddPlayer("bob")
	require.NoError(t, err)
	require.NoError(t, g.Start())

	state := SnapshotToState(g.Snapshot(), bob)
	assert.Equal(t, "preflop", state.Phase)
	assert.Equal(t, uint32(holdem.MaxPlayers), state.MaxPlayers)
	assert.Equal(t, holdem.DefaultBigBlind, state.BigBlind)
	require.Len(t, state.Players, 2)

	assert.Equal(t, alice, state.Players[0].ID)
	assert.Equal(t, "alice", state.Players[0].Name)
	assert.Empty(t, state.Players[0].Hand)

	assert.Equal(t, bob, state.Players[1].ID)
	assert.Equal(t, []card.Card{card.CardSpadeA, card.CardClubA}, state.Players[1].Hand)
	assert.Equal(t, holdem.DefaultStartingStack, state.Players[1].Chips)
	assert.True(t, state.Players[1].SittingOut)
}

func TestSnapshotToState_Spectator(t *testing.T) {
	g, _, err := holdem.NewGameWithCreator(holdem.DefaultConfig(), "alice")
	require.NoError(t, err)

	state := SnapshotToState(g.Snapshot(), uuid.Nil)
	require.Len(t, state.Players, 1)
	assert.Empty(t, state.Players[0].Hand)
	assert.Equal(t, "waiting", state.Phase)
}

func TestErrorToCode(t *testing.T) {
	cases := []struct {
		err  error
		code protocol.ErrorCode
	}{
		{holdem.ErrGameFull, protocol.CodeGameFull},
		{&holdem.LeaveGameError{Kind: holdem.PlayerNotFound, PlayerID: uuid.New()}, protocol.CodePlayerNotFound},
		{fmt.Errorf("start: %w", holdem.ErrInsufficientPlayers), protocol.CodeInsufficientPlayers},
		{holdem.ErrGameInProgress, protocol.CodeGameInProgress},
		{protocol.ErrMissingType, protocol.CodeBadRequest},
		{errors.New("boom"), protocol.CodeInternal},
	}
	for _, c := range cases {
		code, text := ErrorToCode(c.err)
		assert.Equal(t, c.code, code, c.err.Error())
		assert.Equal(t, c.err.Error(), text)
	}

	code, text := ErrorToCode(nil)
	assert.Equal(t, protocol.CodeOK, code)
	assert.Empty(t, text)
}

func TestErrorMessage(t *testing.T) {
	m := ErrorMessage(holdem.ErrGameFull)
	assert.Equal(t, protocol.TypeError, m.Type)
	assert.Equal(t, protocol.CodeGameFull, m.Code)
}
