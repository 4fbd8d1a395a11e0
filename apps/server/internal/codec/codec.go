package codec

import (
	"errors"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"holdem-session/card"
	"holdem-session/holdem"
	"holdem-session/protocol"
)

// SnapshotToState converts a game snapshot into the wire state seen by
// viewer. Only the viewer's own hand is included.
func SnapshotToState(snap holdem.Snapshot, viewer uuid.UUID) *protocol.GameState {
	return &protocol.GameState{
		Phase:       snap.Phase.String(),
		ButtonIndex: uint32(snap.ButtonIndex),
		TurnIndex:   uint32(snap.TurnIndex),
		SmallBlind:  snap.SmallBlind,
		BigBlind:    snap.BigBlind,
		Pot:         snap.Pot,
		MaxPlayers:  uint32(snap.MaxPlayers),
		Players: lo.Map(snap.Players, func(p holdem.PlayerSnapshot, _ int) protocol.PlayerState {
			ps := protocol.PlayerState{
				ID:         p.ID,
				Name:       p.Name,
				Chips:      p.Chips,
				Bet:        p.Bet,
				Folded:     p.Folded,
				SittingOut: p.SittingOut,
			}
			if viewer != uuid.Nil && p.ID == viewer {
				ps.Hand = []card.Card{p.Hand[0], p.Hand[1]}
			}
			return ps
		}),
	}
}

// StateMessage wraps SnapshotToState into a State message.
func StateMessage(sessionID string, seq uint64, snap holdem.Snapshot, viewer uuid.UUID) protocol.Message {
	return protocol.State(sessionID, seq, SnapshotToState(snap, viewer))
}

var errorCodes = []struct {
	err  error
	code protocol.ErrorCode
}{
	{holdem.ErrGameFull, protocol.CodeGameFull},
	{holdem.ErrPlayerNotFound, protocol.CodePlayerNotFound},
	{holdem.ErrInsufficientPlayers, protocol.CodeInsufficientPlayers},
	{holdem.ErrGameInProgress, protocol.CodeGameInProgress},
	{protocol.ErrFrameTooLarge, protocol.CodeBadRequest},
	{protocol.ErrEmptyFrame, protocol.CodeBadRequest},
	{protocol.ErrMissingType, protocol.CodeBadRequest},
}

// ErrorToCode maps an engine or protocol error to its wire code. Unknown
// errors map to CodeInternal.
func ErrorToCode(err error) (protocol.ErrorCode, string) {
	if err == nil {
		return protocol.CodeOK, ""
	}
	for _, e := range errorCodes {
		if errors.Is(err, e.err) {
			return e.code, err.Error()
		}
	}
	return protocol.CodeInternal, err.Error()
}

// ErrorMessage builds an Error message for err.
func ErrorMessage(err error) protocol.Message {
	return protocol.Error(ErrorToCode(err))
}
