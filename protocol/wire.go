package protocol

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protowire"

	"holdem-session/card"
)

// Field numbers of the wire encoding. Numbers are never reused; decoders
// skip fields they do not know.
const (
	msgFieldType      protowire.Number = 1
	msgFieldSeq       protowire.Number = 2
	msgFieldSessionID protowire.Number = 3
	msgFieldPlayerID  protowire.Number = 4
	msgFieldName      protowire.Number = 5
	msgFieldCode      protowire.Number = 6
	msgFieldText      protowire.Number = 7
	msgFieldState     protowire.Number = 8

	stateFieldPhase      protowire.Number = 1
	stateFieldButton     protowire.Number = 2
	stateFieldTurn       protowire.Number = 3
	stateFieldSmallBlind protowire.Number = 4
	stateFieldBigBlind   protowire.Number = 5
	stateFieldPot        protowire.Number = 6
	stateFieldMaxPlayers protowire.Number = 7
	stateFieldPlayer     protowire.Number = 8

	playerFieldID         protowire.Number = 1
	playerFieldName       protowire.Number = 2
	playerFieldChips      protowire.Number = 3
	playerFieldBet        protowire.Number = 4
	playerFieldFolded     protowire.Number = 5
	playerFieldSittingOut protowire.Number = 6
	playerFieldHand       protowire.Number = 7
)

var ErrMissingType = errors.New("missing message type")

// skipField tells decodeFields to skip the current field.
const skipField = math.MinInt

// Marshal encodes m into a frame body.
func Marshal(m Message) ([]byte, error) {
	b := make([]byte, 0, 64)
	b = appendVarintField(b, msgFieldType, uint64(m.Type))
	b = appendVarintField(b, msgFieldSeq, m.Seq)
	b = appendStringField(b, msgFieldSessionID, m.SessionID)
	if m.PlayerID != uuid.Nil {
		b = protowire.AppendTag(b, msgFieldPlayerID, protowire.BytesType)
		b = protowire.AppendBytes(b, m.PlayerID[:])
	}
	b = appendStringField(b, msgFieldName, m.Name)
	b = appendVarintField(b, msgFieldCode, uint64(m.Code))
	b = appendStringField(b, msgFieldText, m.Text)
	if m.State != nil {
		b = protowire.AppendTag(b, msgFieldState, protowire.BytesType)
		b = protowire.AppendBytes(b, marshalState(m.State))
	}
	if len(b) > MaxFrameSize {
		return nil, fmt.Errorf("%w: %s message encodes to %d bytes", ErrFrameTooLarge, m.Type, len(b))
	}
	return b, nil
}

func marshalState(s *GameState) []byte {
	b := make([]byte, 0, 32+len(s.Players)*48)
	b = appendStringField(b, stateFieldPhase, s.Phase)
	b = appendVarintField(b, stateFieldButton, uint64(s.ButtonIndex))
	b = appendVarintField(b, stateFieldTurn, uint64(s.TurnIndex))
	b = appendVarintField(b, stateFieldSmallBlind, s.SmallBlind)
	b = appendVarintField(b, stateFieldBigBlind, s.BigBlind)
	b = appendVarintField(b, stateFieldPot, s.Pot)
	b = appendVarintField(b, stateFieldMaxPlayers, uint64(s.MaxPlayers))
	for i := range s.Players {
		b = protowire.AppendTag(b, stateFieldPlayer, protowire.BytesType)
		b = protowire.AppendBytes(b, marshalPlayer(&s.Players[i]))
	}
	return b
}

func marshalPlayer(p *PlayerState) []byte {
	b := make([]byte, 0, 48)
	b = protowire.AppendTag(b, playerFieldID, protowire.BytesType)
	b = protowire.AppendBytes(b, p.ID[:])
	b = appendStringField(b, playerFieldName, p.Name)
	b = appendVarintField(b, playerFieldChips, p.Chips)
	b = appendVarintField(b, playerFieldBet, p.Bet)
	b = appendVarintField(b, playerFieldFolded, protowire.EncodeBool(p.Folded))
	b = appendVarintField(b, playerFieldSittingOut, protowire.EncodeBool(p.SittingOut))
	if len(p.Hand) > 0 {
		b = protowire.AppendTag(b, playerFieldHand, protowire.BytesType)
		b = protowire.AppendBytes(b, card.Cards2bytes(p.Hand))
	}
	return b
}

// Zero values are omitted, as in proto3.
func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendStringField(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

// Unmarshal decodes a frame body produced by Marshal.
func Unmarshal(b []byte) (Message, error) {
	var m Message
	err := decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == msgFieldType && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			m.Type = MessageType(v)
			return n, nil
		case num == msgFieldSeq && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			m.Seq = v
			return n, nil
		case num == msgFieldSessionID && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			m.SessionID = v
			return n, nil
		case num == msgFieldPlayerID && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			id, err := uuid.FromBytes(v)
			if err != nil {
				return 0, fmt.Errorf("player id: %w", err)
			}
			m.PlayerID = id
			return n, nil
		case num == msgFieldName && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			m.Name = v
			return n, nil
		case num == msgFieldCode && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			m.Code = ErrorCode(v)
			return n, nil
		case num == msgFieldText && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			m.Text = v
			return n, nil
		case num == msgFieldState && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			state, err := unmarshalState(v)
			if err != nil {
				return 0, fmt.Errorf("state: %w", err)
			}
			m.State = state
			return n, nil
		}
		return skipField, nil
	})
	if err != nil {
		return Message{}, err
	}
	if m.Type == TypeUnknown {
		return Message{}, ErrMissingType
	}
	return m, nil
}

func unmarshalState(b []byte) (*GameState, error) {
	s := &GameState{}
	err := decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if typ == protowire.BytesType {
			switch num {
			case stateFieldPhase:
				v, n := protowire.ConsumeString(b)
				s.Phase = v
				return n, nil
			case stateFieldPlayer:
				v, n := protowire.ConsumeBytes(b)
				if n < 0 {
					return n, nil
				}
				p, err := unmarshalPlayer(v)
				if err != nil {
					return 0, fmt.Errorf("player %d: %w", len(s.Players), err)
				}
				s.Players = append(s.Players, p)
				return n, nil
			}
			return skipField, nil
		}
		if typ != protowire.VarintType {
			return skipField, nil
		}
		v, n := protowire.ConsumeVarint(b)
		switch num {
		case stateFieldButton:
			s.ButtonIndex = uint32(v)
		case stateFieldTurn:
			s.TurnIndex = uint32(v)
		case stateFieldSmallBlind:
			s.SmallBlind = v
		case stateFieldBigBlind:
			s.BigBlind = v
		case stateFieldPot:
			s.Pot = v
		case stateFieldMaxPlayers:
			s.MaxPlayers = uint32(v)
		default:
			return skipField, nil
		}
		return n, nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func unmarshalPlayer(b []byte) (PlayerState, error) {
	var p PlayerState
	err := decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if typ == protowire.BytesType {
			switch num {
			case playerFieldID:
				v, n := protowire.ConsumeBytes(b)
				if n < 0 {
					return n, nil
				}
				id, err := uuid.FromBytes(v)
				if err != nil {
					return 0, fmt.Errorf("id: %w", err)
				}
				p.ID = id
				return n, nil
			case playerFieldName:
				v, n := protowire.ConsumeString(b)
				p.Name = v
				return n, nil
			case playerFieldHand:
				v, n := protowire.ConsumeBytes(b)
				if n < 0 {
					return n, nil
				}
				p.Hand = card.Bytes2cards(v)
				return n, nil
			}
			return skipField, nil
		}
		if typ != protowire.VarintType {
			return skipField, nil
		}
		v, n := protowire.ConsumeVarint(b)
		switch num {
		case playerFieldChips:
			p.Chips = v
		case playerFieldBet:
			p.Bet = v
		case playerFieldFolded:
			p.Folded = protowire.DecodeBool(v)
		case playerFieldSittingOut:
			p.SittingOut = protowire.DecodeBool(v)
		default:
			return skipField, nil
		}
		return n, nil
	})
	return p, err
}

// decodeFields walks the fields of b, handing each value to fn. fn returns
// the bytes it consumed (negative for a protowire parse error) or skipField.
func decodeFields(b []byte, fn func(num protowire.Number, typ protowire.Type, b []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		m, err := fn(num, typ, b)
		if err != nil {
			return err
		}
		if m == skipField {
			m = protowire.ConsumeFieldValue(num, typ, b)
		}
		if m < 0 {
			return protowire.ParseError(m)
		}
		b = b[m:]
	}
	return nil
}
