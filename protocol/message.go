package protocol

import (
	"fmt"

	"github.com/google/uuid"

	"holdem-session/card"
)

// MaxNameLen bounds a display name in bytes so a full table's state always
// fits in one frame.
const MaxNameLen = 32

// MessageType 消息类型
type MessageType uint8

const (
	TypeUnknown MessageType = iota

	// client -> server
	TypeJoin
	TypeLeave
	TypeStart
	TypePing

	// server -> client
	TypeWelcome
	TypeState
	TypeError
	TypePong
	TypeLeft
)

var MessageTypeDictionary = map[MessageType]string{
	TypeUnknown: "UNKNOWN",
	TypeJoin:    "JOIN",
	TypeLeave:   "LEAVE",
	TypeStart:   "START",
	TypePing:    "PING",
	TypeWelcome: "WELCOME",
	TypeState:   "STATE",
	TypeError:   "ERROR",
	TypePong:    "PONG",
	TypeLeft:    "LEFT",
}

func (t MessageType) String() string {
	if s, ok := MessageTypeDictionary[t]; ok {
		return s
	}
	return fmt.Sprintf("TYPE(%d)", uint8(t))
}

// ErrorCode is the machine-readable reason carried by an Error message.
type ErrorCode uint16

const (
	CodeOK ErrorCode = iota
	CodeGameFull
	CodePlayerNotFound
	CodeInsufficientPlayers
	CodeGameInProgress
	CodeBadRequest
	CodeNotJoined
	CodeAlreadyJoined
	CodeSessionNotFound
	CodeInternal
)

var ErrorCodeDictionary = map[ErrorCode]string{
	CodeOK:                  "OK",
	CodeGameFull:            "GAME_FULL",
	CodePlayerNotFound:      "PLAYER_NOT_FOUND",
	CodeInsufficientPlayers: "INSUFFICIENT_PLAYERS",
	CodeGameInProgress:      "GAME_IN_PROGRESS",
	CodeBadRequest:          "BAD_REQUEST",
	CodeNotJoined:           "NOT_JOINED",
	CodeAlreadyJoined:       "ALREADY_JOINED",
	CodeSessionNotFound:     "SESSION_NOT_FOUND",
	CodeInternal:            "INTERNAL",
}

func (c ErrorCode) String() string {
	if s, ok := ErrorCodeDictionary[c]; ok {
		return s
	}
	return fmt.Sprintf("CODE(%d)", uint16(c))
}

// Message is the single envelope for both directions. Which fields are set
// depends on Type.
type Message struct {
	Type      MessageType
	Seq       uint64
	SessionID string
	PlayerID  uuid.UUID
	Name      string
	Code      ErrorCode
	Text      string
	State     *GameState
}

type GameState struct {
	Phase       string
	ButtonIndex uint32
	TurnIndex   uint32
	SmallBlind  uint64
	BigBlind    uint64
	Pot         uint64
	MaxPlayers  uint32
	Players     []PlayerState
}

type PlayerState struct {
	ID         uuid.UUID
	Name       string
	Chips      uint64
	Bet        uint64
	Folded     bool
	SittingOut bool

	// Hand is only filled in for the receiving player's own seat.
	Hand []card.Card
}

func Join(name, sessionID string) Message {
	return Message{Type: TypeJoin, Name: name, SessionID: sessionID}
}

func Leave() Message { return Message{Type: TypeLeave} }
func Start() Message { return Message{Type: TypeStart} }
func Ping() Message  { return Message{Type: TypePing} }
func Pong() Message  { return Message{Type: TypePong} }

func Welcome(sessionID string, playerID uuid.UUID) Message {
	return Message{Type: TypeWelcome, SessionID: sessionID, PlayerID: playerID}
}

func Left(sessionID string) Message {
	return Message{Type: TypeLeft, SessionID: sessionID}
}

func Error(code ErrorCode, text string) Message {
	return Message{Type: TypeError, Code: code, Text: text}
}

func State(sessionID string, seq uint64, state *GameState) Message {
	return Message{Type: TypeState, SessionID: sessionID, Seq: seq, State: state}
}
