package gateway

import (
	"errors"
	"io"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"holdem-session/apps/server/internal/codec"
	"holdem-session/apps/server/internal/lobby"
	"holdem-session/apps/server/internal/table"
	"holdem-session/protocol"
)

const sendBufferSize = 64

// Connection is one client. Its worker reads and dispatches commands; its
// writer drains send.
type Connection struct {
	ID string

	g   *Gateway
	tr  transport
	log *zap.Logger

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once

	// Current session association, only touched by the worker.
	sessionID string
	playerID  uuid.UUID
	table     *table.Table
}

func newConnection(g *Gateway, id string, tr transport) *Connection {
	return &Connection{
		ID:   id,
		g:    g,
		tr:   tr,
		log:  g.log.With(zap.String("conn", id), zap.String("remote", tr.RemoteAddr()), zap.String("transport", tr.Kind())),
		send: make(chan []byte, sendBufferSize),
		done: make(chan struct{}),
	}
}

// Enqueue queues m for the writer. It never blocks: the message is dropped
// when the buffer is full or the connection is closed.
func (c *Connection) Enqueue(m protocol.Message) {
	body, err := protocol.Marshal(m)
	if err != nil {
		c.log.Error("marshal failed", zap.Stringer("type", m.Type), zap.Error(err))
		return
	}
	select {
	case <-c.done:
		return
	default:
	}
	select {
	case c.send <- body:
	default:
		c.log.Warn("send buffer full, dropping message", zap.Stringer("type", m.Type))
	}
}

// readLoop is the connection worker.
func (c *Connection) readLoop() {
	defer c.close()

	buf := make([]byte, protocol.MaxFrameSize)
	for {
		body, err := c.tr.ReadFrame(buf)
		if err != nil {
			c.logReadError(err)
			return
		}
		m, err := protocol.Unmarshal(body)
		if err != nil {
			c.log.Warn("undecodable frame",
				zap.String("body", strings.ToValidUTF8(string(body), "�")),
				zap.Error(err))
			c.Enqueue(protocol.Error(protocol.CodeBadRequest, err.Error()))
			continue
		}
		c.handle(m)
	}
}

func (c *Connection) logReadError(err error) {
	switch {
	case errors.Is(err, io.EOF):
		c.log.Info("client disconnected")
	case errors.Is(err, protocol.ErrFrameTooLarge), errors.Is(err, protocol.ErrEmptyFrame):
		c.log.Warn("bad frame, closing", zap.Error(err))
		c.Enqueue(protocol.Error(protocol.CodeBadRequest, err.Error()))
	default:
		c.log.Info("read failed", zap.Error(err))
	}
}

func (c *Connection) handle(m protocol.Message) {
	switch m.Type {
	case protocol.TypeJoin:
		c.handleJoin(m)
	case protocol.TypeLeave:
		c.handleLeave()
	case protocol.TypeStart:
		c.handleStart()
	case protocol.TypePing:
		c.Enqueue(protocol.Pong())
	default:
		c.log.Debug("unexpected message", zap.Stringer("type", m.Type))
		c.Enqueue(protocol.Error(protocol.CodeBadRequest, "unexpected message type "+m.Type.String()))
	}
}

func (c *Connection) handleJoin(m protocol.Message) {
	if c.table != nil {
		c.Enqueue(errorMessage(table.ErrAlreadyJoined))
		return
	}
	name, err := normalizeName(m.Name)
	if err != nil {
		c.Enqueue(protocol.Error(protocol.CodeBadRequest, err.Error()))
		return
	}

	t, playerID, err := c.g.lobby.Join(m.SessionID, c.ID, name, c.Enqueue)
	if err != nil {
		c.log.Info("join failed", zap.String("session", m.SessionID), zap.Error(err))
		c.Enqueue(errorMessage(err))
		return
	}
	c.table = t
	c.sessionID = t.ID
	c.playerID = playerID
	c.log.Info("joined", zap.String("session", t.ID), zap.String("player", playerID.String()))
}

func (c *Connection) handleLeave() {
	if c.table == nil {
		c.Enqueue(protocol.Error(protocol.CodeNotJoined, "not in a session"))
		return
	}
	sessionID := c.sessionID
	c.leaveSession()
	c.Enqueue(protocol.Left(sessionID))
}

func (c *Connection) handleStart() {
	if c.table == nil {
		c.Enqueue(protocol.Error(protocol.CodeNotJoined, "not in a session"))
		return
	}
	if res := c.table.Start(c.ID); res.Err != nil {
		c.Enqueue(errorMessage(res.Err))
	}
}

func (c *Connection) leaveSession() {
	if c.table == nil {
		return
	}
	remaining, err := c.g.lobby.Leave(c.sessionID, c.ID)
	if err != nil {
		c.log.Debug("leave failed", zap.String("session", c.sessionID), zap.Error(err))
	} else {
		c.log.Info("left", zap.String("session", c.sessionID), zap.Int("remaining", remaining))
	}
	c.table = nil
	c.sessionID = ""
	c.playerID = uuid.Nil
}

// close runs once, on the worker, when the read side ends.
func (c *Connection) close() {
	c.closeOnce.Do(func() {
		c.leaveSession()
		c.g.removeConnection(c)
		close(c.done)
	})
}

// writePump drains send to the transport. Once the connection is closed it
// flushes what is queued and closes the transport.
func (c *Connection) writePump() {
	defer c.tr.Close()
	for {
		select {
		case body := <-c.send:
			if err := c.tr.WriteFrame(body); err != nil {
				c.log.Debug("write failed", zap.Error(err))
				return
			}
		case <-c.done:
			for {
				select {
				case body := <-c.send:
					if err := c.tr.WriteFrame(body); err != nil {
						return
					}
				default:
					return
				}
			}
		}
	}
}

func normalizeName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	switch {
	case name == "":
		return "", errors.New("name is required")
	case len(name) > protocol.MaxNameLen:
		return "", errors.New("name is too long")
	case !utf8.ValidString(name):
		return "", errors.New("name is not valid UTF-8")
	}
	return name, nil
}

func errorMessage(err error) protocol.Message {
	switch {
	case errors.Is(err, lobby.ErrSessionNotFound), errors.Is(err, table.ErrTableClosed):
		return protocol.Error(protocol.CodeSessionNotFound, err.Error())
	case errors.Is(err, table.ErrAlreadyJoined):
		return protocol.Error(protocol.CodeAlreadyJoined, err.Error())
	case errors.Is(err, table.ErrNotMember):
		return protocol.Error(protocol.CodeNotJoined, err.Error())
	}
	return codec.ErrorMessage(err)
}
