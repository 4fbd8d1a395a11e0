package gateway

import (
	"io"
	"net"
	"time"

	"github.com/gorilla/websocket"

	"holdem-session/protocol"
)

const writeWait = 10 * time.Second

// transport carries frame bodies for one connection. ReadFrame is called
// from the worker only, WriteFrame from the writer only.
type transport interface {
	ReadFrame(buf []byte) ([]byte, error)
	WriteFrame(body []byte) error
	Close() error
	RemoteAddr() string
	Kind() string
}

type tcpTransport struct {
	conn net.Conn
}

func newTCPTransport(conn net.Conn) *tcpTransport {
	return &tcpTransport{conn: conn}
}

func (t *tcpTransport) ReadFrame(buf []byte) ([]byte, error) {
	return protocol.ReadFrame(t.conn, buf)
}

func (t *tcpTransport) WriteFrame(body []byte) error {
	_ = t.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return protocol.WriteFrame(t.conn, body)
}

func (t *tcpTransport) Close() error       { return t.conn.Close() }
func (t *tcpTransport) RemoteAddr() string { return t.conn.RemoteAddr().String() }
func (t *tcpTransport) Kind() string       { return "tcp" }

// wsTransport maps one binary websocket message to one frame body.
type wsTransport struct {
	conn *websocket.Conn
}

func newWSTransport(conn *websocket.Conn) *wsTransport {
	conn.SetReadLimit(protocol.MaxFrameSize)
	return &wsTransport{conn: conn}
}

func (t *wsTransport) ReadFrame(buf []byte) ([]byte, error) {
	for {
		mt, data, err := t.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil, io.EOF
			}
			return nil, err
		}
		if mt != websocket.BinaryMessage {
			continue
		}
		if len(data) == 0 {
			return nil, protocol.ErrEmptyFrame
		}
		if len(data) > len(buf) {
			return nil, protocol.ErrFrameTooLarge
		}
		return buf[:copy(buf, data)], nil
	}
}

func (t *wsTransport) WriteFrame(body []byte) error {
	_ = t.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return t.conn.WriteMessage(websocket.BinaryMessage, body)
}

func (t *wsTransport) Close() error       { return t.conn.Close() }
func (t *wsTransport) RemoteAddr() string { return t.conn.RemoteAddr().String() }
func (t *wsTransport) Kind() string       { return "ws" }
