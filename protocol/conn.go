package protocol

import (
	"io"
	"net"
	"sync"
)

// Conn reads and writes framed messages over a stream. Reads must come from
// a single goroutine; writes may come from any.
type Conn struct {
	rw  io.ReadWriter
	buf []byte
	wmu sync.Mutex
}

func NewConn(rw io.ReadWriter) *Conn {
	return &Conn{rw: rw, buf: make([]byte, MaxFrameSize)}
}

// Dial connects to a server over TCP.
func Dial(addr string) (*Conn, net.Conn, error) {
	nc, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, nil, err
	}
	return NewConn(nc), nc, nil
}

func (c *Conn) Send(m Message) error {
	body, err := Marshal(m)
	if err != nil {
		return err
	}
	c.wmu.Lock()
	defer c.wmu.Unlock()
	return WriteFrame(c.rw, body)
}

func (c *Conn) Receive() (Message, error) {
	body, err := ReadFrame(c.rw, c.buf)
	if err != nil {
		return Message{}, err
	}
	return Unmarshal(body)
}
