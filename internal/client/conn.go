// Package client implements the interactive side of the chat: a TCP
// connection speaking the wire protocol and a terminal event loop which
// merges network traffic, keyboard input and a periodic tick into one
// sequential rendering stream.
package client

import (
	"fmt"
	"io"
	"net"

	"lanchat/internal/protocol"
)

// Conn - one persistent bidirectional stream to the relay.
type Conn struct {
	tcp    *net.TCPConn
	reader *protocol.Reader
}

// Dial - connects to the relay at the given address.
func Dial(address string) (*Conn, error) {
	raddr, err := net.ResolveTCPAddr("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("client: resolve %s: %w", address, err)
	}
	tcp, err := net.DialTCP("tcp", nil, raddr)
	if err != nil {
		return nil, fmt.Errorf("client: dial %s: %w", address, err)
	}
	return &Conn{tcp: tcp, reader: protocol.NewReader(tcp)}, nil
}

// Send - writes one encoded event to the relay.
func (c *Conn) Send(ev protocol.Event) error {
	_, err := io.WriteString(c.tcp, protocol.Encode(ev))
	return err
}

// Recv - blocks until the next inbound event arrives.
func (c *Conn) Recv() (protocol.Event, error) {
	return c.reader.Read()
}

// CloseWrite - shuts the outbound half down so the relay observes EOF
// promptly and announces the departure; inbound reading keeps working
// until Close.
func (c *Conn) CloseWrite() error {
	return c.tcp.CloseWrite()
}

// Close - releases the connection; unblocks a pending Recv.
func (c *Conn) Close() error {
	return c.tcp.Close()
}

// LocalAddr - the client's own address, shown in the greeting.
func (c *Conn) LocalAddr() net.Addr {
	return c.tcp.LocalAddr()
}

// RemoteAddr - the relay's address.
func (c *Conn) RemoteAddr() net.Addr {
	return c.tcp.RemoteAddr()
}
