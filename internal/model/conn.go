package model

import "sync"

// Conn is the part of a websocket connection a game writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// SyncConn lets several goroutines write to one websocket, which itself
// allows a single writer at a time. Register the SyncConn with the game and
// send every other reply on that socket through it as well.
type SyncConn struct {
	Conn
	mu sync.Mutex
}

func NewSyncConn(conn Conn) *SyncConn {
	return &SyncConn{Conn: conn}
}

func (c *SyncConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteJSON(v)
}

func (c *SyncConn) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteMessage(messageType, data)
}

// peer is a registered connection plus the version of the last state it was
// sent. Game states go out in version order and older ones are skipped.
type peer struct {
	conn Conn
	mu   sync.Mutex
	sent uint64
}

func (p *peer) send(version uint64, msg interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if version <= p.sent {
		return nil
	}
	if err := p.conn.WriteJSON(msg); err != nil {
		return err
	}
	p.sent = version
	return nil
}
