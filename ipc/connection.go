package ipc

import (
	"log/slog"
	"net"
	"sync"
)

// Handler processes a received envelope. Return nil to send no reply.
type Handler func(env Envelope) (*Envelope, error)

// Connection represents one shell window talking to the advisor sidecar.
type Connection struct {
	conn     net.Conn
	writeMu  sync.Mutex // Send may be called from watcher goroutines
	handlers map[string]Handler
}

func NewConnection(conn net.Conn, handlers map[string]Handler) *Connection {
	if handlers == nil {
		handlers = make(map[string]Handler)
	}
	return &Connection{
		conn:     conn,
		handlers: handlers,
	}
}

func (c *Connection) RegisterHandler(msgType string, handler Handler) {
	c.handlers[msgType] = handler
}

// Send pushes an unsolicited envelope to the shell (e.g. fresh advice after
// a snapshot). Safe to call concurrently with reply writes.
func (c *Connection) Send(msgType string, data any) error {
	env, err := NewEnvelope(msgType, data)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return WriteEnvelope(c.conn, env)
}

// ReadLoop blocks until the connection closes or errors. It owns the conn
// lifetime so callers don't need to track cleanup. Handler errors are
// reported back to the shell as error envelopes rather than closing the
// connection.
func (c *Connection) ReadLoop() {
	defer c.conn.Close()

	for {
		env, err := ReadEnvelope(c.conn)
		if err != nil {
			slog.Info("connection read ended", "error", err)
			return
		}

		handler, ok := c.handlers[env.Type]
		if !ok {
			slog.Warn("no handler for message type", "type", env.Type)
			continue
		}

		resp, err := handler(env)
		if err != nil {
			slog.Error("handler error", "type", env.Type, "error", err)
			if sendErr := c.Send(TypeError, ErrorMessage{Message: err.Error()}); sendErr != nil {
				slog.Error("failed to send error response", "error", sendErr)
				return
			}
			continue
		}

		if resp != nil {
			c.writeMu.Lock()
			err := WriteEnvelope(c.conn, *resp)
			c.writeMu.Unlock()
			if err != nil {
				slog.Error("failed to send response", "type", resp.Type, "error", err)
				return
			}
		}
	}
}
