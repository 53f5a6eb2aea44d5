package transport

import (
	"fmt"
	"time"

	"polypaint/internal/message"

	"github.com/gorilla/websocket"
)

// Handshake: reads the open frame a new connection must send first.
// The read deadline is cleared again on success.
func Handshake(conn *websocket.Conn, validator *message.Validator, timeout time.Duration) (*message.Open, error) {
	conn.SetReadDeadline(time.Now().Add(timeout))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("failed to receive open message: %w", err)
	}
	conn.SetReadDeadline(time.Time{})

	m, err := validator.Decode(msg)
	if err != nil {
		return nil, fmt.Errorf("invalid open message: %w", err)
	}

	open, ok := m.Body.(*message.Open)
	if !ok {
		return nil, fmt.Errorf("expected open message, got: %s", m.Type)
	}
	return open, nil
}
