// Package transport exposes boards over HTTP: a WebSocket endpoint that
// drives one board per connection, and PNG snapshots.
package transport

import (
	"context"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"polypaint/internal/board"
	"polypaint/internal/handlers"
	"polypaint/internal/message"
	"polypaint/internal/middleware"
	"polypaint/internal/paint"

	"github.com/gorilla/websocket"
)

const (
	handshakeTimeout = 5 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10 // Send pings at 90% of pong deadline
	writeWait        = 10 * time.Second
)

// Server: connection handling for the drawing endpoint
type Server struct {
	manager   *board.Manager
	router    *handlers.MessageRouter
	validator *message.Validator
	ipLimiter *middleware.IPRateLimit
	limits    *middleware.Limits
	upgrader  websocket.Upgrader
}

// NewServer: domains lists the allowed origins; empty keeps the
// upgrader's same-host check
func NewServer(
	manager *board.Manager,
	router *handlers.MessageRouter,
	validator *message.Validator,
	ipLimiter *middleware.IPRateLimit,
	limits *middleware.Limits,
	domains []string,
) *Server {
	s := &Server{
		manager:   manager,
		router:    router,
		validator: validator,
		ipLimiter: ipLimiter,
		limits:    limits,
	}
	if len(domains) > 0 {
		s.upgrader.CheckOrigin = allowOrigins(domains)
	}
	return s
}

// allowOrigins: CORS check against a fixed list
func allowOrigins(domains []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("origin")
		for _, allowed := range domains {
			if origin == strings.TrimSpace(allowed) {
				return true
			}
		}
		return false
	}
}

// GetClientIP: extracts the client IP from the request
func GetClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// client: write side of one connection. Only the read loop writes frames;
// pings go through WriteControl which may run concurrently.
type client struct {
	conn *websocket.Conn
}

func (c *client) WriteJSON(v interface{}) error {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(v)
}

func (c *client) writeError(msg string) {
	if err := c.WriteJSON(message.Error{Type: message.TypeError, Message: msg}); err != nil {
		log.Printf("Error: Failed to send error frame - %v", err)
	}
}

// HandleWebSocket: upgrades HTTP to WebSocket and binds the connection to a board
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	clientIP := GetClientIP(r)
	if !s.ipLimiter.Allow(clientIP) {
		log.Printf("Rate limit exceeded for IP: %s", clientIP)
		http.Error(w, "Too many connections", http.StatusTooManyRequests)
		return
	}

	w.Header().Set("X-Content-Type-Options", "nosniff")

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Error: Failed to upgrade connection - %v", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(int64(s.limits.MaxMessageSize) * 2)
	c := &client{conn: conn}

	open, err := Handshake(conn, s.validator, handshakeTimeout)
	if err != nil {
		log.Printf("Error: Handshake failed - %v", err)
		c.writeError(err.Error())
		return
	}

	b, err := s.manager.Open(open.Board)
	if err != nil {
		log.Printf("Error: Failed to open board (%s) - %v", s.validator.Sanitize(open.Board), err)
		c.writeError(err.Error())
		return
	}
	defer b.Release()

	names, current := b.ToolNames()
	width, height := b.Size()
	ready := message.Ready{
		Type:     message.TypeReady,
		Board:    b.ID,
		Width:    width,
		Height:   height,
		Tools:    s.validator.SanitizeAll(names),
		Current:  s.validator.Sanitize(current),
		MinWidth: paint.MinWidth,
		MaxWidth: paint.MaxWidth,
	}
	if err := c.WriteJSON(ready); err != nil {
		log.Printf("Error: Failed to send ready message - %v", err)
		return
	}

	s.run(r.Context(), c, b)
}

// run: message loop for one connection
func (s *Server) run(ctx context.Context, c *client, b *board.Board) {
	conn := c.conn

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	pingTicker := time.NewTicker(pingPeriod)
	defer pingTicker.Stop()

	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			select {
			case <-pingTicker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	limiter := s.limits.NewMessageLimiter()
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Error: Reading message on board %s - %v", b.ID, err)
			}
			return
		}

		if !s.limits.ValidateMessageSize(len(msg)) {
			log.Printf("Message too large on board %s: %d bytes", b.ID, len(msg))
			continue
		}

		if err := limiter.Wait(ctx); err != nil {
			return
		}

		if err := s.router.Route(b, c, msg); err != nil {
			log.Printf("Error handling message on board %s: %v", b.ID, err)
			c.writeError(err.Error())
		}
	}
}
