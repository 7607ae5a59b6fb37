package todoapi

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// live upgrades to a websocket, sends the collection, and keeps the
// connection registered until the peer goes away.
func (s *Service) live(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	s.clientsMu.Lock()
	s.clients[conn] = struct{}{}
	err = send(conn, s.Todos())
	s.clientsMu.Unlock()
	if err != nil {
		s.drop(conn)
		return
	}
	s.logger.Debug("live subscriber connected", "remote", r.RemoteAddr)

	// Incoming messages are ignored; reading surfaces the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	s.drop(conn)
	s.logger.Debug("live subscriber disconnected", "remote", r.RemoteAddr)
}

// Subscribers returns the number of connected live subscribers.
func (s *Service) Subscribers() int {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	return len(s.clients)
}

// broadcast pushes version ver of the collection. A version older than one
// already pushed is dropped, so subscribers end on the latest collection.
func (s *Service) broadcast(todos []Todo, ver uint64) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	if ver <= s.sent {
		return
	}
	s.sent = ver
	for conn := range s.clients {
		if err := send(conn, todos); err != nil {
			s.logger.Warn("live push failed", "error", err)
			_ = conn.Close()
			delete(s.clients, conn)
		}
	}
}

func (s *Service) drop(conn *websocket.Conn) {
	s.clientsMu.Lock()
	delete(s.clients, conn)
	s.clientsMu.Unlock()
	_ = conn.Close()
}

func send(conn *websocket.Conn, todos []Todo) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(todos)
}
