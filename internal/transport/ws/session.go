package ws

import (
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"gridfall.gg/internal/transport"
)

const writeWait = 5 * time.Second

// Session is a transport.Session over a websocket connection. Reads belong
// to the single receiver goroutine; writes are serialized here because the
// receiver answers pings while the simulation tick sends inputs.
type Session struct {
	conn *websocket.Conn

	mu sync.Mutex // guards writes
}

func Dial(url string) (*Session, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return &Session{conn: conn}, nil
}

func (s *Session) Send(b []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteMessage(websocket.TextMessage, b); err != nil {
		return fmt.Errorf("%w: %v", transport.ErrClosed, err)
	}
	return nil
}

func (s *Session) Recv() ([]byte, error) {
	_, msg, err := s.conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", transport.ErrClosed, err)
	}
	return msg, nil
}

func (s *Session) Close() error {
	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	return s.conn.Close()
}
