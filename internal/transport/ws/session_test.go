package ws

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"gridfall.gg/internal/transport"
)

func echoServer(t *testing.T) *httptest.Server {
	t.Helper()
	up := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			mt, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if err := conn.WriteMessage(mt, msg); err != nil {
				return
			}
		}
	}))
}

func TestSession_SendRecv(t *testing.T) {
	srv := echoServer(t)
	defer srv.Close()

	s, err := Dial("ws" + strings.TrimPrefix(srv.URL, "http"))
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer s.Close()

	if err := s.Send([]byte(`{"type":"HEARTBEAT"}`)); err != nil {
		t.Fatalf("Send: %v", err)
	}
	got, err := s.Recv()
	if err != nil {
		t.Fatalf("Recv: %v", err)
	}
	if string(got) != `{"type":"HEARTBEAT"}` {
		t.Fatalf("echo mismatch: %s", got)
	}
}

func TestSession_RecvAfterClose(t *testing.T) {
	srv := echoServer(t)
	defer srv.Close()

	s, err := Dial("ws" + strings.TrimPrefix(srv.URL, "http"))
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	_ = s.Close()

	if _, err := s.Recv(); !errors.Is(err, transport.ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}
