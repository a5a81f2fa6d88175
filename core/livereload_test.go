package core

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialReloader(t *testing.T, lr Reloader) (*websocket.Conn, func()) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(lr.Handler))

	url := "ws" + server.URL[len("http"):]
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		server.Close()
		t.Fatalf("failed to connect to WebSocket: %v", err)
	}

	time.Sleep(50 * time.Millisecond)
	return ws, server.Close
}

func TestReloader_ClientReceivesReload(t *testing.T) {
	lr := NewReloader()
	ws, stop := dialReloader(t, lr)
	defer stop()
	defer ws.Close()

	lr.BroadcastReload()

	ws.SetReadDeadline(time.Now().Add(1 * time.Second))
	_, msg, err := ws.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read reload message: %v", err)
	}
	if string(msg) != "reload" {
		t.Errorf("expected 'reload' message, got %q", msg)
	}
}

func TestReloader_DropsDisconnectedClients(t *testing.T) {
	lr := NewReloader()
	ws, stop := dialReloader(t, lr)
	defer stop()

	if n := lr.(*wsReloader).clientCount(); n != 1 {
		t.Fatalf("expected 1 client, got %d", n)
	}

	_ = ws.Close()
	time.Sleep(100 * time.Millisecond)

	lr.BroadcastReload()

	if n := lr.(*wsReloader).clientCount(); n != 0 {
		t.Errorf("expected closed client to be dropped, got %d", n)
	}
}

func TestReloader_IgnoresUpgradeError(t *testing.T) {
	lr := NewReloader()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	lr.Handler(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected HTTP 400 on upgrade failure, got %d", w.Code)
	}
	if n := lr.(*wsReloader).clientCount(); n != 0 {
		t.Errorf("expected no clients, got %d", n)
	}
}
