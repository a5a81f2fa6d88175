package core

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Reloader keeps open dev pages current. Pages rendered in dev connect to
// /__vista_reload. When a file under the data or views directory changes,
// the router's watcher drops its caches and calls BroadcastReload, which
// sends "reload" to every connected page.
type Reloader interface {
	BroadcastReload()
	Handler(http.ResponseWriter, *http.Request)
}

type wsReloader struct {
	lock     sync.Mutex
	clients  map[*websocket.Conn]struct{}
	upgrader websocket.Upgrader
}

// NewReloader returns the WebSocket Reloader the dev server mounts at
// /__vista_reload. It is a var so the server can be started with a stub in
// tests.
var NewReloader = func() Reloader {
	return &wsReloader{
		clients: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (lr *wsReloader) Handler(w http.ResponseWriter, r *http.Request) {
	conn, err := lr.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	lr.lock.Lock()
	lr.clients[conn] = struct{}{}
	lr.lock.Unlock()

	// Pages never send anything; reading only detects the close.
	go func() {
		defer lr.drop(conn)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()
}

func (lr *wsReloader) drop(conn *websocket.Conn) {
	lr.lock.Lock()
	delete(lr.clients, conn)
	lr.lock.Unlock()
	conn.Close()
}

func (lr *wsReloader) BroadcastReload() {
	lr.lock.Lock()
	defer lr.lock.Unlock()

	for conn := range lr.clients {
		if err := conn.WriteMessage(websocket.TextMessage, []byte("reload")); err != nil {
			conn.Close()
			delete(lr.clients, conn)
		}
	}
}

func (lr *wsReloader) clientCount() int {
	lr.lock.Lock()
	defer lr.lock.Unlock()
	return len(lr.clients)
}
