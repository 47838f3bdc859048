package webui

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/sitesmith/sitesmith/pkg/logging"
)

// SafeConn wraps a websocket connection with a write mutex and panic
// recovery. Reload broadcasts fan out from HTTP handler goroutines, and
// gorilla/websocket panics on concurrent writes.
type SafeConn struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
	closed  bool
}

func NewSafeConn(conn *websocket.Conn) *SafeConn {
	return &SafeConn{conn: conn}
}

// WriteJSON writes v to the connection. Writes to a closed connection are
// silently dropped; the read loop is responsible for unregistering it.
func (sc *SafeConn) WriteJSON(v interface{}) error {
	sc.writeMu.Lock()
	defer sc.writeMu.Unlock()

	if sc.closed {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			logging.GetLogger().Logf("websocket write panic recovered: %v", r)
			sc.closed = true
		}
	}()
	return sc.conn.WriteJSON(v)
}

func (sc *SafeConn) Close() error {
	sc.writeMu.Lock()
	sc.closed = true
	sc.writeMu.Unlock()
	return sc.conn.Close()
}

// Underlying exposes the wrapped connection for reads.
func (sc *SafeConn) Underlying() *websocket.Conn {
	return sc.conn
}
