package listener

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	DefaultWebsocketPath = "/ws"

	wsShutdownTimeout = 5 * time.Second
	wsWriteTimeout    = 10 * time.Second
)

// WebsocketListener serves sessions over websockets. Each text frame from
// the client is one input line and each write to the client is one frame.
type WebsocketListener struct {
	port     uint16
	path     string
	cm       *ConnectionManager
	upgrader websocket.Upgrader
}

func NewWebsocketListener(port uint16, path string, cm *ConnectionManager) *WebsocketListener {
	if path == "" {
		path = DefaultWebsocketPath
	}
	return &WebsocketListener{
		port: port,
		path: path,
		cm:   cm,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (l *WebsocketListener) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", l.port))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", l.port, err)
	}
	return l.serve(ctx, listener)
}

func (l *WebsocketListener) serve(ctx context.Context, listener net.Listener) error {
	connCtx, cancelConns := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	mux := http.NewServeMux()
	mux.HandleFunc(l.path, func(w http.ResponseWriter, r *http.Request) {
		wg.Add(1)
		defer wg.Done()
		l.handle(connCtx, w, r)
	})
	svr := &http.Server{Handler: mux}

	go func() {
		<-ctx.Done()
		cancelConns()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), wsShutdownTimeout)
		defer cancel()
		if err := svr.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(ctx, "shutting down websocket server", "error", err)
		}
	}()

	slog.InfoContext(ctx, "listening for websockets", "addr", listener.Addr().String(), "path", l.path)

	err := svr.Serve(listener)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		cancelConns()
		return fmt.Errorf("serving websockets: %w", err)
	}

	wg.Wait()
	return nil
}

func (l *WebsocketListener) handle(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	conn, err := l.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.WarnContext(ctx, "websocket upgrade", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()

	slog.InfoContext(ctx, "websocket connection established", "remote", r.RemoteAddr)

	// Hijacked connections are not closed by Shutdown.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
			conn.Close()
		case <-done:
		}
	}()

	l.cm.AcceptConnection(ctx, newCRLFReadWriter(&wsReadWriter{conn: conn}))
}

// wsReadWriter adapts a websocket connection to a byte stream.
type wsReadWriter struct {
	conn    *websocket.Conn
	pending bytes.Buffer
}

func (c *wsReadWriter) Read(p []byte) (int, error) {
	for c.pending.Len() == 0 {
		mt, data, err := c.conn.ReadMessage()
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return 0, io.EOF
		}
		if err != nil {
			return 0, err
		}
		if mt != websocket.TextMessage {
			continue
		}
		c.pending.Write(data)
		c.pending.WriteByte('\n')
	}
	return c.pending.Read(p)
}

// Write sends p as one text frame. Callers must not write concurrently.
func (c *wsReadWriter) Write(p []byte) (int, error) {
	if err := c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
		return 0, err
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}
