package network

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/leap-fish/necs/router"
	"github.com/rs/zerolog"
	"github.com/sasha-s/go-deadlock"
)

// wsListener accepts websocket clients and feeds them to the necs router
// the same way the necs server transport does. Unlike that transport it
// owns its http.Server, so it can be shut down.
type wsListener struct {
	srv *http.Server
	ln  net.Listener

	mu     deadlock.Mutex
	conns  map[*websocket.Conn]struct{}
	closed bool

	log zerolog.Logger
}

func listen(addr string, log zerolog.Logger) (*wsListener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	l := &wsListener{
		ln:    ln,
		conns: make(map[*websocket.Conn]struct{}),
		log:   log,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", l.accept)
	l.srv = &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	return l, nil
}

func (l *wsListener) Addr() net.Addr {
	return l.ln.Addr()
}

// serve blocks until Close. A closed listener returns nil.
func (l *wsListener) serve() error {
	err := l.srv.Serve(l.ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (l *wsListener) accept(w http.ResponseWriter, req *http.Request) {
	conn, err := websocket.Accept(w, req, nil)
	if err != nil {
		l.log.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}
	if !l.track(conn) {
		_ = conn.CloseNow()
		return
	}
	defer l.untrack(conn)
	defer conn.CloseNow()

	router.CallConnect(conn)

	var readErr error
	for {
		_, payload, err := conn.Read(req.Context())
		if err != nil {
			readErr = err
			break
		}
		if err := router.CallProcessMessage(conn, payload); err != nil {
			router.CallError(conn, fmt.Errorf("unable to process message: %w", err))
		}
	}
	if websocket.CloseStatus(readErr) == websocket.StatusNormalClosure {
		readErr = nil
	}
	router.CallDisconnect(conn, readErr)
}

func (l *wsListener) track(conn *websocket.Conn) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return false
	}
	l.conns[conn] = struct{}{}
	return true
}

func (l *wsListener) untrack(conn *websocket.Conn) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.conns, conn)
}

// Close stops accepting and drops every open connection. Hijacked websocket
// connections are not closed by http.Server.Close, so they are closed here.
func (l *wsListener) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	conns := make([]*websocket.Conn, 0, len(l.conns))
	for c := range l.conns {
		conns = append(conns, c)
	}
	l.mu.Unlock()

	err := l.srv.Close()
	for _, c := range conns {
		_ = c.CloseNow()
	}
	return err
}
