// Package lasnet supplements the required six built-ins with ws_connect,
// ws_send, ws_recv, ws_close, wrapping gorilla/websocket for dialing,
// sending, and receiving. There is no background reader goroutine or
// channel: a single-threaded interpreter can read synchronously on
// demand.
package lasnet

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"las/internal/lasast"
	"las/internal/lasrr"
	"las/internal/lasspan"
	"las/internal/lasvalue"
)

type manager struct {
	mu    sync.Mutex
	conns map[string]*websocket.Conn
}

var m = &manager{conns: make(map[string]*websocket.Conn)}

func init() {
	lasast.RegisterBuiltin("ws_connect", wsConnect)
	lasast.RegisterBuiltin("ws_send", wsSend)
	lasast.RegisterBuiltin("ws_recv", wsRecv)
	lasast.RegisterBuiltin("ws_close", wsClose)
}

func wrongArgType(sp lasspan.Span, fn string, i int, want string, got *lasvalue.Value) error {
	return lasrr.Atf(lasrr.WrongArgumentType, sp, "%s: argument %d must be %s, got %s", fn, i, want, got.Type())
}

func wrongArgCount(sp lasspan.Span, fn string, want int, got int) error {
	return lasrr.Atf(lasrr.WrongNumberOfArguments, sp, "%s expects %d argument(s), got %d", fn, want, got)
}

func requireString(sp lasspan.Span, fn string, i int, v *lasvalue.Value) (string, error) {
	if v.Kind != lasvalue.String {
		return "", wrongArgType(sp, fn, i, "String", v)
	}
	return v.GoString(), nil
}

// wsConnect(id: String, url: String) -> Nothing
func wsConnect(sp lasspan.Span, args []*lasvalue.Value) (*lasvalue.Value, error) {
	if len(args) != 2 {
		return nil, wrongArgCount(sp, "ws_connect", 2, len(args))
	}
	id, err := requireString(sp, "ws_connect", 1, args[0])
	if err != nil {
		return nil, err
	}
	url, err := requireString(sp, "ws_connect", 2, args[1])
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.conns[id]; exists {
		return nil, lasrr.Atf(lasrr.FailedAssertion, sp, "ws_connect: connection %q already exists", id)
	}
	dialer := websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second
	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return nil, lasrr.Atf(lasrr.FailedAssertion, sp, "ws_connect: %s", err)
	}
	m.conns[id] = conn
	return lasvalue.NewNothing(), nil
}

func getConn(sp lasspan.Span, fn, id string) (*websocket.Conn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	conn, ok := m.conns[id]
	if !ok {
		return nil, lasrr.Atf(lasrr.FailedAssertion, sp, "%s: no such connection %q", fn, id)
	}
	return conn, nil
}

// wsSend(id: String, message: String) -> Nothing
func wsSend(sp lasspan.Span, args []*lasvalue.Value) (*lasvalue.Value, error) {
	if len(args) != 2 {
		return nil, wrongArgCount(sp, "ws_send", 2, len(args))
	}
	id, err := requireString(sp, "ws_send", 1, args[0])
	if err != nil {
		return nil, err
	}
	msg, err := requireString(sp, "ws_send", 2, args[1])
	if err != nil {
		return nil, err
	}
	conn, err := getConn(sp, "ws_send", id)
	if err != nil {
		return nil, err
	}
	if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
		return nil, lasrr.Atf(lasrr.FailedAssertion, sp, "ws_send: %s", err)
	}
	return lasvalue.NewNothing(), nil
}

// wsRecv(id: String) -> String
func wsRecv(sp lasspan.Span, args []*lasvalue.Value) (*lasvalue.Value, error) {
	if len(args) != 1 {
		return nil, wrongArgCount(sp, "ws_recv", 1, len(args))
	}
	id, err := requireString(sp, "ws_recv", 1, args[0])
	if err != nil {
		return nil, err
	}
	conn, err := getConn(sp, "ws_recv", id)
	if err != nil {
		return nil, err
	}
	_, data, err := conn.ReadMessage()
	if err != nil {
		return nil, lasrr.Atf(lasrr.FailedAssertion, sp, "ws_recv: %s", err)
	}
	return lasvalue.NewString(string(data)), nil
}

// wsClose(id: String) -> Nothing
func wsClose(sp lasspan.Span, args []*lasvalue.Value) (*lasvalue.Value, error) {
	if len(args) != 1 {
		return nil, wrongArgCount(sp, "ws_close", 1, len(args))
	}
	id, err := requireString(sp, "ws_close", 1, args[0])
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	conn, ok := m.conns[id]
	if !ok {
		return nil, lasrr.Atf(lasrr.FailedAssertion, sp, "ws_close: no such connection %q", id)
	}
	delete(m.conns, id)
	if err := conn.Close(); err != nil {
		return nil, lasrr.Atf(lasrr.FailedAssertion, sp, "ws_close: %s", err)
	}
	return lasvalue.NewNothing(), nil
}
