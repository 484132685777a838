package bridge

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gorilla/websocket"
	"github.com/vango-dev/listen/pkg/dom"
	"github.com/vango-dev/listen/pkg/listener"
	"github.com/vango-dev/listen/pkg/protocol"
)

// Mirror is a remote host implemented by a dom.Host. It attaches the
// listeners a server asks for and forwards their events to the server.
//
// The host is only touched from Run's goroutine. Use Do to act on it.
type Mirror struct {
	conn   Conn
	host   *dom.Host
	root   *dom.Node
	logger *slog.Logger

	// remote token -> local token
	tokens map[uint64]listener.Token

	frames chan *protocol.Frame
	calls  chan func(*dom.Host, *dom.Node)
	errs   chan error
	done   chan struct{}
}

// NewMirror creates a Mirror applying registrations to nodes under root.
func NewMirror(conn Conn, host *dom.Host, root *dom.Node, logger *slog.Logger) *Mirror {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mirror{
		conn:   conn,
		host:   host,
		root:   root,
		logger: logger,
		tokens: make(map[uint64]listener.Token),
		frames: make(chan *protocol.Frame),
		calls:  make(chan func(*dom.Host, *dom.Node)),
		errs:   make(chan error, 1),
		done:   make(chan struct{}),
	}
}

// Do runs fn on the mirror's event loop and waits for it to finish.
func (m *Mirror) Do(ctx context.Context, fn func(host *dom.Host, root *dom.Node)) error {
	done := make(chan struct{})
	select {
	case m.calls <- func(h *dom.Host, r *dom.Node) { fn(h, r); close(done) }:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run is the event loop. It returns when the server closes the connection
// (nil) or on a read error.
func (m *Mirror) Run(ctx context.Context) error {
	defer close(m.done)
	go m.read()

	for {
		select {
		case <-ctx.Done():
			m.send(protocol.EncodeClose(protocol.CloseGoingAway, ""))
			m.conn.Close()
			return nil

		case err := <-m.errs:
			return err

		case fn := <-m.calls:
			fn(m.host, m.root)

		case f := <-m.frames:
			if done := m.apply(f); done {
				m.conn.Close()
				return nil
			}
		}
	}
}

func (m *Mirror) read() {
	for {
		_, msg, err := m.conn.ReadMessage()
		if err != nil {
			if isNormalClose(err) {
				err = nil
			}
			m.errs <- err
			return
		}
		f, err := protocol.DecodeFrame(msg)
		if err != nil {
			m.logger.Warn("frame decode error", "error", err)
			continue
		}
		select {
		case m.frames <- f:
		case <-m.done:
			return
		}
	}
}

// apply handles one frame and reports whether the server closed.
func (m *Mirror) apply(f *protocol.Frame) bool {
	switch f.Type {
	case protocol.FrameListen:
		l, err := protocol.DecodeListen(f.Payload)
		if err != nil {
			m.logger.Warn("listen decode error", "error", err)
			return false
		}
		m.listen(l)

	case protocol.FrameUnlisten:
		u, err := protocol.DecodeUnlisten(f.Payload)
		if err != nil {
			m.logger.Warn("unlisten decode error", "error", err)
			return false
		}
		local, ok := m.tokens[u.Token]
		if !ok {
			m.logger.Warn("unlisten for unknown token", "token", u.Token)
			return false
		}
		delete(m.tokens, u.Token)
		m.host.Unregister(local)

	case protocol.FrameControl:
		ct, data, err := protocol.DecodeControl(f.Payload)
		if err != nil {
			return false
		}
		switch ct {
		case protocol.ControlPing:
			if pp, ok := data.(*protocol.PingPong); ok {
				m.send(protocol.EncodePong(pp.Timestamp))
			}
		case protocol.ControlClose:
			return true
		}

	case protocol.FrameError:
		if em, err := protocol.DecodeErrorMessage(f.Payload); err == nil {
			m.logger.Warn("server reported error", "code", em.Code, "message", em.Message)
		}
	}
	return false
}

func (m *Mirror) listen(l *protocol.Listen) {
	node := m.root.Find(l.Target)
	if node == nil {
		m.send((&protocol.ErrorMessage{
			Code:    "L002",
			Message: fmt.Sprintf("no node %q", l.Target),
		}).Frame())
		return
	}

	remote := l.Token
	opts := listener.OptionsFromFlags(l.Flags)
	var local listener.Token
	local = m.host.Register(node, l.Name, opts, func(e listener.Event) {
		if opts.Once {
			// The server clears its side on delivery and never sends Unlisten.
			delete(m.tokens, remote)
			m.host.Forget(local)
		}
		ev := &protocol.Event{Token: remote, Type: e.Type(), Target: node.TargetID()}
		if de, ok := e.(*dom.Event); ok {
			ev.Fields = de.Fields()
			if t := de.Target(); t != nil {
				ev.Target = t.TargetID()
			}
		}
		m.send(ev.Frame())
	})
	m.tokens[remote] = local
}

// send writes f to the server. Frames that cannot be encoded are logged and
// dropped.
func (m *Mirror) send(f *protocol.Frame) {
	data, err := f.Encode()
	if err != nil {
		m.logger.Error("mirror frame not sent", "type", f.Type, "size", len(f.Payload), "error", err)
		return
	}
	if err := m.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		m.logger.Warn("mirror write failed", "error", err)
	}
}
