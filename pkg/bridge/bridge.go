package bridge

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vango-dev/listen/internal/errors"
	"github.com/vango-dev/listen/pkg/listener"
	"github.com/vango-dev/listen/pkg/protocol"
)

type remoteReg struct {
	target    string
	name      string
	opts      listener.Options
	cb        func(listener.Event)
	forgotten bool
}

// Bridge is a listener.Registrar backed by a remote host.
type Bridge struct {
	conn   Conn
	config Config
	logger *slog.Logger

	mu     sync.Mutex
	next   listener.Token
	regs   map[listener.Token]*remoteReg
	spent  map[listener.Token]struct{}
	closed bool
}

var _ listener.Registrar = (*Bridge)(nil)

// New creates a Bridge over conn.
func New(conn Conn, config Config) *Bridge {
	if config.MaxMessageSize > 0 {
		conn.SetReadLimit(config.MaxMessageSize)
	}
	return &Bridge{
		conn:   conn,
		config: config,
		logger: config.logger(),
		regs:   make(map[listener.Token]*remoteReg),
		spent:  make(map[listener.Token]struct{}),
	}
}

// Register implements listener.Registrar.
func (b *Bridge) Register(target listener.Target, name string, opts listener.Options, cb func(listener.Event)) listener.Token {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		panic(errors.New("L010").WithDetailf("register %q on %q after close", name, target.TargetID()))
	}

	b.next++
	t := b.next
	id := target.TargetID()
	msg := &protocol.Listen{Token: uint64(t), Target: id, Name: name, Flags: opts.Flags()}
	if err := b.writeLocked(msg.Frame()); err != nil {
		panic(errors.New("L002").Wrap(err))
	}

	b.regs[t] = &remoteReg{target: id, name: name, opts: opts, cb: cb}
	b.logger.Debug("remote listener registered", "token", t, "target", id, "event", name)
	return t
}

// RegisterOnce implements listener.Registrar.
func (b *Bridge) RegisterOnce(target listener.Target, name string, cb func(listener.Event)) listener.Token {
	return b.Register(target, name, listener.Options{Once: true}, cb)
}

// Unregister implements listener.Registrar. On a closed bridge the host is
// gone along with its registrations, so only local state is cleared.
func (b *Bridge) Unregister(t listener.Token) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.spent[t]; ok {
		delete(b.spent, t)
		return
	}
	if _, ok := b.regs[t]; !ok {
		panic(errors.New("L003").WithDetailf("unknown token %s", t))
	}
	delete(b.regs, t)

	if b.closed {
		return
	}
	if err := b.writeLocked((&protocol.Unlisten{Token: uint64(t)}).Frame()); err != nil {
		panic(errors.New("L003").Wrap(err))
	}
	b.logger.Debug("remote listener unregistered", "token", t)
}

// Forget implements listener.Registrar. Nothing is sent; the host keeps the
// registration.
func (b *Bridge) Forget(t listener.Token) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.spent[t]; ok {
		delete(b.spent, t)
		return
	}
	reg, ok := b.regs[t]
	if !ok {
		panic(errors.New("L003").WithDetailf("unknown token %s", t))
	}
	reg.forgotten = true
}

// Active returns the number of registrations attached on the host.
func (b *Bridge) Active() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.regs)
}

// Closed reports whether the connection has ended.
func (b *Bridge) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

// Serve reads frames and delivers events until the connection closes or ctx
// is done. A normal close from the host returns nil.
func (b *Bridge) Serve(ctx context.Context) error {
	defer b.Close()

	stop := context.AfterFunc(ctx, func() { b.Close() })
	defer stop()

	for {
		if b.config.ReadTimeout > 0 {
			b.conn.SetReadDeadline(time.Now().Add(b.config.ReadTimeout))
		}

		_, msg, err := b.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || isNormalClose(err) || b.Closed() {
				return nil
			}
			if stderrors.Is(err, websocket.ErrReadLimit) {
				return errors.New("L021").WithDetailf("limit %d bytes", b.config.MaxMessageSize).Wrap(err)
			}
			return fmt.Errorf("bridge: read: %w", err)
		}

		frame, err := protocol.DecodeFrame(msg)
		if err != nil {
			b.logger.Warn("frame decode error", "error", err)
			b.sendError(errors.FromError(err, "L020"))
			continue
		}

		switch frame.Type {
		case protocol.FrameEvent:
			b.handleEvent(frame.Payload)

		case protocol.FrameControl:
			if done := b.handleControl(frame.Payload); done {
				return nil
			}

		case protocol.FrameError:
			if em, err := protocol.DecodeErrorMessage(frame.Payload); err == nil {
				b.logger.Warn("host reported error", "code", em.Code, "message", em.Message, "fatal", em.Fatal)
				if em.Fatal {
					return errors.New("L010").WithDetail(em.Message)
				}
			}

		default:
			b.logger.Warn("unexpected frame type", "type", frame.Type)
		}
	}
}

func (b *Bridge) handleEvent(payload []byte) {
	pe, err := protocol.DecodeEvent(payload)
	if err != nil {
		b.logger.Warn("event decode error", "error", err)
		b.sendError(errors.FromError(err, "L020"))
		return
	}

	t := listener.Token(pe.Token)
	b.mu.Lock()
	issued := t != 0 && t <= b.next
	reg, ok := b.regs[t]
	if ok && reg.opts.Once {
		delete(b.regs, t)
		if !reg.forgotten {
			b.spent[t] = struct{}{}
		}
	}
	b.mu.Unlock()

	if !ok {
		if !issued {
			b.logger.Warn("event for token never issued", "token", t, "event", pe.Type)
			b.sendError(errors.New("L022").WithDetailf("token %s, event %q", t, pe.Type))
			return
		}
		// Late delivery after Unlisten is normal; the host may have sent
		// the event before it saw the detach.
		b.logger.Debug("event for detached listener", "token", t, "event", pe.Type)
		return
	}

	reg.cb(&remoteEvent{
		typ:     pe.Type,
		target:  Target(pe.Target),
		fields:  pe.Fields,
		passive: reg.opts.Passive,
	})
}

// handleControl answers pings and reports whether the host closed.
func (b *Bridge) handleControl(payload []byte) bool {
	ct, data, err := protocol.DecodeControl(payload)
	if err != nil {
		b.logger.Warn("control decode error", "error", err)
		return false
	}

	switch ct {
	case protocol.ControlPing:
		if pp, ok := data.(*protocol.PingPong); ok {
			b.write(protocol.EncodePong(pp.Timestamp))
		}
	case protocol.ControlClose:
		if cm, ok := data.(*protocol.CloseMessage); ok {
			b.logger.Info("host closing", "reason", cm.Reason, "message", cm.Message)
		}
		return true
	}
	return false
}

// sendError reports a non-fatal error to the host.
func (b *Bridge) sendError(e *errors.Error) {
	msg := e.Message
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	} else if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if err := b.write((&protocol.ErrorMessage{Code: e.Code, Message: msg}).Frame()); err != nil {
		b.logger.Debug("error frame not sent", "error", err)
	}
}

func (b *Bridge) write(f *protocol.Frame) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return errors.New("L010")
	}
	return b.writeLocked(f)
}

func (b *Bridge) writeLocked(f *protocol.Frame) error {
	data, err := f.Encode()
	if err != nil {
		return errors.New("L021").WithDetailf("%s frame of %d bytes", f.Type, len(f.Payload)).Wrap(err)
	}
	if b.config.WriteTimeout > 0 {
		b.conn.SetWriteDeadline(time.Now().Add(b.config.WriteTimeout))
	}
	return b.conn.WriteMessage(websocket.BinaryMessage, data)
}

// Close closes the connection. Registrations still attached are considered
// gone with the host. Close is idempotent.
func (b *Bridge) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	b.writeLocked(protocol.EncodeClose(protocol.CloseNormal, ""))
	b.mu.Unlock()

	return b.conn.Close()
}
