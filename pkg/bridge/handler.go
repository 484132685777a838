package bridge

import (
	"context"
	"net/http"
	"runtime/debug"

	"github.com/gorilla/websocket"
	"github.com/vango-dev/listen/internal/errors"
	"github.com/vango-dev/listen/pkg/discard"
)

// BindFunc attaches the listeners of one session and returns the resources
// owning them. It runs before the session's event loop starts.
type BindFunc func(ctx context.Context, b *Bridge) discard.Discarder

// Handler upgrades HTTP requests to WebSocket sessions.
//
// Each session gets its own Bridge. When the connection ends, the resources
// returned by Bind are dropped: the host and its registrations are gone, so
// nothing is left to unregister.
type Handler struct {
	Upgrader websocket.Upgrader
	Config   Config
	Bind     BindFunc

	// OnSession, if set, is called with the bridge of every new session and
	// again with nil error when the session ends cleanly.
	OnSession func(b *Bridge, err error)
}

// NewHandler creates a Handler with the given config and bind function.
func NewHandler(config Config, bind BindFunc) *Handler {
	return &Handler{
		Upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
		Config: config,
		Bind:   bind,
	}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := h.Config.logger()

	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", "error", err, "remote", r.RemoteAddr)
		return
	}

	b := New(conn, h.Config)
	defer b.Close()

	// A fatal listener error ends this session only.
	defer func() {
		if rec := recover(); rec != nil {
			attrs := []any{"panic", rec, "remote", r.RemoteAddr}
			if e, ok := errors.FromPanic(rec); ok {
				attrs = append(attrs, "code", e.Code)
			} else {
				attrs = append(attrs, "stack", string(debug.Stack()))
			}
			logger.Error("session aborted", attrs...)
			if h.OnSession != nil {
				h.OnSession(b, errors.Newf(errors.CategoryHost, "session aborted: %v", rec))
			}
		}
	}()

	ctx := r.Context()
	var root discard.Discarder
	if h.Bind != nil {
		root = h.Bind(ctx, b)
	}
	if h.OnSession != nil {
		h.OnSession(b, nil)
	}

	err = b.Serve(ctx)
	if d, ok := root.(discard.Dropper); ok {
		d.Drop()
	}
	if err != nil {
		logger.Warn("session ended with error", "error", err, "remote", r.RemoteAddr)
	}
	if h.OnSession != nil {
		h.OnSession(b, err)
	}
}
