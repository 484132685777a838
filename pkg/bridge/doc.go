// Package bridge connects listener handles to a remote host event system
// over a WebSocket.
//
// A Bridge is a listener.Registrar. Register sends a Listen frame to the
// remote host and Unregister sends Unlisten. Forget sends nothing: a
// forgotten registration stays attached on the host and keeps delivering.
//
//	b := bridge.New(conn, bridge.DefaultConfig())
//	h := events.OnClick(b, bridge.Target("inc"), func(events.Click) { count++ })
//	err := b.Serve(ctx) // delivers events until the connection ends
//
// Serve is the event loop: callbacks run on its goroutine, one at a time.
//
// Mirror is the other end of the wire for Go hosts. It applies Listen and
// Unlisten frames to a dom.Host and forwards the host's events back.
package bridge
