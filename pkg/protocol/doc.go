// Package protocol implements the binary wire protocol between a listen
// server and a remote host event system (typically a thin browser client).
//
// The server owns listener handles; the remote host owns the real event
// targets. Registrations flow server to host, events flow host to server.
//
// # Wire Format
//
// All messages are framed with a 4-byte header:
//
//	┌─────────────┬──────────────┬───────────────────────────────┐
//	│ Frame Type  │ Flags        │ Payload Length                │
//	│ (1 byte)    │ (1 byte)     │ (2 bytes, big-endian)         │
//	└─────────────┴──────────────┴───────────────────────────────┘
//
// Each WebSocket binary message carries exactly one frame. A payload longer
// than MaxPayloadSize cannot be framed; Encode rejects it.
//
// # Frame Types
//
//   - FrameListen (0x01): Server → Host, attach a listener
//   - FrameUnlisten (0x02): Server → Host, detach a listener
//   - FrameEvent (0x03): Host → Server, an event for a registered token
//   - FrameControl (0x04): Ping, pong, close
//   - FrameError (0x05): Error report, either direction
//
// # Encoding
//
//   - Varint: Compact encoding for tokens and counts (protobuf-style)
//   - Length-prefixed: Strings prefixed with varint length
//   - Big-endian: Fixed-width integers (uint16, uint64)
//
// Listen payload:
//
//	[Token: varint][Target: len-prefixed][Name: len-prefixed][Flags: 1 byte]
//
// Event payload:
//
//	[Token: varint][Type: len-prefixed][Target: len-prefixed]
//	[Count: varint]([Key: len-prefixed][Value: len-prefixed])*
//
// Forget has no frame: a forgotten registration stays attached on the host.
package protocol
