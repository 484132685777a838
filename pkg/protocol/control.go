package protocol

import "errors"

// ControlType identifies the type of control message.
type ControlType uint8

const (
	ControlPing  ControlType = 0x01 // Ping
	ControlPong  ControlType = 0x02 // Response to ping
	ControlClose ControlType = 0x20 // Session close
)

// String returns the string representation of the control type.
func (ct ControlType) String() string {
	switch ct {
	case ControlPing:
		return "Ping"
	case ControlPong:
		return "Pong"
	case ControlClose:
		return "Close"
	default:
		return "Unknown"
	}
}

// CloseReason indicates why a session is being closed.
type CloseReason uint8

const (
	CloseNormal         CloseReason = 0x00 // Normal closure
	CloseGoingAway      CloseReason = 0x01 // Client/server going away
	CloseServerShutdown CloseReason = 0x03 // Server shutting down
	CloseError          CloseReason = 0x04 // Error occurred
)

// String returns the string representation of the close reason.
func (cr CloseReason) String() string {
	switch cr {
	case CloseNormal:
		return "Normal"
	case CloseGoingAway:
		return "GoingAway"
	case CloseServerShutdown:
		return "ServerShutdown"
	case CloseError:
		return "Error"
	default:
		return "Unknown"
	}
}

// ErrUnknownControl is returned for unrecognized control types.
var ErrUnknownControl = errors.New("protocol: unknown control type")

// PingPong is the payload for Ping and Pong messages.
type PingPong struct {
	Timestamp uint64 // Unix timestamp in milliseconds
}

// CloseMessage is the payload for Close messages.
type CloseMessage struct {
	Reason  CloseReason
	Message string
}

// EncodePing builds a Ping control frame.
func EncodePing(timestamp uint64) *Frame {
	return encodePingPong(ControlPing, timestamp)
}

// EncodePong builds a Pong control frame.
func EncodePong(timestamp uint64) *Frame {
	return encodePingPong(ControlPong, timestamp)
}

func encodePingPong(ct ControlType, timestamp uint64) *Frame {
	e := NewEncoder()
	e.WriteByte(byte(ct))
	e.WriteUint64(timestamp)
	return NewFrame(FrameControl, e.Bytes())
}

// EncodeClose builds a Close control frame.
func EncodeClose(reason CloseReason, message string) *Frame {
	e := NewEncoder()
	e.WriteByte(byte(ControlClose))
	e.WriteByte(byte(reason))
	e.WriteString(message)
	return NewFrame(FrameControl, e.Bytes())
}

// DecodeControl decodes a control payload. The returned value is a
// *PingPong for ping and pong, or a *CloseMessage for close.
func DecodeControl(payload []byte) (ControlType, any, error) {
	d := NewDecoder(payload)
	b, err := d.ReadByte()
	if err != nil {
		return 0, nil, err
	}
	ct := ControlType(b)

	switch ct {
	case ControlPing, ControlPong:
		ts, err := d.ReadUint64()
		if err != nil {
			return 0, nil, err
		}
		return ct, &PingPong{Timestamp: ts}, nil

	case ControlClose:
		reason, err := d.ReadByte()
		if err != nil {
			return 0, nil, err
		}
		msg, err := d.ReadString()
		if err != nil {
			return 0, nil, err
		}
		return ct, &CloseMessage{Reason: CloseReason(reason), Message: msg}, nil

	default:
		return 0, nil, ErrUnknownControl
	}
}
