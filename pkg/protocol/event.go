package protocol

import (
	"maps"
	"slices"
)

// Event is an event delivered by the host for a registered token.
type Event struct {
	Token  uint64
	Type   string
	Target string
	Fields map[string]string
}

// Encode encodes the event to a payload. Fields are written in key order so
// equal events encode identically.
func (ev *Event) Encode() []byte {
	e := NewEncoder()
	e.WriteUvarint(ev.Token)
	e.WriteString(ev.Type)
	e.WriteString(ev.Target)
	e.WriteUvarint(uint64(len(ev.Fields)))
	for _, k := range slices.Sorted(maps.Keys(ev.Fields)) {
		e.WriteString(k)
		e.WriteString(ev.Fields[k])
	}
	return e.Bytes()
}

// Frame wraps the encoded event in a FrameEvent frame.
func (ev *Event) Frame() *Frame {
	return NewFrame(FrameEvent, ev.Encode())
}

// DecodeEvent decodes an event payload.
func DecodeEvent(payload []byte) (*Event, error) {
	d := NewDecoder(payload)
	var ev Event
	var err error

	if ev.Token, err = d.ReadUvarint(); err != nil {
		return nil, err
	}
	if ev.Type, err = d.ReadString(); err != nil {
		return nil, err
	}
	if ev.Target, err = d.ReadString(); err != nil {
		return nil, err
	}

	count, err := d.ReadCollectionCount(MaxFieldCount)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		ev.Fields = make(map[string]string, count)
	}
	for i := 0; i < count; i++ {
		k, err := d.ReadString()
		if err != nil {
			return nil, err
		}
		v, err := d.ReadString()
		if err != nil {
			return nil, err
		}
		ev.Fields[k] = v
	}

	if err := d.Done(); err != nil {
		return nil, err
	}
	return &ev, nil
}
