package protocol

// Listen asks the host to attach a listener.
type Listen struct {
	Token  uint64
	Target string
	Name   string
	Flags  uint8
}

// Unlisten asks the host to detach a listener.
type Unlisten struct {
	Token uint64
}

// Encode encodes the listen request to a payload.
func (l *Listen) Encode() []byte {
	e := NewEncoder()
	e.WriteUvarint(l.Token)
	e.WriteString(l.Target)
	e.WriteString(l.Name)
	e.WriteByte(l.Flags)
	return e.Bytes()
}

// Frame wraps the encoded request in a FrameListen frame.
func (l *Listen) Frame() *Frame {
	return NewFrame(FrameListen, l.Encode())
}

// DecodeListen decodes a listen payload.
func DecodeListen(payload []byte) (*Listen, error) {
	d := NewDecoder(payload)
	var l Listen
	var err error

	if l.Token, err = d.ReadUvarint(); err != nil {
		return nil, err
	}
	if l.Target, err = d.ReadString(); err != nil {
		return nil, err
	}
	if l.Name, err = d.ReadString(); err != nil {
		return nil, err
	}
	if l.Flags, err = d.ReadByte(); err != nil {
		return nil, err
	}
	if err := d.Done(); err != nil {
		return nil, err
	}
	return &l, nil
}

// Encode encodes the unlisten request to a payload.
func (u *Unlisten) Encode() []byte {
	e := NewEncoder()
	e.WriteUvarint(u.Token)
	return e.Bytes()
}

// Frame wraps the encoded request in a FrameUnlisten frame.
func (u *Unlisten) Frame() *Frame {
	return NewFrame(FrameUnlisten, u.Encode())
}

// DecodeUnlisten decodes an unlisten payload.
func DecodeUnlisten(payload []byte) (*Unlisten, error) {
	d := NewDecoder(payload)
	token, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	if err := d.Done(); err != nil {
		return nil, err
	}
	return &Unlisten{Token: token}, nil
}
