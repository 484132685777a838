package protocol

// ErrorMessage reports a failure to the other side.
type ErrorMessage struct {
	Code    string // Registry code, e.g. "L022"
	Message string
	Fatal   bool // Connection will be closed
}

// Encode encodes the error message to a payload.
func (em *ErrorMessage) Encode() []byte {
	e := NewEncoder()
	e.WriteString(em.Code)
	e.WriteString(em.Message)
	e.WriteBool(em.Fatal)
	return e.Bytes()
}

// Frame wraps the encoded message in a FrameError frame.
func (em *ErrorMessage) Frame() *Frame {
	return NewFrame(FrameError, em.Encode())
}

// DecodeErrorMessage decodes an error payload.
func DecodeErrorMessage(payload []byte) (*ErrorMessage, error) {
	d := NewDecoder(payload)
	var em ErrorMessage
	var err error

	if em.Code, err = d.ReadString(); err != nil {
		return nil, err
	}
	if em.Message, err = d.ReadString(); err != nil {
		return nil, err
	}
	if em.Fatal, err = d.ReadBool(); err != nil {
		return nil, err
	}
	return &em, nil
}
