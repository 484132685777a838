package protocol

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestFrameEncodeDecode(t *testing.T) {
	tests := []struct {
		name    string
		frame   Frame
		wantLen int // expected total length including header
	}{
		{
			name:    "empty_payload",
			frame:   Frame{Type: FrameUnlisten, Payload: []byte{}},
			wantLen: FrameHeaderSize,
		},
		{
			name:    "with_payload",
			frame:   Frame{Type: FrameListen, Payload: []byte{0x01, 0x02, 0x03}},
			wantLen: FrameHeaderSize + 3,
		},
		{
			name:    "with_flags",
			frame:   Frame{Type: FrameControl, Flags: FrameFlags(0x0C), Payload: []byte("test")},
			wantLen: FrameHeaderSize + 4,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			encoded, err := tc.frame.Encode()
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if len(encoded) != tc.wantLen {
				t.Errorf("Encode() length = %d, want %d", len(encoded), tc.wantLen)
			}

			decoded, err := DecodeFrame(encoded)
			if err != nil {
				t.Fatalf("DecodeFrame() error = %v", err)
			}
			if decoded.Type != tc.frame.Type {
				t.Errorf("Decoded type = %v, want %v", decoded.Type, tc.frame.Type)
			}
			if decoded.Flags != tc.frame.Flags {
				t.Errorf("Decoded flags = %v, want %v", decoded.Flags, tc.frame.Flags)
			}
			if !bytes.Equal(decoded.Payload, tc.frame.Payload) {
				t.Errorf("Decoded payload = %v, want %v", decoded.Payload, tc.frame.Payload)
			}
		})
	}
}

func TestDecodeFrameErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"short_header", []byte{0x01, 0x00}, io.ErrUnexpectedEOF},
		{"short_payload", []byte{0x01, 0x00, 0x00, 0x05, 0x01}, io.ErrUnexpectedEOF},
		{"bad_type", []byte{0x09, 0x00, 0x00, 0x00}, ErrInvalidFrameType},
		{"zero_type", []byte{0x00, 0x00, 0x00, 0x00}, ErrInvalidFrameType},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeFrame(tc.data); !errors.Is(err, tc.want) {
				t.Errorf("DecodeFrame() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestFrameEncodeTooLarge(t *testing.T) {
	full := NewFrame(FrameEvent, make([]byte, MaxPayloadSize))
	data, err := full.Encode()
	if err != nil {
		t.Fatalf("Encode(max) error = %v", err)
	}
	got, err := DecodeFrame(data)
	if err != nil {
		t.Fatalf("DecodeFrame(max) error = %v", err)
	}
	if len(got.Payload) != MaxPayloadSize {
		t.Errorf("decoded payload = %d bytes, want %d", len(got.Payload), MaxPayloadSize)
	}

	big := NewFrame(FrameEvent, make([]byte, MaxPayloadSize+1))
	if data, err := big.Encode(); !errors.Is(err, ErrFrameTooLarge) || data != nil {
		t.Errorf("Encode(oversized) = %d bytes, %v, want ErrFrameTooLarge", len(data), err)
	}

	// An event whose fields overflow the length field must not encode.
	ev := &Event{Token: 1, Type: "input", Target: "name", Fields: map[string]string{
		"value": strings.Repeat("x", 70000),
	}}
	if _, err := ev.Frame().Encode(); !errors.Is(err, ErrFrameTooLarge) {
		t.Errorf("Encode(oversized event) error = %v, want ErrFrameTooLarge", err)
	}
}

func TestFrameTypeString(t *testing.T) {
	tests := []struct {
		ft   FrameType
		want string
	}{
		{FrameListen, "Listen"},
		{FrameUnlisten, "Unlisten"},
		{FrameEvent, "Event"},
		{FrameControl, "Control"},
		{FrameError, "Error"},
		{FrameType(0x7F), "Unknown"},
	}
	for _, tc := range tests {
		if got := tc.ft.String(); got != tc.want {
			t.Errorf("FrameType(%#x).String() = %q, want %q", uint8(tc.ft), got, tc.want)
		}
	}
}
