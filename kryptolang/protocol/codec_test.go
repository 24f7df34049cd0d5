package protocol

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	in := Frame{Type: MessageTypeResult, Payload: []byte("ok")}
	if err := WriteFrame(&buf, in); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	if buf.Bytes()[0] != byte(MessageTypeResult) {
		t.Fatalf("small payloads must not be compressed")
	}
	out, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if out.Type != in.Type {
		t.Fatalf("type mismatch")
	}
	if !bytes.Equal(out.Payload, in.Payload) {
		t.Fatalf("payload mismatch")
	}
}

func TestFrameCompressed(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte(strings.Repeat("nalir lamar-lasust ", 200))
	if err := WriteFrame(&buf, Frame{Type: MessageTypeCipher, Payload: payload}); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	if buf.Bytes()[0]&compressedFlag == 0 {
		t.Fatalf("expected compressed flag")
	}
	if buf.Len() >= len(payload) {
		t.Fatalf("compressed frame is not smaller: %d >= %d", buf.Len(), len(payload))
	}
	out, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if out.Type != MessageTypeCipher || !bytes.Equal(out.Payload, payload) {
		t.Fatalf("compressed round trip mismatch")
	}
}

func TestReadFrameDoesNotOverRead(t *testing.T) {
	var buf bytes.Buffer
	_ = WriteFrame(&buf, Frame{Type: MessageTypeParse, Payload: []byte("one")})
	_ = WriteFrame(&buf, Frame{Type: MessageTypeParse, Payload: []byte("two")})

	for _, want := range []string{"one", "two"} {
		f, err := ReadFrame(&buf)
		if err != nil {
			t.Fatalf("ReadFrame: %v", err)
		}
		if string(f.Payload) != want {
			t.Fatalf("got %q want %q", f.Payload, want)
		}
	}
}

func TestFrameErrors(t *testing.T) {
	if err := WriteFrame(&bytes.Buffer{}, Frame{}); err != ErrInvalidType {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
	if err := WriteFrame(&bytes.Buffer{}, Frame{Type: 99}); err != ErrInvalidType {
		t.Fatalf("expected ErrInvalidType for unknown type, got %v", err)
	}
	big := Frame{Type: MessageTypeResult, Payload: make([]byte, MaxFramePayload+1)}
	if err := WriteFrame(&bytes.Buffer{}, big); err != ErrFrameTooLarge {
		t.Fatalf("expected ErrFrameTooLarge, got %v", err)
	}

	hdr := []byte{byte(MessageTypeResult), 0xff, 0xff, 0xff, 0xff}
	if _, err := ReadFrame(bytes.NewReader(hdr)); !errors.Is(err, ErrFrameTooLarge) {
		t.Fatalf("expected ErrFrameTooLarge, got %v", err)
	}
	if _, err := ReadFrame(bytes.NewReader([]byte{0, 0, 0, 0, 0})); err != ErrInvalidType {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
}

func TestCompressRoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte("kryptolang "), 1000)
	c, err := Compress(data)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	d, err := Decompress(c, len(data))
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(d, data) {
		t.Fatalf("round trip mismatch")
	}
	if _, err := Decompress(c, len(data)-1); err != ErrFrameTooLarge {
		t.Fatalf("expected limit to be enforced, got %v", err)
	}
}
