package protocol

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	// MaxFramePayload limits a single protocol frame payload.
	MaxFramePayload = 1 << 20 // 1 MiB

	// CompressThreshold is the payload size from which WriteFrame tries LZ4.
	CompressThreshold = 1 << 10

	// compressedFlag is set on the type byte when the payload is LZ4 data.
	compressedFlag = 0x80
)

var (
	ErrFrameTooLarge = errors.New("protocol frame payload too large")
	ErrInvalidType   = errors.New("protocol invalid message type")
)

// Frame is the basic wire container.
// Format:
//
//	1 byte: type (high bit set when the payload is LZ4 compressed)
//	4 bytes: payload length (big endian)
//	N bytes: payload
//
// Each request and response travels as exactly one frame.
type Frame struct {
	Type    MessageType
	Payload []byte
}

func WriteFrame(w io.Writer, f Frame) error {
	if !f.Type.valid() {
		return ErrInvalidType
	}
	if len(f.Payload) > MaxFramePayload {
		return ErrFrameTooLarge
	}

	typeByte := byte(f.Type)
	payload := f.Payload
	if len(payload) >= CompressThreshold {
		if c, err := Compress(payload); err == nil && len(c) < len(payload) {
			typeByte |= compressedFlag
			payload = c
		}
	}

	bw := bufio.NewWriter(w)
	if err := bw.WriteByte(typeByte); err != nil {
		return err
	}
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(payload)))
	if _, err := bw.Write(lenBuf[:]); err != nil {
		return err
	}
	if len(payload) > 0 {
		if _, err := bw.Write(payload); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadFrame reads exactly one frame and never consumes bytes past it.
func ReadFrame(r io.Reader) (Frame, error) {
	var header [5]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return Frame{}, err
	}
	compressed := header[0]&compressedFlag != 0
	mt := MessageType(header[0] &^ compressedFlag)
	if !mt.valid() {
		return Frame{}, ErrInvalidType
	}

	payloadLen := binary.BigEndian.Uint32(header[1:])
	if payloadLen > MaxFramePayload {
		return Frame{}, fmt.Errorf("%w: %d", ErrFrameTooLarge, payloadLen)
	}
	payload := make([]byte, payloadLen)
	if payloadLen > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return Frame{}, err
		}
	}
	if compressed {
		var err error
		payload, err = Decompress(payload, MaxFramePayload)
		if err != nil {
			return Frame{}, err
		}
	}
	return Frame{Type: mt, Payload: payload}, nil
}
