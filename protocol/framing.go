// Package protocol defines the wire formats shared by the server and its
// clients: length-prefixed control frames, UDP media packet headers, and
// the screen-share role handshake.
package protocol

import (
	"encoding/binary"
	"io"

	"lan-collab/errors"
)

const (
	// MaxControlFrame is the hard cap on a control-plane frame. A larger
	// length prefix is a protocol violation and the connection is abandoned.
	MaxControlFrame = 1 << 20

	// MaxScreenFrame bounds a single screen-share frame blob.
	MaxScreenFrame = 8 << 20
)

// ReadFrame reads one length-prefixed frame: a 4-byte big-endian length
// followed by that many payload bytes.
func ReadFrame(r io.Reader, max uint32) ([]byte, error) {
	var head [4]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return nil, err
	}
	size := binary.BigEndian.Uint32(head[:])
	if size > max {
		return nil, errors.ErrFrameTooLarge
	}
	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// WriteFrame writes the length prefix and payload as a single Write call
// so concurrent writers never interleave partial frames.
func WriteFrame(w io.Writer, payload []byte) error {
	buf := make([]byte, 4+len(payload))
	binary.BigEndian.PutUint32(buf, uint32(len(payload)))
	copy(buf[4:], payload)
	_, err := w.Write(buf)
	return err
}
