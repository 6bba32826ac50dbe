package protocol

import (
	"encoding/binary"

	"lan-collab/domain"
	"lan-collab/errors"
)

const (
	// VideoHeaderSize is uid, sequence, frame id and payload length,
	// each a big-endian uint32.
	VideoHeaderSize = 16

	// AudioHeaderSize is uid, sequence and payload length.
	AudioHeaderSize = 12
)

// VideoPacket is one UDP video datagram. The payload is opaque encoded
// frame data; the relay never looks inside it.
type VideoPacket struct {
	UID      domain.UID
	Sequence uint32
	FrameID  uint32
	Payload  []byte
}

// DecodeVideoPacket parses a datagram. A declared payload length that does
// not match the remaining bytes is a violation; the caller drops the packet.
func DecodeVideoPacket(b []byte) (VideoPacket, error) {
	if len(b) < VideoHeaderSize {
		return VideoPacket{}, errors.ErrShortPacket
	}
	declared := binary.BigEndian.Uint32(b[12:16])
	payload := b[VideoHeaderSize:]
	if uint32(len(payload)) != declared {
		return VideoPacket{}, errors.ErrLengthMismatch
	}
	return VideoPacket{
		UID:      domain.UID(binary.BigEndian.Uint32(b[0:4])),
		Sequence: binary.BigEndian.Uint32(b[4:8]),
		FrameID:  binary.BigEndian.Uint32(b[8:12]),
		Payload:  payload,
	}, nil
}

func (p VideoPacket) Encode() []byte {
	buf := make([]byte, VideoHeaderSize+len(p.Payload))
	binary.BigEndian.PutUint32(buf[0:4], uint32(p.UID))
	binary.BigEndian.PutUint32(buf[4:8], p.Sequence)
	binary.BigEndian.PutUint32(buf[8:12], p.FrameID)
	binary.BigEndian.PutUint32(buf[12:16], uint32(len(p.Payload)))
	copy(buf[VideoHeaderSize:], p.Payload)
	return buf
}

// AudioPacket is one UDP audio datagram carrying raw PCM bytes.
type AudioPacket struct {
	UID      domain.UID
	Sequence uint32
	Payload  []byte
}

func DecodeAudioPacket(b []byte) (AudioPacket, error) {
	if len(b) < AudioHeaderSize {
		return AudioPacket{}, errors.ErrShortPacket
	}
	declared := binary.BigEndian.Uint32(b[8:12])
	payload := b[AudioHeaderSize:]
	if uint32(len(payload)) != declared {
		return AudioPacket{}, errors.ErrLengthMismatch
	}
	return AudioPacket{
		UID:      domain.UID(binary.BigEndian.Uint32(b[0:4])),
		Sequence: binary.BigEndian.Uint32(b[4:8]),
		Payload:  payload,
	}, nil
}

func (p AudioPacket) Encode() []byte {
	buf := make([]byte, AudioHeaderSize+len(p.Payload))
	binary.BigEndian.PutUint32(buf[0:4], uint32(p.UID))
	binary.BigEndian.PutUint32(buf[4:8], p.Sequence)
	binary.BigEndian.PutUint32(buf[8:12], uint32(len(p.Payload)))
	copy(buf[AudioHeaderSize:], p.Payload)
	return buf
}
