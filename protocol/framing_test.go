package protocol

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"lan-collab/errors"
)

func TestFrame_Roundtrip(t *testing.T) {
	req := require.New(t)
	var buf bytes.Buffer

	payload := []byte(`{"type":"heartbeat"}`)
	req.NoError(WriteFrame(&buf, payload))

	got, err := ReadFrame(&buf, MaxControlFrame)
	req.NoError(err)
	req.Equal(payload, got)
}

func TestFrame_Empty_Payload(t *testing.T) {
	req := require.New(t)
	var buf bytes.Buffer

	req.NoError(WriteFrame(&buf, nil))

	got, err := ReadFrame(&buf, MaxControlFrame)
	req.NoError(err)
	req.Empty(got)
}

func TestReadFrame_Rejects_Oversized_Prefix(t *testing.T) {
	req := require.New(t)

	// Given a length prefix above the control-plane cap
	var head [4]byte
	binary.BigEndian.PutUint32(head[:], MaxControlFrame+1)

	_, err := ReadFrame(bytes.NewReader(head[:]), MaxControlFrame)
	req.ErrorIs(err, errors.ErrFrameTooLarge)
}

func TestReadFrame_Truncated_Payload(t *testing.T) {
	req := require.New(t)

	var head [4]byte
	binary.BigEndian.PutUint32(head[:], 100)
	data := append(head[:], []byte("short")...)

	_, err := ReadFrame(bytes.NewReader(data), MaxControlFrame)
	req.Error(err)
}
