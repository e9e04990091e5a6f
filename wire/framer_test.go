package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFramerYieldsMessagesInOrderRegardlessOfChunking(t *testing.T) {
	msgs := []Message{
		NewMsgVerAck(),
		NewMsgPing(42),
		NewMsgPong(42),
	}

	var encoded []byte

	for _, m := range msgs {
		b, err := EncodeMessage(m, ProtocolVersion, MainNet)
		require.NoError(t, err)
		encoded = append(encoded, b...)
	}

	// Feed the concatenated stream in small, irregular chunks to prove
	// the framer doesn't care about alignment with message boundaries.
	f := NewFramer(MainNet, ProtocolVersion, maxMessagePayload())

	const chunkSize = 3
	for i := 0; i < len(encoded); i += chunkSize {
		end := i + chunkSize
		if end > len(encoded) {
			end = len(encoded)
		}

		f.Feed(encoded[i:end])
	}

	var got []Message
	for {
		msg, ok, err := f.Next()
		require.NoError(t, err)

		if !ok {
			break
		}

		got = append(got, msg)
	}

	require.Len(t, got, len(msgs))

	for i, m := range msgs {
		assert.Equal(t, m.Command(), got[i].Command())
	}
}

func TestFramerNeedsMoreBytes(t *testing.T) {
	f := NewFramer(MainNet, ProtocolVersion, maxMessagePayload())

	b, err := EncodeMessage(NewMsgVerAck(), ProtocolVersion, MainNet)
	require.NoError(t, err)

	f.Feed(b[:len(b)-1])

	_, ok, err := f.Next()
	require.NoError(t, err)
	assert.False(t, ok)

	f.Feed(b[len(b)-1:])

	_, ok, err = f.Next()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFramerRejectsCorruptChecksum(t *testing.T) {
	f := NewFramer(MainNet, ProtocolVersion, maxMessagePayload())

	b, err := EncodeMessage(NewMsgPing(1), ProtocolVersion, MainNet)
	require.NoError(t, err)

	// Flip a payload byte without updating the checksum.
	b[MessageHeaderSize] ^= 0xff
	f.Feed(b)

	_, _, err = f.Next()
	require.Error(t, err)
	assert.True(t, f.Broken())

	// The framer stays broken on every subsequent call.
	_, _, err2 := f.Next()
	require.Error(t, err2)
}

func TestFramerRejectsWrongNetwork(t *testing.T) {
	f := NewFramer(TestNet3, ProtocolVersion, maxMessagePayload())

	b, err := EncodeMessage(NewMsgVerAck(), ProtocolVersion, MainNet)
	require.NoError(t, err)

	f.Feed(b)

	_, _, err = f.Next()
	require.Error(t, err)
}
