// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMsgVerAck(t *testing.T) {
	msg := NewMsgVerAck()
	assert.Equal(t, CmdVerAck, msg.Command())
	assert.EqualValues(t, 0, msg.MaxPayloadLength(ProtocolVersion))

	var buf bytes.Buffer
	require.NoError(t, msg.BsvEncode(&buf, ProtocolVersion))
	assert.Zero(t, buf.Len())

	var got MsgVerAck
	require.NoError(t, got.Bsvdecode(&buf, ProtocolVersion))
}

func TestMsgVerAckWireMessage(t *testing.T) {
	b, err := EncodeMessage(NewMsgVerAck(), ProtocolVersion, MainNet)
	require.NoError(t, err)
	assert.Len(t, b, MessageHeaderSize)

	msg, _, err := ReadMessage(bytes.NewReader(b), ProtocolVersion, MainNet)
	require.NoError(t, err)
	assert.Equal(t, CmdVerAck, msg.Command())
}
