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

func TestMsgPongRoundTrip(t *testing.T) {
	msg := NewMsgPong(0xfeedface)
	assert.Equal(t, CmdPong, msg.Command())

	var buf bytes.Buffer
	require.NoError(t, msg.BsvEncode(&buf, ProtocolVersion))

	var got MsgPong
	require.NoError(t, got.Bsvdecode(&buf, ProtocolVersion))
	assert.Equal(t, msg.Nonce, got.Nonce)
}

func TestMsgPongRejectedBeforeBIP0031(t *testing.T) {
	msg := NewMsgPong(1)

	var buf bytes.Buffer
	err := msg.BsvEncode(&buf, BIP0031Version)
	require.Error(t, err)
}
