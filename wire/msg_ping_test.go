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

func TestMsgPingRoundTrip(t *testing.T) {
	msg := NewMsgPing(0x1234567890abcdef)
	assert.Equal(t, CmdPing, msg.Command())

	var buf bytes.Buffer
	require.NoError(t, msg.BsvEncode(&buf, ProtocolVersion))

	var got MsgPing
	require.NoError(t, got.Bsvdecode(&buf, ProtocolVersion))
	assert.Equal(t, msg.Nonce, got.Nonce)
}
