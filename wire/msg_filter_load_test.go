// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMsgFilterLoadRoundTrip(t *testing.T) {
	msg := NewMsgFilterLoad([]byte{0xaa, 0xbb}, 5, 0x12345678, BloomUpdateAll)
	assert.Equal(t, CmdFilterLoad, msg.Command())

	var buf bytes.Buffer
	require.NoError(t, msg.BsvEncode(&buf, ProtocolVersion))

	var got MsgFilterLoad
	require.NoError(t, got.Bsvdecode(&buf, ProtocolVersion))

	assert.Equal(t, msg.Filter, got.Filter)
	assert.Equal(t, msg.HashFuncs, got.HashFuncs)
	assert.Equal(t, msg.Tweak, got.Tweak)
	assert.Equal(t, msg.Flags, got.Flags)
}

func TestMsgFilterLoadRejectsTooManyHashFuncs(t *testing.T) {
	msg := NewMsgFilterLoad([]byte{0x01}, maxFilterLoadHashFuncs+1, 0, BloomUpdateNone)

	var buf bytes.Buffer
	require.Error(t, msg.BsvEncode(&buf, ProtocolVersion))
}
