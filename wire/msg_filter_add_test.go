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

func TestMsgFilterAddRoundTrip(t *testing.T) {
	msg := NewMsgFilterAdd([]byte{0x01, 0x02, 0x03})
	assert.Equal(t, CmdFilterAdd, msg.Command())

	var buf bytes.Buffer
	require.NoError(t, msg.BsvEncode(&buf, ProtocolVersion))

	var got MsgFilterAdd
	require.NoError(t, got.Bsvdecode(&buf, ProtocolVersion))
	assert.Equal(t, msg.Data, got.Data)
}

func TestMsgFilterAddRejectsOversizeData(t *testing.T) {
	msg := NewMsgFilterAdd(make([]byte, maxFilterAddDataSize+1))

	var buf bytes.Buffer
	require.Error(t, msg.BsvEncode(&buf, ProtocolVersion))
}
