// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"testing"

	"github.com/libsv/go-bt/v2/chainhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMsgInvRoundTrip(t *testing.T) {
	msg := NewMsgInv()
	hash, err := chainhash.NewHashFromStr("0100000000000000000000000000000000000000000000000000000000000000")
	require.NoError(t, err)

	require.NoError(t, msg.AddInvVect(NewInvVect(InvTypeFilteredBlock, hash)))
	assert.Len(t, msg.InvList, 1)

	var buf bytes.Buffer
	require.NoError(t, msg.BsvEncode(&buf, ProtocolVersion))

	var got MsgInv
	require.NoError(t, got.Bsvdecode(&buf, ProtocolVersion))

	require.Len(t, got.InvList, 1)
	assert.Equal(t, InvTypeFilteredBlock, got.InvList[0].Type)
	assert.Equal(t, *hash, got.InvList[0].Hash)
}

func TestInvTypeStringer(t *testing.T) {
	assert.Equal(t, "MSG_TX", InvTypeTx.String())
	assert.Equal(t, "MSG_FILTERED_BLOCK", InvTypeFilteredBlock.String())
}

func TestMsgGetDataRoundTrip(t *testing.T) {
	msg := NewMsgGetData()
	hash, err := chainhash.NewHashFromStr("0200000000000000000000000000000000000000000000000000000000000000")
	require.NoError(t, err)

	require.NoError(t, msg.AddInvVect(NewInvVect(InvTypeTx, hash)))

	var buf bytes.Buffer
	require.NoError(t, msg.BsvEncode(&buf, ProtocolVersion))

	var got MsgGetData
	require.NoError(t, got.Bsvdecode(&buf, ProtocolVersion))

	require.Len(t, got.InvList, 1)
	assert.Equal(t, InvTypeTx, got.InvList[0].Type)
}
