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

func TestRejectCodeStringer(t *testing.T) {
	tests := []struct {
		in   RejectCode
		want string
	}{
		{RejectMalformed, "REJECT_MALFORMED"},
		{RejectInvalid, "REJECT_INVALID"},
		{RejectDuplicate, "REJECT_DUPLICATE"},
		{RejectInsufficientFee, "REJECT_INSUFFICIENTFEE"},
		{0xff, "Unknown RejectCode (255)"},
	}

	for i, test := range tests {
		assert.Equalf(t, test.want, test.in.String(), "case %d", i)
	}
}

func TestMsgRejectRoundTripWithHash(t *testing.T) {
	msg := NewMsgReject(CmdTx, RejectDuplicate, "already have transaction")
	msg.Hash[0] = 0xab

	var buf bytes.Buffer
	require.NoError(t, msg.BsvEncode(&buf, ProtocolVersion))

	var got MsgReject
	require.NoError(t, got.Bsvdecode(&buf, ProtocolVersion))

	assert.Equal(t, msg.Cmd, got.Cmd)
	assert.Equal(t, msg.Code, got.Code)
	assert.Equal(t, msg.Reason, got.Reason)
	assert.Equal(t, msg.Hash, got.Hash)
}

func TestMsgRejectRoundTripWithoutHash(t *testing.T) {
	msg := NewMsgReject(CmdVersion, RejectObsolete, "version too old")

	var buf bytes.Buffer
	require.NoError(t, msg.BsvEncode(&buf, ProtocolVersion))

	var got MsgReject
	require.NoError(t, got.Bsvdecode(&buf, ProtocolVersion))

	assert.Equal(t, msg.Cmd, got.Cmd)
	assert.Equal(t, msg.Code, got.Code)
	assert.Equal(t, msg.Reason, got.Reason)
	assert.Equal(t, [32]byte{}, got.Hash)
}
