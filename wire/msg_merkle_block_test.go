// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"testing"
	"time"

	"github.com/libsv/go-bt/v2/chainhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMsgMerkleBlockRoundTrip(t *testing.T) {
	header := &BlockHeader{
		Version:   1,
		Timestamp: time.Unix(1231006505, 0),
		Bits:      0x1d00ffff,
		Nonce:     2083236893,
	}

	msg := NewMsgMerkleBlock(header)
	msg.Transactions = 1

	hash, err := chainhash.NewHashFromStr("0300000000000000000000000000000000000000000000000000000000000000")
	require.NoError(t, err)
	require.NoError(t, msg.AddTxHash(hash))

	msg.Flags = []byte{0x01}

	var buf bytes.Buffer
	require.NoError(t, msg.BsvEncode(&buf, ProtocolVersion))

	var got MsgMerkleBlock
	require.NoError(t, got.Bsvdecode(&buf, ProtocolVersion))

	assert.Equal(t, msg.Header.Version, got.Header.Version)
	assert.Equal(t, msg.Header.Bits, got.Header.Bits)
	assert.Equal(t, msg.Header.Nonce, got.Header.Nonce)
	assert.Equal(t, msg.Transactions, got.Transactions)
	require.Len(t, got.Hashes, 1)
	assert.Equal(t, *hash, *got.Hashes[0])
	assert.Equal(t, msg.Flags, got.Flags)
}

func TestBlockHeaderHash(t *testing.T) {
	header := &BlockHeader{Version: 1, Bits: 0x1d00ffff, Nonce: 1}
	h1 := header.BlockHash()
	h2 := header.BlockHash()

	assert.Equal(t, h1, h2)

	header.Nonce = 2
	assert.NotEqual(t, h1, header.BlockHash())
}
