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

func TestVarIntRoundTrip(t *testing.T) {
	tests := []uint64{0, 1, 0xfc, 0xfd, 0xffff, 0x10000, 0xffffffff, 0x100000000, 0xffffffffffffffff}

	for _, val := range tests {
		var buf bytes.Buffer
		require.NoError(t, WriteVarInt(&buf, 0, val))

		got, err := ReadVarInt(&buf, 0)
		require.NoError(t, err)
		assert.Equal(t, val, got)
	}
}

func TestVarIntNonMinimalRejected(t *testing.T) {
	// 0xfd prefix encoding a value that fits in a single byte is non-minimal.
	buf := bytes.NewReader([]byte{0xfd, 0x0a, 0x00})

	_, err := ReadVarInt(buf, 0)
	require.Error(t, err)
}

func TestVarStringRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteVarString(&buf, 0, "/spvwallet:0.1.0/"))

	got, err := ReadVarString(&buf, 0)
	require.NoError(t, err)
	assert.Equal(t, "/spvwallet:0.1.0/", got)
}

func TestVarBytesRoundTrip(t *testing.T) {
	payload := []byte{0x01, 0x02, 0x03, 0x04}

	var buf bytes.Buffer
	require.NoError(t, WriteVarBytes(&buf, 0, payload))

	got, err := ReadVarBytes(&buf, 0, 100, "test")
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestVarBytesRejectsOversize(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteVarBytes(&buf, 0, make([]byte, 10)))

	_, err := ReadVarBytes(&buf, 0, 5, "test")
	require.Error(t, err)
}

func TestRandomUint64(t *testing.T) {
	a, err := RandomUint64()
	require.NoError(t, err)

	b, err := RandomUint64()
	require.NoError(t, err)

	// Not a strict guarantee, but a collision here would indicate a
	// broken random source.
	assert.NotEqual(t, a, b)
}
