package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeHeaderAcceptsKnownCommand(t *testing.T) {
	hdr := &MessageHeader{Magic: MainNet, Command: CmdPing, Length: 0, Checksum: [4]byte{0x5d, 0xf6, 0xe0, 0xe2}}

	b, err := EncodeHeader(hdr)
	require.NoError(t, err)

	got, err := DecodeHeader(b, MainNet, maxMessagePayload())
	require.NoError(t, err)
	assert.Equal(t, CmdPing, got.Command)
}

func TestDecodeHeaderAcceptsUnknownPrintableCommand(t *testing.T) {
	hdr := &MessageHeader{Magic: MainNet, Command: "sendheaders", Checksum: [4]byte{0x5d, 0xf6, 0xe0, 0xe2}}

	b, err := EncodeHeader(hdr)
	require.NoError(t, err)

	got, err := DecodeHeader(b, MainNet, maxMessagePayload())
	require.NoError(t, err)
	assert.Equal(t, "sendheaders", got.Command)
}

func TestDecodeHeaderRejectsUnprintableCommand(t *testing.T) {
	hdr := &MessageHeader{Magic: MainNet, Command: "x\x01garbage", Checksum: [4]byte{0x5d, 0xf6, 0xe0, 0xe2}}

	b, err := EncodeHeader(hdr)
	require.NoError(t, err)

	_, err = DecodeHeader(b, MainNet, maxMessagePayload())
	require.Error(t, err)
}

func TestMessageHeaderValidate(t *testing.T) {
	require.NoError(t, (&MessageHeader{Command: CmdVersion}).Validate())
	require.NoError(t, (&MessageHeader{Command: "feefilter"}).Validate())
	require.Error(t, (&MessageHeader{Command: "bad\x00cmd"}).Validate())
}
