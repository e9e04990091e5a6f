// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"io"

	"github.com/libsv/go-bt/v2/chainhash"
)

// maxBlockLocatorsPerMsg bounds the number of locator hashes a getheaders
// message may carry.
const maxBlockLocatorsPerMsg = 500

// MsgGetHeaders implements the Message interface and represents a bitcoin
// getheaders message, used to request a chain of up to 2000 block headers
// starting after the best known locator hash.
type MsgGetHeaders struct {
	ProtocolVersion    uint32
	BlockLocatorHashes []*chainhash.Hash
	HashStop           chainhash.Hash
}

// AddBlockLocatorHash appends a locator hash to the message.
func (msg *MsgGetHeaders) AddBlockLocatorHash(hash *chainhash.Hash) error {
	if len(msg.BlockLocatorHashes)+1 > maxBlockLocatorsPerMsg {
		return messageError("MsgGetHeaders.AddBlockLocatorHash", fmt.Sprintf(
			"too many block locator hashes for message [max %v]", maxBlockLocatorsPerMsg))
	}

	msg.BlockLocatorHashes = append(msg.BlockLocatorHashes, hash)

	return nil
}

// Bsvdecode decodes r using the bitcoin protocol encoding into the receiver.
func (msg *MsgGetHeaders) Bsvdecode(r io.Reader, pver uint32) error {
	if err := readElement(r, &msg.ProtocolVersion); err != nil {
		return err
	}

	count, err := ReadVarInt(r, pver)
	if err != nil {
		return err
	}

	if count > maxBlockLocatorsPerMsg {
		return messageError("MsgGetHeaders.Bsvdecode", fmt.Sprintf(
			"too many block locator hashes for message [count %v, max %v]",
			count, maxBlockLocatorsPerMsg))
	}

	locators := make([]chainhash.Hash, count)
	msg.BlockLocatorHashes = make([]*chainhash.Hash, 0, count)

	for i := uint64(0); i < count; i++ {
		hash := &locators[i]

		if err := readElement(r, hash); err != nil {
			return err
		}

		if err := msg.AddBlockLocatorHash(hash); err != nil {
			return err
		}
	}

	return readElement(r, &msg.HashStop)
}

// BsvEncode encodes the receiver to w using the bitcoin protocol encoding.
func (msg *MsgGetHeaders) BsvEncode(w io.Writer, pver uint32) error {
	count := len(msg.BlockLocatorHashes)
	if count > maxBlockLocatorsPerMsg {
		return messageError("MsgGetHeaders.BsvEncode", fmt.Sprintf(
			"too many block locator hashes for message [count %v, max %v]",
			count, maxBlockLocatorsPerMsg))
	}

	if err := writeElement(w, msg.ProtocolVersion); err != nil {
		return err
	}

	if err := WriteVarInt(w, pver, uint64(count)); err != nil {
		return err
	}

	for _, hash := range msg.BlockLocatorHashes {
		if err := writeElement(w, hash); err != nil {
			return err
		}
	}

	return writeElement(w, &msg.HashStop)
}

// Command returns the protocol command string for the message.
func (msg *MsgGetHeaders) Command() string {
	return CmdGetHeaders
}

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver.
func (msg *MsgGetHeaders) MaxPayloadLength(_ uint32) uint64 {
	return 4 + 9 + maxBlockLocatorsPerMsg*uint64(chainhash.HashSize) + uint64(chainhash.HashSize)
}

// NewMsgGetHeaders returns a new bitcoin getheaders message that conforms to
// the Message interface.
func NewMsgGetHeaders() *MsgGetHeaders {
	return &MsgGetHeaders{
		BlockLocatorHashes: make([]*chainhash.Hash, 0, maxBlockLocatorsPerMsg),
	}
}
