// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"io"

	"github.com/libsv/go-bt/v2/chainhash"
)

// maxTxPerMerkleBlock bounds the number of hashes a merkle block may carry.
// A real block can't have more transactions than fit in MaxBlockPayload at
// ~60 bytes each; this is a generous ceiling that exists purely to stop a
// forged count field from driving an enormous allocation.
const maxTxPerMerkleBlock = 1_000_000

// maxFlagsPerMerkleBlock is the maximum number of flag bytes that could
// possibly accompany a merkle block: one bit per transaction, so the
// transaction ceiling divided by 8 bits per byte, plus one to cover
// partial bytes.
const maxFlagsPerMerkleBlock = maxTxPerMerkleBlock/8 + 1

// maxMerkleBlockPayload is the maximum size, in bytes, a merkleblock message
// may occupy: fixed 80-byte header, transaction count, hash count + hashes,
// and flag bytes.
func maxMerkleBlockPayload() uint64 {
	return uint64(BlockHeaderLen) + 4 + 9 + maxTxPerMerkleBlock*chainhash.HashSize + 9 + maxFlagsPerMerkleBlock
}

// MsgMerkleBlock implements the Message interface and represents a bitcoin
// merkleblock message, used to deliver a block header together with the
// minimal partial merkle tree proving which transactions a bloom filter
// matched.
type MsgMerkleBlock struct {
	Header       BlockHeader
	Transactions uint32
	Hashes       []*chainhash.Hash
	Flags        []byte
}

// AddTxHash appends a transaction hash to the message.
func (msg *MsgMerkleBlock) AddTxHash(hash *chainhash.Hash) error {
	if uint64(len(msg.Hashes))+1 > maxTxPerMerkleBlock {
		return messageError("MsgMerkleBlock.AddTxHash", fmt.Sprintf(
			"too many tx hashes for message [max %v]", maxTxPerMerkleBlock))
	}

	msg.Hashes = append(msg.Hashes, hash)

	return nil
}

// Bsvdecode decodes r using the bitcoin protocol encoding into the receiver.
func (msg *MsgMerkleBlock) Bsvdecode(r io.Reader, _ uint32) error {
	if err := readBlockHeader(r, &msg.Header); err != nil {
		return err
	}

	if err := readElement(r, &msg.Transactions); err != nil {
		return err
	}

	count, err := ReadVarInt(r, 0)
	if err != nil {
		return err
	}

	if count > maxTxPerMerkleBlock {
		return messageError("MsgMerkleBlock.Bsvdecode", fmt.Sprintf(
			"too many transaction hashes for message [count %v, max %v]",
			count, maxTxPerMerkleBlock))
	}

	hashes := make([]chainhash.Hash, count)
	msg.Hashes = make([]*chainhash.Hash, 0, count)

	for i := uint64(0); i < count; i++ {
		hash := &hashes[i]

		if err := readElement(r, hash); err != nil {
			return err
		}

		if err := msg.AddTxHash(hash); err != nil {
			return err
		}
	}

	msg.Flags, err = ReadVarBytes(r, 0, maxFlagsPerMerkleBlock, "merkle block flags size")

	return err
}

// BsvEncode encodes the receiver to w using the bitcoin protocol encoding.
func (msg *MsgMerkleBlock) BsvEncode(w io.Writer, _ uint32) error {
	numHashes := len(msg.Hashes)
	if numHashes > maxTxPerMerkleBlock {
		return messageError("MsgMerkleBlock.BsvEncode", fmt.Sprintf(
			"too many transaction hashes for message [count %v, max %v]",
			numHashes, maxTxPerMerkleBlock))
	}

	numFlagBytes := len(msg.Flags)
	if numFlagBytes > maxFlagsPerMerkleBlock {
		return messageError("MsgMerkleBlock.BsvEncode", fmt.Sprintf(
			"too many flag bytes for message [count %v, max %v]",
			numFlagBytes, maxFlagsPerMerkleBlock))
	}

	if err := writeBlockHeader(w, &msg.Header); err != nil {
		return err
	}

	if err := writeElement(w, msg.Transactions); err != nil {
		return err
	}

	if err := WriteVarInt(w, 0, uint64(numHashes)); err != nil {
		return err
	}

	for _, hash := range msg.Hashes {
		if err := writeElement(w, hash); err != nil {
			return err
		}
	}

	return WriteVarBytes(w, 0, msg.Flags)
}

// Command returns the protocol command string for the message.
func (msg *MsgMerkleBlock) Command() string {
	return CmdMerkleBlock
}

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver.
func (msg *MsgMerkleBlock) MaxPayloadLength(_ uint32) uint64 {
	return maxMerkleBlockPayload()
}

// NewMsgMerkleBlock returns a new bitcoin merkleblock message that conforms
// to the Message interface.
func NewMsgMerkleBlock(bh *BlockHeader) *MsgMerkleBlock {
	return &MsgMerkleBlock{
		Header:       *bh,
		Transactions: 0,
		Hashes:       make([]*chainhash.Hash, 0),
		Flags:        make([]byte, 0),
	}
}
