// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"io"
	"time"

	"github.com/libsv/go-bt/v2/chainhash"
)

// BlockHeaderLen is the number of bytes in a serialized block header.
const BlockHeaderLen = 80

// BlockHeader defines information about a block and is used in the bitcoin
// block (MsgBlock) and headers (MsgHeaders) messages, and is embedded in
// MsgMerkleBlock.
type BlockHeader struct {
	Version    int32
	PrevBlock  chainhash.Hash
	MerkleRoot chainhash.Hash
	Timestamp  time.Time
	Bits       uint32
	Nonce      uint32
}

// BlockHash computes the block identifier hash for the header.
func (h *BlockHeader) BlockHash() chainhash.Hash {
	var buf bytes.Buffer
	_ = writeBlockHeader(&buf, h)

	return chainhash.DoubleHashH(buf.Bytes())
}

func readBlockHeader(r io.Reader, h *BlockHeader) error {
	if err := readElement(r, &h.Version); err != nil {
		return err
	}

	if err := readElement(r, &h.PrevBlock); err != nil {
		return err
	}

	if err := readElement(r, &h.MerkleRoot); err != nil {
		return err
	}

	var stamp uint32
	if err := readElement(r, &stamp); err != nil {
		return err
	}

	h.Timestamp = time.Unix(int64(stamp), 0)

	if err := readElement(r, &h.Bits); err != nil {
		return err
	}

	return readElement(r, &h.Nonce)
}

func writeBlockHeader(w io.Writer, h *BlockHeader) error {
	if err := writeElement(w, h.Version); err != nil {
		return err
	}

	if err := writeElement(w, &h.PrevBlock); err != nil {
		return err
	}

	if err := writeElement(w, &h.MerkleRoot); err != nil {
		return err
	}

	if err := writeElement(w, uint32(h.Timestamp.Unix())); err != nil { //nolint:gosec // unix time fits uint32 until 2106
		return err
	}

	if err := writeElement(w, h.Bits); err != nil {
		return err
	}

	return writeElement(w, h.Nonce)
}
