// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"io"
)

// maxHeadersPerMsg is the maximum number of headers a single headers message
// may carry, per the standard bitcoin wire protocol.
const maxHeadersPerMsg = 2000

// MsgHeaders implements the Message interface and represents a bitcoin
// headers message, the reply to getheaders.
type MsgHeaders struct {
	Headers []*BlockHeader
}

// AddBlockHeader appends a header to the message.
func (msg *MsgHeaders) AddBlockHeader(bh *BlockHeader) error {
	if len(msg.Headers)+1 > maxHeadersPerMsg {
		return messageError("MsgHeaders.AddBlockHeader", fmt.Sprintf(
			"too many block headers for message [max %v]", maxHeadersPerMsg))
	}

	msg.Headers = append(msg.Headers, bh)

	return nil
}

// Bsvdecode decodes r using the bitcoin protocol encoding into the receiver.
func (msg *MsgHeaders) Bsvdecode(r io.Reader, pver uint32) error {
	count, err := ReadVarInt(r, pver)
	if err != nil {
		return err
	}

	if count > maxHeadersPerMsg {
		return messageError("MsgHeaders.Bsvdecode", fmt.Sprintf(
			"too many block headers for message [count %v, max %v]",
			count, maxHeadersPerMsg))
	}

	headers := make([]BlockHeader, count)
	msg.Headers = make([]*BlockHeader, 0, count)

	for i := uint64(0); i < count; i++ {
		bh := &headers[i]

		if err := readBlockHeader(r, bh); err != nil {
			return err
		}

		// Every header is followed by a transaction count, which is
		// always zero in a headers message since only the header is
		// sent.
		txCount, err := ReadVarInt(r, pver)
		if err != nil {
			return err
		}

		if txCount != 0 {
			return messageError("MsgHeaders.Bsvdecode",
				fmt.Sprintf("block header transaction count is not zero [%v]", txCount))
		}

		if err := msg.AddBlockHeader(bh); err != nil {
			return err
		}
	}

	return nil
}

// BsvEncode encodes the receiver to w using the bitcoin protocol encoding.
func (msg *MsgHeaders) BsvEncode(w io.Writer, pver uint32) error {
	count := len(msg.Headers)
	if count > maxHeadersPerMsg {
		return messageError("MsgHeaders.BsvEncode", fmt.Sprintf(
			"too many block headers for message [count %v, max %v]",
			count, maxHeadersPerMsg))
	}

	if err := WriteVarInt(w, pver, uint64(count)); err != nil {
		return err
	}

	for _, bh := range msg.Headers {
		if err := writeBlockHeader(w, bh); err != nil {
			return err
		}

		if err := WriteVarInt(w, pver, 0); err != nil {
			return err
		}
	}

	return nil
}

// Command returns the protocol command string for the message.
func (msg *MsgHeaders) Command() string {
	return CmdHeaders
}

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver.
func (msg *MsgHeaders) MaxPayloadLength(_ uint32) uint64 {
	return 9 + maxHeadersPerMsg*uint64(BlockHeaderLen+1)
}

// NewMsgHeaders returns a new bitcoin headers message that conforms to the
// Message interface.
func NewMsgHeaders() *MsgHeaders {
	return &MsgHeaders{Headers: make([]*BlockHeader, 0, maxHeadersPerMsg)}
}
