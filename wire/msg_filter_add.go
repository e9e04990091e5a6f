// Copyright (c) 2014-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"io"
)

// maxFilterAddDataSize bounds a single filteradd element, per BIP0037.
const maxFilterAddDataSize = 520

// MsgFilterAdd implements the Message interface and represents a bitcoin
// filteradd message, used to add a single element to an already-loaded
// bloom filter without resending the whole thing.
type MsgFilterAdd struct {
	Data []byte
}

// Bsvdecode decodes r using the bitcoin protocol encoding into the receiver.
func (msg *MsgFilterAdd) Bsvdecode(r io.Reader, pver uint32) error {
	data, err := ReadVarBytes(r, pver, maxFilterAddDataSize, "filteradd data")
	if err != nil {
		return err
	}

	msg.Data = data

	return nil
}

// BsvEncode encodes the receiver to w using the bitcoin protocol encoding.
func (msg *MsgFilterAdd) BsvEncode(w io.Writer, pver uint32) error {
	if len(msg.Data) > maxFilterAddDataSize {
		return messageError("MsgFilterAdd.BsvEncode", fmt.Sprintf(
			"filteradd data too large for message [size %v, max %v]",
			len(msg.Data), maxFilterAddDataSize))
	}

	return WriteVarBytes(w, pver, msg.Data)
}

// Command returns the protocol command string for the message.
func (msg *MsgFilterAdd) Command() string {
	return CmdFilterAdd
}

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver.
func (msg *MsgFilterAdd) MaxPayloadLength(_ uint32) uint64 {
	return 9 + maxFilterAddDataSize
}

// NewMsgFilterAdd returns a new bitcoin filteradd message that conforms to
// the Message interface.
func NewMsgFilterAdd(data []byte) *MsgFilterAdd {
	return &MsgFilterAdd{Data: data}
}
