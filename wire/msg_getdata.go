// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"io"
)

// MsgGetData implements the Message interface and represents a bitcoin
// getdata message, used to request one or more pieces of inventory a peer
// previously advertised via inv.
type MsgGetData struct {
	InvList []*InvVect
}

// AddInvVect appends an inventory vector to the message.
func (msg *MsgGetData) AddInvVect(iv *InvVect) error {
	if len(msg.InvList)+1 > maxInvPerMsg {
		return messageError("MsgGetData.AddInvVect", fmt.Sprintf(
			"too many invvect in message [max %v]", maxInvPerMsg))
	}

	msg.InvList = append(msg.InvList, iv)

	return nil
}

// Bsvdecode decodes r using the bitcoin protocol encoding into the receiver.
func (msg *MsgGetData) Bsvdecode(r io.Reader, pver uint32) error {
	count, err := ReadVarInt(r, pver)
	if err != nil {
		return err
	}

	if count > maxInvPerMsg {
		return messageError("MsgGetData.Bsvdecode", fmt.Sprintf(
			"too many invvect in message [count %v, max %v]", count, maxInvPerMsg))
	}

	invList := make([]InvVect, count)
	msg.InvList = make([]*InvVect, 0, count)

	for i := uint64(0); i < count; i++ {
		iv := &invList[i]

		if err := readInvVect(r, iv); err != nil {
			return err
		}

		if err := msg.AddInvVect(iv); err != nil {
			return err
		}
	}

	return nil
}

// BsvEncode encodes the receiver to w using the bitcoin protocol encoding.
func (msg *MsgGetData) BsvEncode(w io.Writer, pver uint32) error {
	count := len(msg.InvList)
	if count > maxInvPerMsg {
		return messageError("MsgGetData.BsvEncode", fmt.Sprintf(
			"too many invvect in message [count %v, max %v]", count, maxInvPerMsg))
	}

	if err := WriteVarInt(w, pver, uint64(count)); err != nil {
		return err
	}

	for _, iv := range msg.InvList {
		if err := writeInvVect(w, iv); err != nil {
			return err
		}
	}

	return nil
}

// Command returns the protocol command string for the message.
func (msg *MsgGetData) Command() string {
	return CmdGetData
}

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver.
func (msg *MsgGetData) MaxPayloadLength(_ uint32) uint64 {
	return 9 + maxInvPerMsg*(4+32)
}

// NewMsgGetData returns a new bitcoin getdata message that conforms to the
// Message interface.
func NewMsgGetData() *MsgGetData {
	return &MsgGetData{InvList: make([]*InvVect, 0, 1)}
}
