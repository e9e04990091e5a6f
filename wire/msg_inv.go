// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"io"

	"github.com/libsv/go-bt/v2/chainhash"
)

// InvType represents the type of inventory vector.
type InvType uint32

// Inventory vector types understood by this package.
const (
	InvTypeError InvType = 0
	InvTypeTx    InvType = 1
	InvTypeBlock InvType = 2
	// InvTypeFilteredBlock requests a merkleblock rather than a full
	// block for the hash, the form an SPV peer always wants.
	InvTypeFilteredBlock InvType = 3
)

// String returns the InvType in human-readable form.
func (t InvType) String() string {
	switch t {
	case InvTypeError:
		return "ERROR"
	case InvTypeTx:
		return "MSG_TX"
	case InvTypeBlock:
		return "MSG_BLOCK"
	case InvTypeFilteredBlock:
		return "MSG_FILTERED_BLOCK"
	default:
		return fmt.Sprintf("Unknown InvType (%d)", uint32(t))
	}
}

// InvVect identifies a single piece of data advertised in an inv or
// requested in a getdata message.
type InvVect struct {
	Type InvType
	Hash chainhash.Hash
}

// NewInvVect returns a new InvVect.
func NewInvVect(typ InvType, hash *chainhash.Hash) *InvVect {
	return &InvVect{Type: typ, Hash: *hash}
}

func readInvVect(r io.Reader, iv *InvVect) error {
	if err := readElement(r, &iv.Type); err != nil {
		return err
	}

	return readElement(r, &iv.Hash)
}

func writeInvVect(w io.Writer, iv *InvVect) error {
	if err := writeElement(w, iv.Type); err != nil {
		return err
	}

	return writeElement(w, &iv.Hash)
}

// maxInvPerMsg is the maximum number of inventory vectors a single inv or
// getdata message may carry.
const maxInvPerMsg = 50000

// MsgInv implements the Message interface and represents a bitcoin inv
// message, used to advertise knowledge of transactions or blocks.
type MsgInv struct {
	InvList []*InvVect
}

// AddInvVect appends an inventory vector to the message.
func (msg *MsgInv) AddInvVect(iv *InvVect) error {
	if len(msg.InvList)+1 > maxInvPerMsg {
		return messageError("MsgInv.AddInvVect", fmt.Sprintf(
			"too many invvect in message [max %v]", maxInvPerMsg))
	}

	msg.InvList = append(msg.InvList, iv)

	return nil
}

// Bsvdecode decodes r using the bitcoin protocol encoding into the receiver.
func (msg *MsgInv) Bsvdecode(r io.Reader, pver uint32) error {
	count, err := ReadVarInt(r, pver)
	if err != nil {
		return err
	}

	if count > maxInvPerMsg {
		return messageError("MsgInv.Bsvdecode", fmt.Sprintf(
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
func (msg *MsgInv) BsvEncode(w io.Writer, pver uint32) error {
	count := len(msg.InvList)
	if count > maxInvPerMsg {
		return messageError("MsgInv.BsvEncode", fmt.Sprintf(
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
func (msg *MsgInv) Command() string {
	return CmdInv
}

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver.
func (msg *MsgInv) MaxPayloadLength(_ uint32) uint64 {
	return 9 + maxInvPerMsg*(4+uint64(chainhash.HashSize))
}

// NewMsgInv returns a new bitcoin inv message that conforms to the Message
// interface.
func NewMsgInv() *MsgInv {
	return &MsgInv{InvList: make([]*InvVect, 0, 1)}
}
