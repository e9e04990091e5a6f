// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"

	"github.com/libsv/go-bt/v2"
)

// MsgTx implements the Message interface and carries a single bitcoin
// transaction. Serialization is delegated to bt.Tx, which already knows the
// transaction wire format; this type only adapts it to the Message
// interface so it can flow through the same framer as every other message.
type MsgTx struct {
	Tx *bt.Tx
}

// NewMsgTx wraps tx as a Message.
func NewMsgTx(tx *bt.Tx) *MsgTx {
	return &MsgTx{Tx: tx}
}

// Bsvdecode decodes r using the bitcoin protocol encoding into the receiver.
func (msg *MsgTx) Bsvdecode(r io.Reader, _ uint32) error {
	tx, err := bt.NewTxFromStream(r)
	if err != nil {
		return messageError("MsgTx.Bsvdecode", err.Error())
	}

	msg.Tx = tx

	return nil
}

// BsvEncode encodes the receiver to w using the bitcoin protocol encoding.
func (msg *MsgTx) BsvEncode(w io.Writer, _ uint32) error {
	if msg.Tx == nil {
		return messageError("MsgTx.BsvEncode", "nil transaction")
	}

	_, err := w.Write(msg.Tx.Bytes())

	return err
}

// Command returns the protocol command string for the message.
func (msg *MsgTx) Command() string {
	return CmdTx
}

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver.
func (msg *MsgTx) MaxPayloadLength(_ uint32) uint64 {
	return maxMessagePayload()
}
