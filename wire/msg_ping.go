// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "io"

// MsgPing implements the Message interface and represents a bitcoin ping
// message, used to confirm a connection is still alive and to measure
// round-trip latency.
type MsgPing struct {
	Nonce uint64
}

// NewMsgPing returns a new bitcoin ping message carrying nonce.
func NewMsgPing(nonce uint64) *MsgPing {
	return &MsgPing{Nonce: nonce}
}

// Bsvdecode decodes r using the bitcoin protocol encoding into the receiver.
func (msg *MsgPing) Bsvdecode(r io.Reader, _ uint32) error {
	return readElement(r, &msg.Nonce)
}

// BsvEncode encodes the receiver to w using the bitcoin protocol encoding.
func (msg *MsgPing) BsvEncode(w io.Writer, _ uint32) error {
	return writeElement(w, msg.Nonce)
}

// Command returns the protocol command string for the message.
func (msg *MsgPing) Command() string {
	return CmdPing
}

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver.
func (msg *MsgPing) MaxPayloadLength(_ uint32) uint64 {
	return 8
}
