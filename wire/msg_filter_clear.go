// Copyright (c) 2014-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "io"

// MsgFilterClear implements the Message interface and represents a bitcoin
// filterclear message, which tells a peer to stop applying its previously
// loaded bloom filter and relay everything.
//
// This message has no payload.
type MsgFilterClear struct{}

// Bsvdecode decodes r using the bitcoin protocol encoding into the receiver.
func (msg *MsgFilterClear) Bsvdecode(_ io.Reader, _ uint32) error {
	return nil
}

// BsvEncode encodes the receiver to w using the bitcoin protocol encoding.
func (msg *MsgFilterClear) BsvEncode(_ io.Writer, _ uint32) error {
	return nil
}

// Command returns the protocol command string for the message.
func (msg *MsgFilterClear) Command() string {
	return CmdFilterClear
}

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver.
func (msg *MsgFilterClear) MaxPayloadLength(_ uint32) uint64 {
	return 0
}

// NewMsgFilterClear returns a new bitcoin filterclear message that conforms
// to the Message interface.
func NewMsgFilterClear() *MsgFilterClear {
	return &MsgFilterClear{}
}
