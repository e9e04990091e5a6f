// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"io"
)

// RejectCode represents a numeric value by which a remote peer indicates why
// a message was rejected.
type RejectCode uint8

// Supported reject codes.
const (
	RejectMalformed       RejectCode = 0x01
	RejectInvalid         RejectCode = 0x10
	RejectObsolete        RejectCode = 0x11
	RejectDuplicate       RejectCode = 0x12
	RejectNonstandard     RejectCode = 0x40
	RejectDust            RejectCode = 0x41
	RejectInsufficientFee RejectCode = 0x42
	RejectCheckpoint      RejectCode = 0x43
)

// String returns the RejectCode in human-readable form.
func (code RejectCode) String() string {
	switch code {
	case RejectMalformed:
		return "REJECT_MALFORMED"
	case RejectInvalid:
		return "REJECT_INVALID"
	case RejectObsolete:
		return "REJECT_OBSOLETE"
	case RejectDuplicate:
		return "REJECT_DUPLICATE"
	case RejectNonstandard:
		return "REJECT_NONSTANDARD"
	case RejectDust:
		return "REJECT_DUST"
	case RejectInsufficientFee:
		return "REJECT_INSUFFICIENTFEE"
	case RejectCheckpoint:
		return "REJECT_CHECKPOINT"
	default:
		return fmt.Sprintf("Unknown RejectCode (%d)", uint8(code))
	}
}

// MsgReject implements the Message interface and represents a reject message
// sent in response to a message the remote peer didn't like.
type MsgReject struct {
	// Cmd is the command of the message that generated the rejection,
	// e.g. "tx" or "block".
	Cmd string

	// Code is the reject code which indicates the reason for the
	// rejection.
	Code RejectCode

	// Reason is a human-readable string with specific details, i.e.
	// why a specific command was rejected.
	Reason string

	// Hash identifies a specific block or transaction that was
	// rejected and therefore is only encoded when Cmd is "tx" or
	// "merkleblock".
	Hash [32]byte
}

// Bsvdecode decodes r using the bitcoin protocol encoding into the receiver.
func (msg *MsgReject) Bsvdecode(r io.Reader, pver uint32) error {
	cmd, err := ReadVarString(r, pver)
	if err != nil {
		return err
	}

	msg.Cmd = cmd

	var code uint8
	if err := readElement(r, &code); err != nil {
		return err
	}

	msg.Code = RejectCode(code)

	reason, err := ReadVarString(r, pver)
	if err != nil {
		return err
	}

	msg.Reason = reason

	if msg.Cmd == CmdTx || msg.Cmd == CmdMerkleBlock {
		if err := readElement(r, &msg.Hash); err != nil {
			return err
		}
	}

	return nil
}

// BsvEncode encodes the receiver to w using the bitcoin protocol encoding.
func (msg *MsgReject) BsvEncode(w io.Writer, pver uint32) error {
	if err := WriteVarString(w, pver, msg.Cmd); err != nil {
		return err
	}

	if err := writeElement(w, uint8(msg.Code)); err != nil {
		return err
	}

	if err := WriteVarString(w, pver, msg.Reason); err != nil {
		return err
	}

	if msg.Cmd == CmdTx || msg.Cmd == CmdMerkleBlock {
		if err := writeElement(w, msg.Hash); err != nil {
			return err
		}
	}

	return nil
}

// Command returns the protocol command string for the message.
func (msg *MsgReject) Command() string {
	return CmdReject
}

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver.
func (msg *MsgReject) MaxPayloadLength(_ uint32) uint64 {
	// Command varstring + code + reason varstring + optional hash, each
	// varstring bounded by maxMessagePayload in practice.
	return maxMessagePayload()
}

// NewMsgReject returns a new reject message that conforms to the Message
// interface.
func NewMsgReject(command string, code RejectCode, reason string) *MsgReject {
	return &MsgReject{
		Cmd:    command,
		Code:   code,
		Reason: reason,
	}
}
