// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"io"
)

// maxUserAgentLen is the maximum allowed length for the user agent field in
// a version message.
const maxUserAgentLen = 256

// DefaultUserAgent is the user agent this package advertises when none is
// supplied.
const DefaultUserAgent = "/spvwallet:0.1.0/"

// MsgVersion implements the Message interface and represents the version
// handshake message exchanged by both sides of a connection before any
// other traffic flows.
type MsgVersion struct {
	ProtocolVersion int32
	Services        ServiceFlag
	Timestamp       int64
	AddrYou         NetAddress
	AddrMe          NetAddress
	Nonce           uint64
	UserAgent       string
	LastBlock       int32
	DisableRelayTx  bool
}

// NewMsgVersion returns a version message populated with sane defaults for
// the fields callers usually don't need to think about.
func NewMsgVersion(me, you *NetAddress, nonce uint64, lastBlock int32) *MsgVersion {
	return &MsgVersion{
		ProtocolVersion: int32(ProtocolVersion), //nolint:gosec // fits int32
		Services:        0,
		Timestamp:       0,
		AddrYou:         *you,
		AddrMe:          *me,
		Nonce:           nonce,
		UserAgent:       DefaultUserAgent,
		LastBlock:       lastBlock,
		DisableRelayTx:  false,
	}
}

// Bsvdecode decodes r using the bitcoin protocol encoding into the receiver.
func (msg *MsgVersion) Bsvdecode(r io.Reader, _ uint32) error {
	if err := readElement(r, &msg.ProtocolVersion); err != nil {
		return err
	}

	if err := readElement(r, &msg.Services); err != nil {
		return err
	}

	if err := readElement(r, &msg.Timestamp); err != nil {
		return err
	}

	if err := readNetAddress(r, 0, &msg.AddrYou, false); err != nil {
		return err
	}

	// Older clients may stop here; fields beyond this point are only
	// present for protocol versions that include them.
	if err := readNetAddress(r, 0, &msg.AddrMe, false); err != nil {
		if err == io.EOF { //nolint:errorlint // sentinel from readElement wrapping io.ReadFull
			return nil
		}

		return err
	}

	if err := readElement(r, &msg.Nonce); err != nil {
		if err == io.EOF { //nolint:errorlint // as above
			return nil
		}

		return err
	}

	ua, err := ReadVarString(r, 0)
	if err != nil {
		if err == io.EOF { //nolint:errorlint // as above
			return nil
		}

		return err
	}

	if len(ua) > maxUserAgentLen {
		return messageError("MsgVersion.Bsvdecode", fmt.Sprintf(
			"user agent too long [len %d, max %d]", len(ua), maxUserAgentLen))
	}

	msg.UserAgent = ua

	if err := readElement(r, &msg.LastBlock); err != nil {
		if err == io.EOF { //nolint:errorlint // as above
			return nil
		}

		return err
	}

	if err := readElement(r, &msg.DisableRelayTx); err != nil {
		if err == io.EOF { //nolint:errorlint // as above
			return nil
		}

		return err
	}

	return nil
}

// BsvEncode encodes the receiver to w using the bitcoin protocol encoding.
func (msg *MsgVersion) BsvEncode(w io.Writer, _ uint32) error {
	if len(msg.UserAgent) > maxUserAgentLen {
		return messageError("MsgVersion.BsvEncode", fmt.Sprintf(
			"user agent too long [len %d, max %d]", len(msg.UserAgent), maxUserAgentLen))
	}

	if err := writeElement(w, msg.ProtocolVersion); err != nil {
		return err
	}

	if err := writeElement(w, msg.Services); err != nil {
		return err
	}

	if err := writeElement(w, msg.Timestamp); err != nil {
		return err
	}

	if err := writeNetAddress(w, 0, &msg.AddrYou, false); err != nil {
		return err
	}

	if err := writeNetAddress(w, 0, &msg.AddrMe, false); err != nil {
		return err
	}

	if err := writeElement(w, msg.Nonce); err != nil {
		return err
	}

	if err := WriteVarString(w, 0, msg.UserAgent); err != nil {
		return err
	}

	if err := writeElement(w, msg.LastBlock); err != nil {
		return err
	}

	return writeElement(w, msg.DisableRelayTx)
}

// Command returns the protocol command string for the message.
func (msg *MsgVersion) Command() string {
	return CmdVersion
}

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver.
func (msg *MsgVersion) MaxPayloadLength(_ uint32) uint64 {
	// 4 + 8 + 8 + 26 + 26 + 8 + (varint + maxUserAgentLen) + 4 + 1
	return 20 + 26 + 26 + 8 + 9 + uint64(maxUserAgentLen) + 5
}
