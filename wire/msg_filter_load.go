// Copyright (c) 2014-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"io"
)

// BloomUpdateType defines how the bloom filter is updated by a peer once it
// matches data against it.
type BloomUpdateType uint8

// Bloom filter update types understood by BIP0037.
const (
	// BloomUpdateNone never updates the filter with outpoints when a
	// match is found.
	BloomUpdateNone BloomUpdateType = 0
	// BloomUpdateAll always updates the filter with outpoints when a
	// match is found.
	BloomUpdateAll BloomUpdateType = 1
	// BloomUpdateP2PubkeyOnly only updates the filter with outpoints for
	// multisig and pay-to-pubkey transactions.
	BloomUpdateP2PubkeyOnly BloomUpdateType = 2
)

// maxFilterLoadHashFuncs and maxFilterLoadFilterSize mirror BIP0037's
// ceilings so a forged filterload can't force an unbounded allocation.
const (
	maxFilterLoadHashFuncs = 50
	maxFilterLoadFilterSize = 36000
)

// MsgFilterLoad implements the Message interface and represents a bitcoin
// filterload message, which tells a peer to apply a bloom filter to all
// relayed transactions and inventory.
type MsgFilterLoad struct {
	Filter    []byte
	HashFuncs uint32
	Tweak     uint32
	Flags     BloomUpdateType
}

// Bsvdecode decodes r using the bitcoin protocol encoding into the receiver.
func (msg *MsgFilterLoad) Bsvdecode(r io.Reader, pver uint32) error {
	filter, err := ReadVarBytes(r, pver, maxFilterLoadFilterSize, "filterload filter size")
	if err != nil {
		return err
	}

	msg.Filter = filter

	if err := readElement(r, &msg.HashFuncs); err != nil {
		return err
	}

	if msg.HashFuncs > maxFilterLoadHashFuncs {
		return messageError("MsgFilterLoad.Bsvdecode", fmt.Sprintf(
			"too many filter hash functions [count %v, max %v]",
			msg.HashFuncs, maxFilterLoadHashFuncs))
	}

	if err := readElement(r, &msg.Tweak); err != nil {
		return err
	}

	var flags uint8
	if err := readElement(r, &flags); err != nil {
		return err
	}

	msg.Flags = BloomUpdateType(flags)

	return nil
}

// BsvEncode encodes the receiver to w using the bitcoin protocol encoding.
func (msg *MsgFilterLoad) BsvEncode(w io.Writer, pver uint32) error {
	if len(msg.Filter) > maxFilterLoadFilterSize {
		return messageError("MsgFilterLoad.BsvEncode", fmt.Sprintf(
			"filter size too large for message [size %v, max %v]",
			len(msg.Filter), maxFilterLoadFilterSize))
	}

	if msg.HashFuncs > maxFilterLoadHashFuncs {
		return messageError("MsgFilterLoad.BsvEncode", fmt.Sprintf(
			"too many filter hash functions [count %v, max %v]",
			msg.HashFuncs, maxFilterLoadHashFuncs))
	}

	if err := WriteVarBytes(w, pver, msg.Filter); err != nil {
		return err
	}

	if err := writeElement(w, msg.HashFuncs); err != nil {
		return err
	}

	if err := writeElement(w, msg.Tweak); err != nil {
		return err
	}

	return writeElement(w, uint8(msg.Flags))
}

// Command returns the protocol command string for the message.
func (msg *MsgFilterLoad) Command() string {
	return CmdFilterLoad
}

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver.
func (msg *MsgFilterLoad) MaxPayloadLength(_ uint32) uint64 {
	return 9 + maxFilterLoadFilterSize + 4 + 4 + 1
}

// NewMsgFilterLoad returns a new bitcoin filterload message that conforms to
// the Message interface.
func NewMsgFilterLoad(filter []byte, hashFuncs, tweak uint32, flags BloomUpdateType) *MsgFilterLoad {
	return &MsgFilterLoad{
		Filter:    filter,
		HashFuncs: hashFuncs,
		Tweak:     tweak,
		Flags:     flags,
	}
}
