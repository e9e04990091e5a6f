// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"fmt"
	"io"

	"github.com/libsv/go-bt/v2/chainhash"
)

// MessageHeaderSize is the number of bytes in a bitcoin message header:
// 4 (magic) + 12 (command) + 4 (length) + 4 (checksum).
const MessageHeaderSize = 24

// CommandSize is the fixed size of the command field in a message header.
// Shorter commands are zero padded.
const CommandSize = 12

// defaultMaxPayload is the maximum payload size this package will allocate
// for before it has even looked at what kind of message it decoded.  It
// guards against a forged header claiming a huge length.
var defaultMaxPayload uint64 = 32 * 1024 * 1024

// SetMaxPayload adjusts the global ceiling on message payload size.  Callers
// embedding this package against a network with larger blocks can raise it;
// the default of 32 MiB matches spec.md's memory-ceiling guidance.
func SetMaxPayload(n uint64) {
	defaultMaxPayload = n
}

func maxMessagePayload() uint64 {
	return defaultMaxPayload
}

// Commands used in bitcoin message headers which describe the kind of
// message that follows.
const (
	CmdVersion     = "version"
	CmdVerAck      = "verack"
	CmdPing        = "ping"
	CmdPong        = "pong"
	CmdReject      = "reject"
	CmdMerkleBlock = "merkleblock"
	CmdTx          = "tx"
	CmdGetData     = "getdata"
	CmdFilterLoad  = "filterload"
	CmdFilterAdd   = "filteradd"
	CmdFilterClear = "filterclear"
	CmdInv         = "inv"
	CmdGetHeaders  = "getheaders"
	CmdHeaders     = "headers"
)

// knownCommands is the finite vocabulary MessageHeader.Validate checks
// against.  A command outside this set still decodes as MsgOther rather
// than being rejected outright — the wire codec must stay forward-compatible
// with commands it doesn't specially understand, per spec.md §3 — but an
// unknown command must still look like a command: Validate rejects one that
// isn't printable ASCII.
var knownCommands = map[string]bool{
	CmdVersion:     true,
	CmdVerAck:      true,
	CmdPing:        true,
	CmdPong:        true,
	CmdReject:      true,
	CmdMerkleBlock: true,
	CmdTx:          true,
	CmdGetData:     true,
	CmdFilterLoad:  true,
	CmdFilterAdd:   true,
	CmdFilterClear: true,
	CmdInv:         true,
	CmdGetHeaders:  true,
	CmdHeaders:     true,
}

// Message is the interface every decoded wire message implements.  A type
// satisfying Message has full control of its own wire representation.
type Message interface {
	Bsvdecode(r io.Reader, pver uint32) error
	BsvEncode(w io.Writer, pver uint32) error
	Command() string
	MaxPayloadLength(pver uint32) uint64
}

// makeEmptyMessage returns a zero-value Message of the concrete type that
// corresponds to command, or a *MsgOther catchall for anything else.
func makeEmptyMessage(command string) Message {
	switch command {
	case CmdVersion:
		return &MsgVersion{}
	case CmdVerAck:
		return &MsgVerAck{}
	case CmdPing:
		return &MsgPing{}
	case CmdPong:
		return &MsgPong{}
	case CmdReject:
		return &MsgReject{}
	case CmdMerkleBlock:
		return &MsgMerkleBlock{}
	case CmdTx:
		return &MsgTx{}
	case CmdGetData:
		return &MsgGetData{}
	case CmdInv:
		return &MsgInv{}
	case CmdFilterLoad:
		return &MsgFilterLoad{}
	case CmdFilterAdd:
		return &MsgFilterAdd{}
	case CmdFilterClear:
		return &MsgFilterClear{}
	case CmdGetHeaders:
		return &MsgGetHeaders{}
	case CmdHeaders:
		return &MsgHeaders{}
	default:
		return &MsgOther{Cmd: command}
	}
}

// MessageHeader is the fixed 24-byte prefix carried by every wire message.
type MessageHeader struct {
	Magic    BitcoinNet
	Command  string
	Length   uint32
	Checksum [4]byte
}

// Validate enforces spec.md §3's command-vocabulary invariant: the command
// is either one of knownCommands or, for forward compatibility, an
// unrecognized command that is still printable ASCII. A command containing
// control characters or high-bit bytes — garbage, or a zero-padding run
// broken up by stray non-zero bytes — is rejected outright rather than
// silently handed to MsgOther.
func (h *MessageHeader) Validate() error {
	if knownCommands[h.Command] {
		return nil
	}

	for i := 0; i < len(h.Command); i++ {
		if b := h.Command[i]; b < 0x20 || b > 0x7e {
			return messageError("MessageHeader.Validate",
				fmt.Sprintf("unknown, unprintable command %q", h.Command))
		}
	}

	return nil
}

// DecodeHeader parses the fixed 24-byte header prefix.  It validates that
// the command is printable ASCII; it does not validate payload length
// against a particular message type's limit — that is decode_payload's job
// once the concrete type is known.
func DecodeHeader(b []byte, magic BitcoinNet, maxPayload uint64) (*MessageHeader, error) {
	if len(b) != MessageHeaderSize {
		return nil, messageError("DecodeHeader", fmt.Sprintf(
			"header must be %d bytes, got %d", MessageHeaderSize, len(b)))
	}

	r := bytes.NewReader(b)

	hdr := &MessageHeader{}

	if err := readElement(r, &hdr.Magic); err != nil {
		return nil, err
	}

	if hdr.Magic != magic {
		return nil, messageError("DecodeHeader",
			fmt.Sprintf("message from other network [%v]", hdr.Magic))
	}

	var rawCmd [CommandSize]byte
	if err := readElement(r, &rawCmd); err != nil {
		return nil, err
	}

	hdr.Command = string(bytes.TrimRight(rawCmd[:], "\x00"))
	if err := hdr.Validate(); err != nil {
		return nil, err
	}

	if err := readElement(r, &hdr.Length); err != nil {
		return nil, err
	}

	if uint64(hdr.Length) > maxPayload {
		return nil, messageError("DecodeHeader", fmt.Sprintf(
			"payload exceeds max allowed size [%d > %d]", hdr.Length, maxPayload))
	}

	if err := readElement(r, &hdr.Checksum); err != nil {
		return nil, err
	}

	return hdr, nil
}

// EncodeHeader serializes hdr to its 24-byte wire form.
func EncodeHeader(hdr *MessageHeader) ([]byte, error) {
	var buf bytes.Buffer

	if err := writeElement(&buf, hdr.Magic); err != nil {
		return nil, err
	}

	var rawCmd [CommandSize]byte

	if len(hdr.Command) > CommandSize {
		return nil, messageError("EncodeHeader", fmt.Sprintf(
			"command %q exceeds %d bytes", hdr.Command, CommandSize))
	}

	copy(rawCmd[:], hdr.Command)

	if err := writeElement(&buf, rawCmd); err != nil {
		return nil, err
	}

	if err := writeElement(&buf, hdr.Length); err != nil {
		return nil, err
	}

	if err := writeElement(&buf, hdr.Checksum); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// DecodePayload parses a message payload already known to belong to
// command, validating the supplied checksum before attempting to decode
// any fields.
func DecodePayload(command string, payload []byte, checksum [4]byte, pver uint32) (Message, error) {
	computed := chainhash.DoubleHashB(payload)
	if !bytes.Equal(computed[:4], checksum[:]) {
		return nil, messageError("DecodePayload", fmt.Sprintf(
			"payload checksum failed - header indicates %x, but actual checksum is %x",
			checksum, computed[:4]))
	}

	msg := makeEmptyMessage(command)

	mpl := msg.MaxPayloadLength(pver)
	if uint64(len(payload)) > mpl {
		return nil, messageError("DecodePayload", fmt.Sprintf(
			"payload exceeds max length for [%s]: %d > %d", command, len(payload), mpl))
	}

	if err := msg.Bsvdecode(bytes.NewReader(payload), pver); err != nil {
		return nil, err
	}

	return msg, nil
}

// EncodeMessage serializes msg into its header-prefixed wire representation
// for the given network and protocol version.
func EncodeMessage(msg Message, pver uint32, bsvnet BitcoinNet) ([]byte, error) {
	var payloadBuf bytes.Buffer
	if err := msg.BsvEncode(&payloadBuf, pver); err != nil {
		return nil, err
	}

	payload := payloadBuf.Bytes()

	if uint64(len(payload)) > maxMessagePayload() {
		return nil, messageError("EncodeMessage", fmt.Sprintf(
			"message payload is too large - encoded %d bytes, max %d",
			len(payload), maxMessagePayload()))
	}

	if mpl := msg.MaxPayloadLength(pver); uint64(len(payload)) > mpl {
		return nil, messageError("EncodeMessage", fmt.Sprintf(
			"message payload is too large for [%s] - encoded %d bytes, max %d",
			msg.Command(), len(payload), mpl))
	}

	checksum := chainhash.DoubleHashB(payload)

	hdr := &MessageHeader{
		Magic:   bsvnet,
		Command: msg.Command(),
		Length:  uint32(len(payload)), //nolint:gosec // bounded by maxMessagePayload above
	}
	copy(hdr.Checksum[:], checksum[:4])

	hdrBytes, err := EncodeHeader(hdr)
	if err != nil {
		return nil, err
	}

	return append(hdrBytes, payload...), nil
}

// WriteMessage writes msg to w including its header, for the given protocol
// version and network.
func WriteMessage(w io.Writer, msg Message, pver uint32, bsvnet BitcoinNet) error {
	b, err := EncodeMessage(msg, pver, bsvnet)
	if err != nil {
		return err
	}

	_, err = w.Write(b)

	return err
}

// ReadMessage reads, validates and decodes the next message from r.  It is
// a convenience wrapper over Framer for callers happy to block on a single
// io.Reader rather than feeding bytes incrementally.
func ReadMessage(r io.Reader, pver uint32, bsvnet BitcoinNet) (Message, []byte, error) {
	var hdrBytes [MessageHeaderSize]byte
	if _, err := io.ReadFull(r, hdrBytes[:]); err != nil {
		return nil, nil, err
	}

	hdr, err := DecodeHeader(hdrBytes[:], bsvnet, maxMessagePayload())
	if err != nil {
		return nil, nil, err
	}

	payload := make([]byte, hdr.Length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, nil, err
	}

	msg, err := DecodePayload(hdr.Command, payload, hdr.Checksum, pver)
	if err != nil {
		return nil, nil, err
	}

	return msg, payload, nil
}
