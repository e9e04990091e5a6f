package wire

import (
	"bytes"
	"fmt"
)

// Framer is a streaming message decoder. Bytes arrive in arbitrary chunks
// via Feed; Next pulls the next complete message out of the internal
// buffer, or reports that more bytes are needed. A Framer never blocks —
// callers drive it from whatever read loop owns the underlying connection.
type Framer struct {
	buf        bytes.Buffer
	magic      BitcoinNet
	pver       uint32
	maxPayload uint64
	broken     bool
	brokenErr  error
}

// NewFramer returns a Framer that decodes messages for the given network
// and protocol version, rejecting any payload larger than maxPayload.
func NewFramer(magic BitcoinNet, pver uint32, maxPayload uint64) *Framer {
	return &Framer{magic: magic, pver: pver, maxPayload: maxPayload}
}

// Feed appends freshly-read bytes to the framer's internal buffer.
func (f *Framer) Feed(b []byte) {
	f.buf.Write(b)
}

// Next returns the next complete message buffered, or (nil, false, nil) if
// more bytes must be fed before one can be decoded. Once a decode error
// occurs the framer is permanently broken — every subsequent Next call
// returns the same error, since a corrupt header leaves no reliable point
// to resynchronize on.
func (f *Framer) Next() (Message, bool, error) {
	if f.broken {
		return nil, false, f.brokenErr
	}

	avail := f.buf.Bytes()

	if len(avail) < MessageHeaderSize {
		return nil, false, nil
	}

	hdr, err := DecodeHeader(avail[:MessageHeaderSize], f.magic, f.maxPayload)
	if err != nil {
		f.fail(err)
		return nil, false, err
	}

	total := MessageHeaderSize + int(hdr.Length)
	if len(avail) < total {
		return nil, false, nil
	}

	payload := make([]byte, hdr.Length)
	copy(payload, avail[MessageHeaderSize:total])

	msg, err := DecodePayload(hdr.Command, payload, hdr.Checksum, f.pver)
	if err != nil {
		f.fail(err)
		return nil, false, err
	}

	f.buf.Next(total)

	return msg, true, nil
}

func (f *Framer) fail(err error) {
	f.broken = true
	f.brokenErr = fmt.Errorf("framer: unrecoverable decode error: %w", err)
}

// Broken reports whether a prior decode error has permanently disabled the
// framer.
func (f *Framer) Broken() bool {
	return f.broken
}
