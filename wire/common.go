// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/libsv/go-bt/v2/chainhash"
)

// MessageError describes an issue with a message such as a malformed field
// or an invariant the decoder refuses to relax.
type MessageError struct {
	Func        string
	Description string
}

func (e *MessageError) Error() string {
	if e.Func != "" {
		return fmt.Sprintf("%s: %s", e.Func, e.Description)
	}

	return e.Description
}

func messageError(f, desc string) *MessageError {
	return &MessageError{Func: f, Description: desc}
}

// RandomUint64 returns a cryptographically random uint64, used for version
// and ping nonces.
func RandomUint64() (uint64, error) {
	return randomUint64(rand.Reader)
}

func randomUint64(r io.Reader) (uint64, error) {
	var b [8]byte

	n, err := io.ReadFull(r, b[:])
	if n != len(b) {
		if err == nil {
			err = io.ErrUnexpectedEOF
		} else if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
	}

	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint64(b[:]), nil
}

// readElement reads the next element from r using little-endian encoding for
// the basic wire primitives.
func readElement(r io.Reader, element interface{}) error {
	switch e := element.(type) {
	case *int32:
		var b [4]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return err
		}

		*e = int32(binary.LittleEndian.Uint32(b[:]))

		return nil
	case *uint32:
		var b [4]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return err
		}

		*e = binary.LittleEndian.Uint32(b[:])

		return nil
	case *int64:
		var b [8]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return err
		}

		*e = int64(binary.LittleEndian.Uint64(b[:]))

		return nil
	case *uint64:
		var b [8]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return err
		}

		*e = binary.LittleEndian.Uint64(b[:])

		return nil
	case *bool:
		var b [1]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return err
		}

		*e = b[0] != 0

		return nil
	case *[4]byte:
		_, err := io.ReadFull(r, e[:])
		return err
	case *[CommandSize]byte:
		_, err := io.ReadFull(r, e[:])
		return err
	case *[16]byte:
		_, err := io.ReadFull(r, e[:])
		return err
	case *chainhash.Hash:
		_, err := io.ReadFull(r, e[:])
		return err
	case *ServiceFlag:
		var b [8]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return err
		}

		*e = ServiceFlag(binary.LittleEndian.Uint64(b[:]))

		return nil
	case *BitcoinNet:
		var b [4]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return err
		}

		*e = BitcoinNet(binary.LittleEndian.Uint32(b[:]))

		return nil
	default:
		return binary.Read(r, binary.LittleEndian, element)
	}
}

// writeElement writes the next element to w using little-endian encoding for
// the basic wire primitives.
func writeElement(w io.Writer, element interface{}) error {
	switch e := element.(type) {
	case int32:
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(e))

		_, err := w.Write(b[:])

		return err
	case uint32:
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], e)

		_, err := w.Write(b[:])

		return err
	case int64:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(e))

		_, err := w.Write(b[:])

		return err
	case uint64:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], e)

		_, err := w.Write(b[:])

		return err
	case bool:
		var b [1]byte
		if e {
			b[0] = 1
		}

		_, err := w.Write(b[:])

		return err
	case [4]byte:
		_, err := w.Write(e[:])
		return err
	case [CommandSize]byte:
		_, err := w.Write(e[:])
		return err
	case [16]byte:
		_, err := w.Write(e[:])
		return err
	case *chainhash.Hash:
		_, err := w.Write(e[:])
		return err
	case ServiceFlag:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(e))

		_, err := w.Write(b[:])

		return err
	case BitcoinNet:
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(e))

		_, err := w.Write(b[:])

		return err
	default:
		return binary.Write(w, binary.LittleEndian, element)
	}
}

// ReadVarInt reads a variable-length integer and returns it as a uint64.
func ReadVarInt(r io.Reader, _ uint32) (uint64, error) {
	var prefix [1]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return 0, err
	}

	switch prefix[0] {
	case 0xff:
		var b [8]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, err
		}

		val := binary.LittleEndian.Uint64(b[:])
		if val <= math.MaxUint32 {
			return 0, messageError("ReadVarInt", "non-minimal encoding")
		}

		return val, nil
	case 0xfe:
		var b [4]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, err
		}

		val := uint64(binary.LittleEndian.Uint32(b[:]))
		if val <= 0xffff {
			return 0, messageError("ReadVarInt", "non-minimal encoding")
		}

		return val, nil
	case 0xfd:
		var b [2]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, err
		}

		val := uint64(binary.LittleEndian.Uint16(b[:]))
		if val < 0xfd {
			return 0, messageError("ReadVarInt", "non-minimal encoding")
		}

		return val, nil
	default:
		return uint64(prefix[0]), nil
	}
}

// WriteVarInt writes val to w using the minimal Bitcoin variable-length
// integer encoding.
func WriteVarInt(w io.Writer, pver uint32, val uint64) error {
	switch {
	case val < 0xfd:
		return writeElement(w, uint8(val)) //nolint:gosec // bounded above
	case val <= math.MaxUint16:
		if err := writeElement(w, uint8(0xfd)); err != nil {
			return err
		}

		return writeElement(w, uint16(val)) //nolint:gosec // bounded above
	case val <= math.MaxUint32:
		if err := writeElement(w, uint8(0xfe)); err != nil {
			return err
		}

		return writeElement(w, uint32(val)) //nolint:gosec // bounded above
	default:
		if err := writeElement(w, uint8(0xff)); err != nil {
			return err
		}

		return writeElement(w, val)
	}
}

func varIntSerializeSize(val uint64) int {
	switch {
	case val < 0xfd:
		return 1
	case val <= math.MaxUint16:
		return 3
	case val <= math.MaxUint32:
		return 5
	default:
		return 9
	}
}

// ReadVarString reads a variable-length-prefixed UTF-8 string.
func ReadVarString(r io.Reader, pver uint32) (string, error) {
	count, err := ReadVarInt(r, pver)
	if err != nil {
		return "", err
	}

	if count > maxMessagePayload() {
		str := fmt.Sprintf("variable length string is too long "+
			"[count %d, max %d]", count, maxMessagePayload())
		return "", messageError("ReadVarString", str)
	}

	buf := make([]byte, count)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}

	return string(buf), nil
}

// WriteVarString writes a variable-length-prefixed UTF-8 string.
func WriteVarString(w io.Writer, pver uint32, str string) error {
	if err := WriteVarInt(w, pver, uint64(len(str))); err != nil {
		return err
	}

	_, err := w.Write([]byte(str))

	return err
}

// ReadVarBytes reads a variable-length-prefixed byte slice, rejecting any
// encoding that claims more than maxAllowed bytes.
func ReadVarBytes(r io.Reader, pver uint32, maxAllowed uint64, fieldName string) ([]byte, error) {
	count, err := ReadVarInt(r, pver)
	if err != nil {
		return nil, err
	}

	if count > maxAllowed {
		str := fmt.Sprintf("%s is larger than the max allowed size "+
			"[count %d, max %d]", fieldName, count, maxAllowed)
		return nil, messageError("ReadVarBytes", str)
	}

	buf := make([]byte, count)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}

	return buf, nil
}

// WriteVarBytes writes a variable-length-prefixed byte slice.
func WriteVarBytes(w io.Writer, pver uint32, bs []byte) error {
	if err := WriteVarInt(w, pver, uint64(len(bs))); err != nil {
		return err
	}

	_, err := w.Write(bs)

	return err
}
