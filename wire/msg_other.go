package wire

import "io"

// MsgOther is a catchall Message for any command this package doesn't know
// the structure of. It round-trips the raw payload bytes unexamined, so a
// session can still forward or relay a message type it doesn't specially
// understand.
type MsgOther struct {
	Cmd     string
	Payload []byte
}

// Bsvdecode decodes r using the bitcoin protocol encoding into the receiver.
func (msg *MsgOther) Bsvdecode(r io.Reader, _ uint32) error {
	payload, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	msg.Payload = payload

	return nil
}

// BsvEncode encodes the receiver to w using the bitcoin protocol encoding.
func (msg *MsgOther) BsvEncode(w io.Writer, _ uint32) error {
	_, err := w.Write(msg.Payload)
	return err
}

// Command returns the protocol command string for the message.
func (msg *MsgOther) Command() string {
	return msg.Cmd
}

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver.
func (msg *MsgOther) MaxPayloadLength(_ uint32) uint64 {
	return maxMessagePayload()
}
