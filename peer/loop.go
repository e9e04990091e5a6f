package peer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/libsv/go-bt/v2/chainhash"

	"github.com/btcspv/spvwallet/merkle"
	"github.com/btcspv/spvwallet/wire"
)

const readBufferSize = 32 * 1024

// Run drives the session until the connection closes, the caller's context
// is cancelled, or a fatal protocol error occurs. It spawns the outbound
// writer goroutine and then blocks in the inbound read loop, dispatching
// every decoded message through the state machine in dispatch. Run closes
// conn and the manager channel on every exit path; either the reader or the
// writer stopping tears down the other side.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	writerErr := make(chan error, 1)

	go func() {
		writerErr <- s.runWriter(ctx)
		cancel()
	}()

	// net.Conn has no context awareness, so an external cancellation
	// interrupts a blocked Read by closing the socket out from under it.
	go func() {
		<-ctx.Done()
		_ = s.conn.Close()
	}()

	readErr := s.runReader(ctx)

	cancel()
	_ = s.conn.Close()
	close(s.manager)

	if readErr != nil {
		return readErr
	}

	return <-writerErr
}

// runWriter reads Messages off the outbound channel and encodes them to the
// socket until the channel closes or a write fails. It never reads from
// conn and never touches session state, so it needs no synchronization with
// the reader goroutine.
func (s *Session) runWriter(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-s.outbound:
			if !ok {
				return nil
			}

			if err := s.conn.SetWriteDeadline(time.Now().Add(idleWriteTimeout)); err != nil {
				return fatalf("io", err)
			}

			if err := wire.WriteMessage(s.conn, msg, s.pver, s.magic); err != nil {
				return fatalf("io", err)
			}
		}
	}
}

// runReader owns the framer and the session state machine. It reads raw
// bytes from the socket, feeds the framer, and dispatches every decoded
// message in receipt order.
func (s *Session) runReader(ctx context.Context) error {
	framer := wire.NewFramer(s.magic, s.pver, s.maxPayload)
	buf := make([]byte, readBufferSize)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		for {
			msg, ok, err := framer.Next()
			if err != nil {
				return fatalf("framing", err)
			}

			if !ok {
				break
			}

			if err := s.dispatch(msg); err != nil {
				return err
			}
		}

		if s.idleTimeout > 0 {
			if err := s.conn.SetReadDeadline(time.Now().Add(s.idleTimeout)); err != nil {
				return fatalf("io", err)
			}
		}

		n, err := s.conn.Read(buf)
		if n > 0 {
			framer.Feed(buf[:n])
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}

			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() && s.idleTimeout > 0 {
				return fatalf("io", fmt.Errorf("peer %s idle for longer than %s: %w", s.remote, s.idleTimeout, err))
			}

			return fatalf("io", err)
		}
	}
}

// dispatch implements the per-message state machine: the merkle-flush rule
// runs first, then the message is routed by kind.
func (s *Session) dispatch(msg wire.Message) error {
	if s.inflightMerkle != nil {
		if _, isTx := msg.(*wire.MsgTx); !isTx {
			s.flushMerkle()
		}
	}

	switch m := msg.(type) {
	case *wire.MsgVersion:
		return s.onVersion(m)
	case *wire.MsgVerAck:
		s.logger.Debugf("received verack")
		return nil
	case *wire.MsgPing:
		return s.send(wire.NewMsgPong(m.Nonce))
	case *wire.MsgMerkleBlock:
		return s.onMerkleBlock(m)
	case *wire.MsgTx:
		return s.onTx(m)
	default:
		s.toManager(ManagerRequest{Kind: KindPassThrough, Remote: s.remote, Message: msg})
		return nil
	}
}

func (s *Session) onVersion(v *wire.MsgVersion) error {
	if s.peerVersion != nil {
		// Written straight to the socket rather than queued on outbound: Run
		// closes the socket as soon as this error is returned, before the
		// writer goroutine could be relied on to send it.
		reject := wire.NewMsgReject(wire.CmdVersion, wire.RejectDuplicate, "Duplicate version message")
		if err := s.conn.SetWriteDeadline(time.Now().Add(idleWriteTimeout)); err == nil {
			_ = wire.WriteMessage(s.conn, reject, s.pver, s.magic)
		}

		return fatalf("protocol", fmt.Errorf("duplicate version message from %s", s.remote))
	}

	if v.ProtocolVersion < int32(wire.MinProtocolVersion) { //nolint:gosec // MinProtocolVersion fits int32
		return fatalf("protocol", fmt.Errorf("peer %s protocol version %d below minimum %d",
			s.remote, v.ProtocolVersion, wire.MinProtocolVersion))
	}

	s.peerVersion = v

	if err := s.send(wire.NewMsgVerAck()); err != nil {
		return err
	}

	s.toManager(ManagerRequest{Kind: KindHandshake, Remote: s.remote, Version: v})

	return nil
}

func (s *Session) onMerkleBlock(mb *wire.MsgMerkleBlock) error {
	hashes := make([]chainhash.Hash, len(mb.Hashes))
	for i, h := range mb.Hashes {
		hashes[i] = *h
	}

	result, err := merkle.ExtractMatches(mb.Transactions, hashes, mb.Flags)
	if err != nil {
		return fatalf("merkle", err)
	}

	decoded := &DecodedMerkleBlock{
		Header:      mb.Header,
		Root:        result.Root,
		ExpectedTxs: result.Matched,
		MerkleTxs:   make([]*wire.MsgTx, 0, len(result.Matched)),
	}

	if len(decoded.ExpectedTxs) == 0 {
		s.toManager(ManagerRequest{Kind: KindMerkleBlockReady, Remote: s.remote, MerkleBlock: decoded})
		return nil
	}

	s.inflightMerkle = decoded

	return nil
}

func (s *Session) onTx(tx *wire.MsgTx) error {
	if s.inflightMerkle == nil {
		s.toManager(ManagerRequest{Kind: KindPassThrough, Remote: s.remote, Message: tx})
		return nil
	}

	hash := txHash(tx)

	if !s.isExpected(hash) {
		s.flushMerkle()
		s.toManager(ManagerRequest{Kind: KindPassThrough, Remote: s.remote, Message: tx})

		return nil
	}

	s.inflightMerkle.MerkleTxs = append(s.inflightMerkle.MerkleTxs, tx)

	return nil
}

func (s *Session) isExpected(hash chainhash.Hash) bool {
	for _, h := range s.inflightMerkle.ExpectedTxs {
		if h == hash {
			return true
		}
	}

	return false
}

// flushMerkle reorders whatever transactions arrived so far to match
// expectedTxs order, drops any hash with no matching tx, sends
// MerkleBlockReady, and clears inflightMerkle.
func (s *Session) flushMerkle() {
	pending := s.inflightMerkle
	s.inflightMerkle = nil

	byHash := make(map[chainhash.Hash]*wire.MsgTx, len(pending.MerkleTxs))
	for _, tx := range pending.MerkleTxs {
		byHash[txHash(tx)] = tx
	}

	ordered := make([]*wire.MsgTx, 0, len(pending.ExpectedTxs))

	for _, h := range pending.ExpectedTxs {
		if tx, ok := byHash[h]; ok {
			ordered = append(ordered, tx)
		}
	}

	pending.MerkleTxs = ordered

	s.toManager(ManagerRequest{Kind: KindMerkleBlockReady, Remote: s.remote, MerkleBlock: pending})
}

func (s *Session) send(msg wire.Message) error {
	s.outbound <- msg
	return nil
}

func (s *Session) toManager(req ManagerRequest) {
	s.manager <- req
}

// txHash computes a transaction's wire-order double-SHA256 identifier,
// matching the hash a merkleblock's leaf list is built from.
func txHash(tx *wire.MsgTx) chainhash.Hash {
	return chainhash.DoubleHashH(tx.Tx.Bytes())
}
