// Package peer implements the per-connection state machine that drives one
// Bitcoin P2P session: version handshake, ping/pong, and reassembly of
// merkleblock + tx bundles, forwarding the results to an external manager
// over bounded channels.
package peer

import (
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/libsv/go-bt/v2/chainhash"

	"github.com/btcspv/spvwallet/internal/wirelog"
	"github.com/btcspv/spvwallet/merkle"
	"github.com/btcspv/spvwallet/wire"
)

// RemoteHost is an immutable descriptor of the peer endpoint a session is
// talking to.
type RemoteHost struct {
	Addr    net.Addr
	Magic   wire.BitcoinNet
	Inbound bool
}

func (r RemoteHost) String() string {
	return r.Addr.String()
}

// DecodedMerkleBlock is the result of successfully extracting the partial
// merkle tree from a merkleblock message: the original block header, the
// recomputed root, the ordered hashes a filter matched, and the Tx objects
// received so far for those hashes.
type DecodedMerkleBlock struct {
	Header      wire.BlockHeader
	Root        chainhash.Hash
	ExpectedTxs []chainhash.Hash
	MerkleTxs   []*wire.MsgTx
}

// ManagerRequest is the tagged union of events a session reports to its
// manager.
type ManagerRequest struct {
	Kind        ManagerRequestKind
	Remote      RemoteHost
	Version     *wire.MsgVersion
	MerkleBlock *DecodedMerkleBlock
	Message     wire.Message
}

// ManagerRequestKind identifies which field of a ManagerRequest is populated.
type ManagerRequestKind int

// Manager request kinds.
const (
	KindHandshake ManagerRequestKind = iota
	KindMerkleBlockReady
	KindPassThrough
)

// Session is a per-connection record. It is owned exclusively by the
// session's inbound goroutine; the outbound writer only ever touches its
// channel endpoint and its half of the socket, so no locking is required.
type Session struct {
	remote RemoteHost
	conn   net.Conn
	magic  wire.BitcoinNet
	pver   uint32
	logger *wirelog.Logger

	outbound chan wire.Message
	manager  chan ManagerRequest

	peerVersion    *wire.MsgVersion
	inflightMerkle *DecodedMerkleBlock

	maxPayload  uint64
	idleTimeout time.Duration
}

// Config bundles the dependencies a caller must supply to construct a
// Session: the network magic, the bounded channels, and optionally a
// logger, a maximum payload override, and an idle-read timeout.
type Config struct {
	Magic           wire.BitcoinNet
	ProtocolVersion uint32
	Outbound        chan wire.Message
	Manager         chan ManagerRequest
	Logger          *slog.Logger
	MaxPayload      uint64

	// IdleTimeout closes the connection if no inbound message arrives
	// within this duration, per spec.md §5 ("the manager may enforce
	// idle timeouts by closing the session"). Zero disables idle
	// enforcement — the core itself has no timeout by default.
	IdleTimeout time.Duration
}

// New constructs a Session over an already-connected socket. The caller
// retains ownership of conn until the session exits; Run closes it on every
// exit path.
func New(conn net.Conn, remote RemoteHost, cfg Config) *Session {
	logger := wirelog.New(cfg.Logger)

	pver := cfg.ProtocolVersion
	if pver == 0 {
		pver = wire.ProtocolVersion
	}

	maxPayload := cfg.MaxPayload
	if maxPayload == 0 {
		maxPayload = 32 * 1024 * 1024
	}

	return &Session{
		remote:      remote,
		conn:        conn,
		magic:       cfg.Magic,
		pver:        pver,
		logger:      logger.With("remote", remote.String()),
		outbound:    cfg.Outbound,
		manager:     cfg.Manager,
		maxPayload:  maxPayload,
		idleTimeout: cfg.IdleTimeout,
	}
}

// PeerVersion returns the negotiated version payload, or nil before the
// handshake completes.
func (s *Session) PeerVersion() *wire.MsgVersion {
	return s.peerVersion
}

// sessionError is returned by the inbound loop to classify why it stopped,
// matching the error kinds the design separates: framing, decode, protocol,
// merkle, and I/O failures are all fatal; a closed channel is a clean exit.
type sessionError struct {
	kind string
	err  error
}

func (e *sessionError) Error() string {
	return fmt.Sprintf("peer session %s: %v", e.kind, e.err)
}

func (e *sessionError) Unwrap() error {
	return e.err
}

func fatalf(kind string, err error) error {
	return &sessionError{kind: kind, err: err}
}

// idleWriteTimeout bounds how long the writer goroutine will block on a
// single socket write before giving up on a stalled peer.
const idleWriteTimeout = 30 * time.Second
