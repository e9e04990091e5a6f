// Package manager owns the peer.Sessions spec.md's core excludes from
// its scope: dialing and accepting connections, driving header/merkle
// sync, and reacting to the events a Session reports. Its onInv/onTx/
// onGetData/false-positive handling mirror the callback-based behavior
// of the original spvwallet sources, adapted onto the channel-based
// Session instead of a callback-registering peer object.
package manager

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/libsv/go-bt/v2"
	"github.com/libsv/go-bt/v2/chainhash"

	"github.com/btcspv/spvwallet/addressbook"
	"github.com/btcspv/spvwallet/bloomfilter"
	"github.com/btcspv/spvwallet/config"
	"github.com/btcspv/spvwallet/internal/wirelog"
	"github.com/btcspv/spvwallet/peer"
	"github.com/btcspv/spvwallet/store"
	"github.com/btcspv/spvwallet/wire"
)

// falsePositiveThreshold is the count of no-hit tx messages a peer can
// send before the manager refreshes and resends its bloom filter,
// matching the original sources' fPositiveHandler threshold.
const falsePositiveThreshold = 7

const outboundBufferSize = 32

// peerEntry is the manager's bookkeeping for one connected session.
type peerEntry struct {
	remote   peer.RemoteHost
	outbound chan wire.Message
	cancel   context.CancelFunc
	version  *wire.MsgVersion
}

// Manager owns every connected peer.Session, the wallet's persistent
// store, and the set of watched scripts sessions filter against.
type Manager struct {
	cfg    *config.Params
	book   *addressbook.Book
	store  *store.Store
	logger *wirelog.Logger

	events chan peer.ManagerRequest

	mu       sync.Mutex
	peers    map[string]*peerEntry
	pending  map[string]chan *wire.MsgVersion
	syncPeer string

	fpMu           sync.Mutex
	falsePositives map[string]int
}

// New constructs a Manager. The caller must run (*Manager).Run in its own
// goroutine to process session events.
func New(cfg *config.Params, book *addressbook.Book, st *store.Store) *Manager {
	return &Manager{
		cfg:            cfg,
		book:           book,
		store:          st,
		logger:         wirelog.New(nil),
		events:         make(chan peer.ManagerRequest, outboundBufferSize),
		peers:          make(map[string]*peerEntry),
		pending:        make(map[string]chan *wire.MsgVersion),
		falsePositives: make(map[string]int),
	}
}

// Connect dials addr, performs the version handshake, and registers the
// resulting session. It returns once the peer's version message arrives
// or the dial/handshake times out.
func (m *Manager) Connect(ctx context.Context, addr string) error {
	dialer := net.Dialer{Timeout: m.cfg.PeerDialTimeout}

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("manager: dialing %s: %w", addr, err)
	}

	remote := peer.RemoteHost{Addr: conn.RemoteAddr(), Magic: m.cfg.Net}
	outbound := make(chan wire.Message, outboundBufferSize)

	// A session closes its manager channel when it exits, so each one gets
	// its own channel, forwarded into the shared events channel.
	events := make(chan peer.ManagerRequest, outboundBufferSize)

	go func() {
		for ev := range events {
			select {
			case m.events <- ev:
			case <-ctx.Done():
			}
		}
	}()

	sess := peer.New(conn, remote, peer.Config{
		Magic:           m.cfg.Net,
		ProtocolVersion: m.cfg.ProtocolVersion,
		Outbound:        outbound,
		Manager:         events,
		IdleTimeout:     m.cfg.PeerIdleTimeout,
	})

	sessionCtx, cancel := context.WithCancel(ctx)

	key := remote.String()
	wait := make(chan *wire.MsgVersion, 1)

	m.mu.Lock()
	m.peers[key] = &peerEntry{remote: remote, outbound: outbound, cancel: cancel}
	m.pending[key] = wait
	m.mu.Unlock()

	go func() {
		defer cancel()

		if err := sess.Run(sessionCtx); err != nil {
			m.logger.Errorf("session with %s ended: %v", key, err)
		}

		m.removePeer(key)
	}()

	outbound <- wire.NewMsgVersion(&wire.NetAddress{}, &wire.NetAddress{}, randomNonce(), m.store.BestHeight())

	select {
	case <-wait:
		return nil
	case <-sessionCtx.Done():
		return sessionCtx.Err()
	case <-time.After(m.cfg.PeerDialTimeout):
		cancel()
		return fmt.Errorf("manager: handshake with %s timed out", addr)
	}
}

func (m *Manager) removePeer(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.peers, key)
	delete(m.pending, key)

	if m.syncPeer == key {
		m.syncPeer = m.pickSyncPeerLocked()
	}
}

// pickSyncPeerLocked returns the key of any remaining connected peer, or
// "" if none remain. Callers must hold m.mu.
func (m *Manager) pickSyncPeerLocked() string {
	for key := range m.peers {
		return key
	}

	return ""
}

// Run processes session events until ctx is cancelled. Sessions close only
// their own per-session channels (see Connect), so the shared events
// channel outlives every session and Run exits only on ctx cancellation.
func (m *Manager) Run(ctx context.Context) {
	m.logger.InfoContext(ctx, "manager event loop starting")

	for {
		select {
		case <-ctx.Done():
			m.logger.DebugContext(ctx, "manager event loop stopping", "cause", ctx.Err())
			return
		case ev := <-m.events:
			m.handle(ev)
		}
	}
}

func (m *Manager) handle(ev peer.ManagerRequest) {
	switch ev.Kind {
	case peer.KindHandshake:
		m.onHandshake(ev)
	case peer.KindMerkleBlockReady:
		m.onMerkleBlockReady(ev)
	case peer.KindPassThrough:
		m.onPassThrough(ev)
	}
}

func (m *Manager) onHandshake(ev peer.ManagerRequest) {
	key := ev.Remote.String()

	m.mu.Lock()
	if entry, ok := m.peers[key]; ok {
		entry.version = ev.Version
	}

	waiter, hasWaiter := m.pending[key]
	if hasWaiter {
		delete(m.pending, key)
	}

	if m.syncPeer == "" {
		m.syncPeer = key
	}
	m.mu.Unlock()

	if hasWaiter {
		select {
		case waiter <- ev.Version:
		default:
		}
	}

	m.sendFilter(ev.Remote)

	if ev.Version.LastBlock > m.store.BestHeight() {
		m.requestHeaders(ev.Remote)
	}
}

func (m *Manager) onMerkleBlockReady(ev peer.ManagerRequest) {
	mb := ev.MerkleBlock
	m.store.PutHeader(mb.Header, m.store.BestHeight()+1)

	for _, tx := range mb.MerkleTxs {
		m.ingestTx(ev.Remote, tx)
	}
}

func (m *Manager) onPassThrough(ev peer.ManagerRequest) {
	switch msg := ev.Message.(type) {
	case *wire.MsgInv:
		m.onInv(ev.Remote, msg)
	case *wire.MsgGetData:
		m.onGetData(ev.Remote, msg)
	case *wire.MsgTx:
		m.ingestTx(ev.Remote, msg)
	}
}

// onInv requests full delivery of every advertised tx, and a filtered
// block for every advertised block, mirroring the original sources'
// onInv.
func (m *Manager) onInv(remote peer.RemoteHost, inv *wire.MsgInv) {
	get := wire.NewMsgGetData()

	for _, iv := range inv.InvList {
		switch iv.Type {
		case wire.InvTypeBlock:
			_ = get.AddInvVect(wire.NewInvVect(wire.InvTypeFilteredBlock, &iv.Hash))
		case wire.InvTypeTx:
			_ = get.AddInvVect(wire.NewInvVect(wire.InvTypeTx, &iv.Hash))
		default:
			continue
		}
	}

	if len(get.InvList) > 0 {
		m.sendTo(remote, get)
	}
}

// onGetData answers no request: the manager holds neither a tx cache nor a
// full-block cache, so tx requests are logged and dropped and any other
// request is ignored.
func (m *Manager) onGetData(remote peer.RemoteHost, get *wire.MsgGetData) {
	for _, iv := range get.InvList {
		if iv.Type != wire.InvTypeTx {
			continue
		}

		m.logger.Debugf("ignoring getdata from %s for tx %s: no tx cache held", remote, iv.Hash)
	}
}

// ingestTx checks every output of tx against the watched-script book. A
// tx with no matching output is a bloom filter false positive and counts
// toward the refresh threshold; a tx with a match is recorded as a new
// UTXO.
func (m *Manager) ingestTx(remote peer.RemoteHost, tx *wire.MsgTx) {
	hits := 0
	txHash := chainhash.DoubleHashH(tx.Tx.Bytes())

	for i, out := range tx.Tx.Outputs {
		if out.LockingScript == nil {
			continue
		}

		script := []byte(*out.LockingScript)
		if !m.book.Contains(script) {
			continue
		}

		hits++

		m.store.PutUTXO(store.UTXO{
			TxID:          txHash,
			Vout:          uint32(i), //nolint:gosec // output count bounded by tx size
			Satoshis:      out.Satoshis,
			LockingScript: script,
		})
	}

	if hits == 0 {
		m.recordFalsePositive(remote)
		return
	}

	m.sendFilter(remote)
}

func (m *Manager) recordFalsePositive(remote peer.RemoteHost) {
	key := remote.String()

	m.fpMu.Lock()
	m.falsePositives[key]++
	count := m.falsePositives[key]

	if count > falsePositiveThreshold {
		m.falsePositives[key] = 0
	}
	m.fpMu.Unlock()

	if count > falsePositiveThreshold {
		m.sendFilter(remote)
	}
}

// Broadcast sends tx to the current sync peer, returning an error if no
// peer is connected.
func (m *Manager) Broadcast(tx *bt.Tx) error {
	m.mu.Lock()
	key := m.syncPeer
	m.mu.Unlock()

	if key == "" {
		return fmt.Errorf("manager: no connected peer to broadcast through")
	}

	m.mu.Lock()
	entry, ok := m.peers[key]
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("manager: sync peer %s no longer connected", key)
	}

	select {
	case entry.outbound <- wire.NewMsgTx(tx):
		return nil
	default:
		return fmt.Errorf("manager: outbound channel to %s full", key)
	}
}

func (m *Manager) requestHeaders(remote peer.RemoteHost) {
	get := wire.NewMsgGetHeaders()
	get.ProtocolVersion = m.cfg.ProtocolVersion

	m.sendTo(remote, get)
}

// sendFilter (re)builds a bloom filter from every watched script and
// installs it on remote's outbound channel.
func (m *Manager) sendFilter(remote peer.RemoteHost) {
	scripts := m.book.WatchedScripts()
	if len(scripts) == 0 {
		return
	}

	filter := bloomfilter.New(len(scripts), m.cfg.BloomFalsePositiveRate, randomTweak(), bloomfilter.UpdateAll)
	for _, s := range scripts {
		filter.Add(s)
	}

	m.sendTo(remote, filter.MsgFilterLoad())
}

func (m *Manager) sendTo(remote peer.RemoteHost, msg wire.Message) {
	m.mu.Lock()
	entry, ok := m.peers[remote.String()]
	m.mu.Unlock()

	if !ok {
		return
	}

	select {
	case entry.outbound <- msg:
	default:
		m.logger.Warningf("outbound channel to %s full, dropping %s", remote, msg.Command())
	}
}

func randomNonce() uint64 {
	n, err := wire.RandomUint64()
	if err != nil {
		return uint64(time.Now().UnixNano()) //nolint:gosec // fallback only used if crypto/rand is unavailable
	}

	return n
}

func randomTweak() uint32 {
	return uint32(randomNonce()) //nolint:gosec // tweak only needs to vary, not be cryptographically unpredictable
}
