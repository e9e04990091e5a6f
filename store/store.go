// Package store holds the wallet's durable state — best sync height,
// known headers, watched scripts, and the UTXO set — as a single
// encoding/gob snapshot file. No embedded key-value store rides along in
// this module's dependency graph, so a mutex-guarded gob file plays that
// role, matching the original sources' own preference for small,
// dependency-light persistence.
package store

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/libsv/go-bt/v2/chainhash"

	"github.com/btcspv/spvwallet/wire"
)

// UTXO is a single unspent output the wallet owns.
type UTXO struct {
	TxID          chainhash.Hash
	Vout          uint32
	Satoshis      uint64
	LockingScript []byte
	Height        int32
}

// state is the gob-serializable snapshot persisted to disk.
type state struct {
	BestHeight int32
	Headers    map[chainhash.Hash]wire.BlockHeader
	Scripts    [][]byte
	UTXOs      []UTXO
}

// Store is a mutex-guarded, file-backed snapshot of wallet state. All
// methods are safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	path string
	st   state
}

// Open loads path if it exists, or returns an empty Store scoped to path
// for a later Save. A missing file is not an error: it means a fresh
// wallet.
func Open(path string) (*Store, error) {
	s := &Store{
		path: path,
		st: state{
			Headers: make(map[chainhash.Hash]wire.BlockHeader),
		},
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}

	if err != nil {
		return nil, fmt.Errorf("store: opening %s: %w", path, err)
	}
	defer f.Close()

	if err := gob.NewDecoder(f).Decode(&s.st); err != nil {
		return nil, fmt.Errorf("store: decoding %s: %w", path, err)
	}

	if s.st.Headers == nil {
		s.st.Headers = make(map[chainhash.Hash]wire.BlockHeader)
	}

	return s, nil
}

// Save atomically rewrites the snapshot file: it writes to a temp file in
// the same directory and renames over path, so a crash mid-write never
// leaves a truncated file behind.
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tmp := s.path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("store: creating %s: %w", tmp, err)
	}

	if err := gob.NewEncoder(f).Encode(s.st); err != nil {
		f.Close()
		return fmt.Errorf("store: encoding %s: %w", tmp, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("store: closing %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("store: renaming %s to %s: %w", tmp, s.path, err)
	}

	return nil
}

// BestHeight returns the height of the most recently committed header.
func (s *Store) BestHeight() int32 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.st.BestHeight
}

// PutHeader records header at height, bumping BestHeight if height is now
// the highest known.
func (s *Store) PutHeader(header wire.BlockHeader, height int32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.st.Headers[header.BlockHash()] = header
	if height > s.st.BestHeight {
		s.st.BestHeight = height
	}
}

// Header looks up a previously committed header by hash.
func (s *Store) Header(hash chainhash.Hash) (wire.BlockHeader, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.st.Headers[hash]

	return h, ok
}

// AddScript records a watched script in the snapshot, so it's rebuilt
// into the address book and bloom filter on restart.
func (s *Store) AddScript(script []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make([]byte, len(script))
	copy(cp, script)
	s.st.Scripts = append(s.st.Scripts, cp)
}

// Scripts returns every watched script recorded in the snapshot.
func (s *Store) Scripts() [][]byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([][]byte, len(s.st.Scripts))
	copy(out, s.st.Scripts)

	return out
}

// PutUTXO records a new unspent output.
func (s *Store) PutUTXO(u UTXO) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.st.UTXOs = append(s.st.UTXOs, u)
}

// RemoveUTXO deletes the UTXO identified by txid:vout, e.g. once it's
// spent by a broadcast transaction.
func (s *Store) RemoveUTXO(txid chainhash.Hash, vout uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.st.UTXOs[:0]

	for _, u := range s.st.UTXOs {
		if u.TxID == txid && u.Vout == vout {
			continue
		}

		kept = append(kept, u)
	}

	s.st.UTXOs = kept
}

// UTXOs returns every unspent output currently recorded.
func (s *Store) UTXOs() []UTXO {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]UTXO, len(s.st.UTXOs))
	copy(out, s.st.UTXOs)

	return out
}
