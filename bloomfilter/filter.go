// Package bloomfilter implements the BIP37 bloom filter a wallet loads onto
// a peer with a filterload message, so the peer only relays merkleblock
// and tx messages whose contents actually touch the wallet's watched
// scripts and outpoints.
package bloomfilter

import (
	"math"

	"github.com/libsv/go-bt/v2/chainhash"

	"github.com/btcspv/spvwallet/wire"
)

// BIP37 hard limits on filter size and hash function count.
const (
	MaxFilterSize  = 36000
	MaxFilterFuncs = 50
)

// ln2Squared is used in the BIP37 filter-size formula.
var ln2Squared = math.Ln2 * math.Ln2

// Flag selects how matched outputs update the filter, mirroring
// wire.BloomUpdateType.
type Flag = wire.BloomUpdateType

// Re-export the wire package's update-flag constants under bloomfilter's
// own name so callers don't need to import wire just to pick a flag.
const (
	UpdateNone          = wire.BloomUpdateNone
	UpdateAll           = wire.BloomUpdateAll
	UpdateP2PubkeyOnly  = wire.BloomUpdateP2PubkeyOnly
)

// Filter is a BIP37 bloom filter: a bit vector tested by N
// independent murmur3 hashes, one per hash function index.
type Filter struct {
	bits      []byte
	hashFuncs uint32
	tweak     uint32
	flags     Flag
}

// New sizes a filter for elements items at the given false-positive rate,
// per the BIP37 formulas:
//
//	size  = min(MaxFilterSize, -1/ln(2)^2 * N * ln(falsePositiveRate) / 8) bytes
//	nHash = min(MaxFilterFuncs, size*8/N * ln(2))
func New(elements int, falsePositiveRate float64, tweak uint32, flags Flag) *Filter {
	n := float64(elements)
	if n < 1 {
		n = 1
	}

	sizeBits := -1 / ln2Squared * n * math.Log(falsePositiveRate)

	sizeBytes := uint32(sizeBits / 8) //nolint:gosec // bounded by MaxFilterSize below
	if sizeBytes > MaxFilterSize {
		sizeBytes = MaxFilterSize
	}

	if sizeBytes < 1 {
		sizeBytes = 1
	}

	hashFuncs := uint32(float64(sizeBytes*8) / n * math.Ln2) //nolint:gosec // bounded below
	if hashFuncs > MaxFilterFuncs {
		hashFuncs = MaxFilterFuncs
	}

	if hashFuncs < 1 {
		hashFuncs = 1
	}

	return &Filter{
		bits:      make([]byte, sizeBytes),
		hashFuncs: hashFuncs,
		tweak:     tweak,
		flags:     flags,
	}
}

// hashIndex computes the bit position data maps to under hash function i,
// using murmur3 seeded per BIP37: i*0xFBA4C795 + tweak.
func (f *Filter) hashIndex(i uint32, data []byte) uint32 {
	seed := i*0xFBA4C795 + f.tweak

	return murmur3(seed, data) % (uint32(len(f.bits)) * 8) //nolint:gosec // len(f.bits) bounded by MaxFilterSize
}

// Add inserts data into the filter by setting one bit per hash function.
func (f *Filter) Add(data []byte) {
	for i := uint32(0); i < f.hashFuncs; i++ {
		idx := f.hashIndex(i, data)
		f.bits[idx/8] |= 1 << (idx % 8)
	}
}

// AddOutPoint inserts the 36-byte serialized outpoint (hash || little-endian
// index) into the filter, matching how bitcoind matches spent outputs.
func (f *Filter) AddOutPoint(hash *chainhash.Hash, index uint32) {
	buf := make([]byte, chainhash.HashSize+4)
	copy(buf, hash[:])
	buf[chainhash.HashSize] = byte(index)
	buf[chainhash.HashSize+1] = byte(index >> 8)
	buf[chainhash.HashSize+2] = byte(index >> 16)
	buf[chainhash.HashSize+3] = byte(index >> 24)

	f.Add(buf)
}

// Matches reports whether every bit data maps to is already set.
func (f *Filter) Matches(data []byte) bool {
	for i := uint32(0); i < f.hashFuncs; i++ {
		idx := f.hashIndex(i, data)
		if f.bits[idx/8]&(1<<(idx%8)) == 0 {
			return false
		}
	}

	return true
}

// MsgFilterLoad renders the filter as the wire message a session sends to
// install it on a peer.
func (f *Filter) MsgFilterLoad() *wire.MsgFilterLoad {
	filterCopy := make([]byte, len(f.bits))
	copy(filterCopy, f.bits)

	return &wire.MsgFilterLoad{
		Filter:    filterCopy,
		HashFuncs: f.hashFuncs,
		Tweak:     f.tweak,
		Flags:     f.flags,
	}
}
