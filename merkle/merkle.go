// Package merkle reconstructs the partial merkle tree a peer sends inside a
// merkleblock message: a pre-order traversal of the full transaction tree,
// pruned wherever a subtree contains no bloom-filter match.
package merkle

import (
	"fmt"

	"github.com/libsv/go-bt/v2/chainhash"
)

// Result is the outcome of a successful extraction: the recomputed merkle
// root and the ordered subset of leaf hashes the traversal flagged as
// matched.
type Result struct {
	Root    chainhash.Hash
	Matched []chainhash.Hash
}

// traversal walks the flag/hash streams produced by a merkleblock payload.
type traversal struct {
	numTx     uint32
	hashes    []chainhash.Hash
	flags     []byte
	hashUsed  int
	bitUsed   int
	matched   []chainhash.Hash
}

// ExtractMatches reconstructs the partial merkle tree described by flags and
// hashes for a block containing numTx transactions, returning the computed
// root and the ordered list of matched leaf hashes. It fails if the flag or
// hash streams are over- or under-consumed, or if any padding bits beyond
// the traversal are set.
func ExtractMatches(numTx uint32, hashes []chainhash.Hash, flags []byte) (*Result, error) {
	if numTx == 0 {
		return nil, fmt.Errorf("merkle: zero transaction count")
	}

	tr := &traversal{numTx: numTx, hashes: hashes, flags: flags}

	height := treeHeight(numTx)

	root, err := tr.walk(height, 0)
	if err != nil {
		return nil, err
	}

	if tr.hashUsed != len(hashes) {
		return nil, fmt.Errorf("merkle: %d hashes supplied, %d consumed", len(hashes), tr.hashUsed)
	}

	if used := (tr.bitUsed + 7) / 8; used != len(flags) {
		return nil, fmt.Errorf("merkle: %d flag bytes supplied, %d consumed", len(flags), used)
	}

	// Every remaining bit beyond the traversal — padding to a whole byte
	// — must be zero.
	for i := tr.bitUsed; i < len(flags)*8; i++ {
		if tr.bit(i) {
			return nil, fmt.Errorf("merkle: non-zero padding flag bit at position %d", i)
		}
	}

	return &Result{Root: root, Matched: tr.matched}, nil
}

// treeHeight returns ceil(log2(numTx)), the depth of a balanced binary tree
// whose leaf count is at least numTx.
func treeHeight(numTx uint32) uint {
	var height uint

	for (uint32(1) << height) < numTx {
		height++
	}

	return height
}

// width returns the number of nodes at the given height of a tree built
// over numTx leaves, where height 0 is the leaf row.
func (tr *traversal) width(height uint) uint32 {
	return (tr.numTx + (1 << height) - 1) >> height
}

func (tr *traversal) bit(i int) bool {
	return tr.flags[i/8]&(1<<(uint(i)%8)) != 0
}

// walk recursively descends the traversal, consuming one flag bit per call
// and returning the hash for the node at (height, pos). height counts down
// from the tree height to 0 at the leaves.
func (tr *traversal) walk(height uint, pos uint32) (chainhash.Hash, error) {
	bitIndex := tr.bitUsed
	if bitIndex/8 >= len(tr.flags) {
		return chainhash.Hash{}, fmt.Errorf("merkle: flag bits exhausted at height %d pos %d", height, pos)
	}

	flag := tr.bit(bitIndex)
	tr.bitUsed++

	if height == 0 || !flag {
		hash, err := tr.nextHash()
		if err != nil {
			return chainhash.Hash{}, err
		}

		if height == 0 && flag {
			tr.matched = append(tr.matched, hash)
		}

		return hash, nil
	}

	left, err := tr.walk(height-1, pos*2)
	if err != nil {
		return chainhash.Hash{}, err
	}

	// Odd width at this level: duplicate the last (left) node rather than
	// descending into a right child that doesn't exist.
	if pos*2+1 >= tr.width(height-1) {
		return hashPair(left, left), nil
	}

	right, err := tr.walk(height-1, pos*2+1)
	if err != nil {
		return chainhash.Hash{}, err
	}

	return hashPair(left, right), nil
}

func (tr *traversal) nextHash() (chainhash.Hash, error) {
	if tr.hashUsed >= len(tr.hashes) {
		return chainhash.Hash{}, fmt.Errorf("merkle: hash list exhausted after %d hashes", tr.hashUsed)
	}

	h := tr.hashes[tr.hashUsed]
	tr.hashUsed++

	return h, nil
}

// hashPair computes the parent node hash for two siblings: double-SHA256 of
// their concatenation, left then right.
func hashPair(left, right chainhash.Hash) chainhash.Hash {
	var buf [chainhash.HashSize * 2]byte
	copy(buf[:chainhash.HashSize], left[:])
	copy(buf[chainhash.HashSize:], right[:])

	return chainhash.DoubleHashH(buf[:])
}
