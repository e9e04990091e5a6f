package merkle

import (
	"testing"

	"github.com/libsv/go-bt/v2/chainhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaf(b byte) chainhash.Hash {
	var h chainhash.Hash
	h[0] = b

	return h
}

func TestExtractMatchesSingleLeafAllMatched(t *testing.T) {
	l := leaf(1)

	res, err := ExtractMatches(1, []chainhash.Hash{l}, []byte{0x01})
	require.NoError(t, err)
	assert.Equal(t, l, res.Root)
	assert.Equal(t, []chainhash.Hash{l}, res.Matched)
}

func TestExtractMatchesTwoLeavesOneMatched(t *testing.T) {
	l0 := leaf(1)
	l1 := leaf(2)
	root := hashPair(l0, l1)

	// Pre-order: node flag=1 (has match below), left leaf flag=1 (match),
	// right leaf flag=0 (no match, hash supplied directly).
	hashes := []chainhash.Hash{l0, l1}
	flags := []byte{0b00000011} // bit0=1 (root), bit1=1 (left leaf match); bit2=0 implied by remaining zero bits

	res, err := ExtractMatches(2, hashes, flags)
	require.NoError(t, err)
	assert.Equal(t, root, res.Root)
	assert.Equal(t, []chainhash.Hash{l0}, res.Matched)
}

func TestExtractMatchesRejectsLeftoverHashes(t *testing.T) {
	l := leaf(1)

	_, err := ExtractMatches(1, []chainhash.Hash{l, l}, []byte{0x01})
	require.Error(t, err)
}

func TestExtractMatchesRejectsNonZeroPadding(t *testing.T) {
	l := leaf(1)

	_, err := ExtractMatches(1, []chainhash.Hash{l}, []byte{0b00000011})
	require.Error(t, err)
}

func TestExtractMatchesRejectsExhaustedFlags(t *testing.T) {
	_, err := ExtractMatches(2, []chainhash.Hash{leaf(1)}, []byte{})
	require.Error(t, err)
}
