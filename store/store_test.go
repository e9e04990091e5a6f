package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btcspv/spvwallet/wire"
)

func TestOpenMissingFileIsEmpty(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "wallet.gob"))
	require.NoError(t, err)
	assert.Equal(t, int32(0), s.BestHeight())
	assert.Empty(t, s.UTXOs())
}

func TestSaveAndReopenRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.gob")

	s, err := Open(path)
	require.NoError(t, err)

	header := wire.BlockHeader{Version: 1, Bits: 0x1d00ffff}
	s.PutHeader(header, 100)
	s.AddScript([]byte{0x76, 0xa9})
	s.PutUTXO(UTXO{Vout: 1, Satoshis: 5000})

	require.NoError(t, s.Save())

	reopened, err := Open(path)
	require.NoError(t, err)

	assert.Equal(t, int32(100), reopened.BestHeight())
	assert.Len(t, reopened.Scripts(), 1)
	assert.Len(t, reopened.UTXOs(), 1)

	got, ok := reopened.Header(header.BlockHash())
	require.True(t, ok)
	assert.Equal(t, header.Bits, got.Bits)
}

func TestRemoveUTXO(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "wallet.gob"))
	require.NoError(t, err)

	var txid [32]byte
	txid[0] = 7

	s.PutUTXO(UTXO{TxID: txid, Vout: 0, Satoshis: 1000})
	s.PutUTXO(UTXO{TxID: txid, Vout: 1, Satoshis: 2000})

	s.RemoveUTXO(txid, 0)

	utxos := s.UTXOs()
	require.Len(t, utxos, 1)
	assert.EqualValues(t, 1, utxos[0].Vout)
}
