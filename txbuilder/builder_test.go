package txbuilder

import (
	"fmt"
	"testing"

	"github.com/libsv/go-bk/bec"
	"github.com/libsv/go-bt/v2/bscript"
	"github.com/libsv/go-bt/v2/sighash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btcspv/spvwallet/config"
)

func samplePubKeys(t *testing.T, n int) []*bec.PublicKey {
	t.Helper()

	keys := make([]*bec.PublicKey, n)

	for i := 0; i < n; i++ {
		priv, err := bec.NewPrivateKey(bec.S256())
		require.NoError(t, err)

		keys[i] = priv.PubKey()
	}

	return keys
}

func TestMultisigRedeemScriptStructure(t *testing.T) {
	pubKeys := samplePubKeys(t, 3)
	spec := MultisigSpec{M: 2, N: 3, PubKeys: pubKeys}

	script, err := multisigRedeemScript(spec)
	require.NoError(t, err)

	b := *script
	require.NotEmpty(t, b)

	// OP_2 .. pubkeys .. OP_3 OP_CHECKMULTISIG
	assert.Equal(t, byte(0x52), b[0]) // OP_2
	assert.Equal(t, byte(0xae), b[len(b)-1]) // OP_CHECKMULTISIG
}

func TestAddOutputRejectsDust(t *testing.T) {
	b := NewBuilder(&config.MainNetParams)

	err := b.AddOutput("1BoatSLRHtKNngkdXEeobR76b53LETtpyT", dustLimit-1)
	require.Error(t, err)
}

func TestAddMultisigInputRejectsInvalidSpec(t *testing.T) {
	b := NewBuilder(&config.MainNetParams)
	pubKeys := samplePubKeys(t, 2)

	err := b.AddMultisigInput(UTXO{}, MultisigSpec{M: 3, N: 2, PubKeys: pubKeys}, nil)
	require.Error(t, err)
}

func sampleKeyPairs(t *testing.T, n int) ([]*bec.PrivateKey, []*bec.PublicKey) {
	t.Helper()

	privs := make([]*bec.PrivateKey, n)
	pubs := make([]*bec.PublicKey, n)

	for i := 0; i < n; i++ {
		priv, err := bec.NewPrivateKey(bec.S256())
		require.NoError(t, err)

		privs[i] = priv
		pubs[i] = priv.PubKey()
	}

	return privs, pubs
}

// TestSignMultisigInputScriptSigStructure exercises Builder.Sign's multisig
// path end to end: a bare 2-of-3 CHECKMULTISIG output is spent, and the
// resulting scriptSig is decoded to check the classic OP_0 placeholder,
// exactly M signature pushes, and a trailing push of the redeem script.
func TestSignMultisigInputScriptSigStructure(t *testing.T) {
	privs, pubs := sampleKeyPairs(t, 3)
	spec := MultisigSpec{M: 2, N: 3, PubKeys: pubs}

	redeemScript, err := multisigRedeemScript(spec)
	require.NoError(t, err)

	utxo := UTXO{
		TxID:          "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		Vout:          0,
		LockingScript: redeemScript,
		Satoshis:      100000,
	}

	b := NewBuilder(&config.MainNetParams)
	require.NoError(t, b.AddMultisigInput(utxo, spec, privs))
	require.NoError(t, b.AddOutput("1BoatSLRHtKNngkdXEeobR76b53LETtpyT", 50000))

	tx, err := b.Sign()
	require.NoError(t, err)
	require.Len(t, tx.Inputs, 1)

	scriptSig := *tx.Inputs[0].UnlockingScript
	require.NotEmpty(t, scriptSig)

	parts, err := decodeScriptOps([]byte(scriptSig))
	require.NoError(t, err)

	// OP_0 placeholder, spec.M signature pushes, then the redeem script push.
	require.Len(t, parts, 1+spec.M+1)
	assert.Equal(t, []byte{bscript.OpFALSE}, parts[0])

	for i := 0; i < spec.M; i++ {
		sig := parts[1+i]
		assert.NotEmpty(t, sig)
		assert.Equal(t, byte(sighash.AllForkID), sig[len(sig)-1])
	}

	assert.Equal(t, []byte(*redeemScript), parts[len(parts)-1])
}

// decodeScriptOps walks a raw script, returning one element per op: an
// opcode with no associated data comes back as a single-byte slice holding
// that opcode, and a push op comes back as the pushed data itself. It only
// needs to understand direct pushes and OP_PUSHDATA1, the only encodings
// Builder ever emits.
func decodeScriptOps(b []byte) ([][]byte, error) {
	var ops [][]byte

	for i := 0; i < len(b); {
		op := b[i]

		switch {
		case op == 0x00:
			ops = append(ops, []byte{op})
			i++
		case op >= 0x01 && op <= 0x4b:
			end := i + 1 + int(op)
			if end > len(b) {
				return nil, fmt.Errorf("decodeScriptOps: truncated push at offset %d", i)
			}

			ops = append(ops, b[i+1:end])
			i = end
		case op == bscript.OpPUSHDATA1:
			if i+2 > len(b) {
				return nil, fmt.Errorf("decodeScriptOps: truncated OP_PUSHDATA1 length at offset %d", i)
			}

			n := int(b[i+1])
			end := i + 2 + n

			if end > len(b) {
				return nil, fmt.Errorf("decodeScriptOps: truncated OP_PUSHDATA1 data at offset %d", i)
			}

			ops = append(ops, b[i+2:end])
			i = end
		default:
			ops = append(ops, []byte{op})
			i++
		}
	}

	return ops, nil
}
