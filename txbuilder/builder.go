// Package txbuilder assembles and signs spendable transactions from
// selected UTXOs and destination outputs, including bare CHECKMULTISIG
// inputs, on top of go-bt/v2's Tx and bscript types.
package txbuilder

import (
	"context"
	"fmt"

	"github.com/libsv/go-bk/bec"
	"github.com/libsv/go-bt/v2"
	"github.com/libsv/go-bt/v2/bscript"
	"github.com/libsv/go-bt/v2/sighash"
	"github.com/libsv/go-bt/v2/unlocker"

	"github.com/btcspv/spvwallet/config"
)

// dustLimit is the minimum satoshi value txbuilder will add as an output;
// below this, an output costs more to spend than it's worth relaying,
// mirroring the relay policy most Bitcoin nodes enforce.
const dustLimit = 546

// UTXO is a single unspent output being spent as a transaction input.
type UTXO struct {
	TxID          string
	Vout          uint32
	LockingScript *bscript.Script
	Satoshis      uint64
}

// MultisigSpec describes a bare M-of-N CHECKMULTISIG redeem script.
type MultisigSpec struct {
	M       int
	N       int
	PubKeys []*bec.PublicKey
}

// multisigInput records the data needed to sign a multisig input once
// every other input and output has been added, since the sighash depends
// on the whole transaction.
type multisigInput struct {
	index int
	spec  MultisigSpec
	keys  []*bec.PrivateKey
}

// p2pkhInput pairs an input index with the key that unlocks it.
type p2pkhInput struct {
	index int
	key   *bec.PrivateKey
}

// Builder accumulates inputs and outputs for a single transaction and
// signs them on Sign.
type Builder struct {
	net *config.Params
	tx  *bt.Tx

	p2pkhInputs    []p2pkhInput
	multisigInputs []multisigInput
}

// NewBuilder returns an empty Builder targeting net's address formats.
func NewBuilder(net *config.Params) *Builder {
	return &Builder{net: net, tx: bt.NewTx()}
}

// AddP2PKHInput spends utxo with key, adding it as the next transaction
// input. The actual unlocking script is attached during Sign, once the
// full transaction (and therefore its sighash) is known.
func (b *Builder) AddP2PKHInput(utxo UTXO, key *bec.PrivateKey) error {
	if err := b.addInput(utxo); err != nil {
		return err
	}

	b.p2pkhInputs = append(b.p2pkhInputs, p2pkhInput{index: len(b.tx.Inputs) - 1, key: key})

	return nil
}

// AddMultisigInput spends utxo, a bare M-of-N CHECKMULTISIG output,
// signing with as many of keys as spec.M requires. keys must be supplied
// in the same order as spec.PubKeys.
func (b *Builder) AddMultisigInput(utxo UTXO, spec MultisigSpec, keys []*bec.PrivateKey) error {
	if spec.M <= 0 || spec.M > spec.N || spec.N != len(spec.PubKeys) || spec.N > 16 {
		return fmt.Errorf("txbuilder: invalid multisig spec %d-of-%d with %d keys", spec.M, spec.N, len(spec.PubKeys))
	}

	if len(keys) < spec.M {
		return fmt.Errorf("txbuilder: multisig requires %d keys, got %d", spec.M, len(keys))
	}

	if err := b.addInput(utxo); err != nil {
		return err
	}

	b.multisigInputs = append(b.multisigInputs, multisigInput{
		index: len(b.tx.Inputs) - 1,
		spec:  spec,
		keys:  keys[:spec.M],
	})

	return nil
}

func (b *Builder) addInput(utxo UTXO) error {
	if err := b.tx.From(utxo.TxID, utxo.Vout, utxo.LockingScript.String(), utxo.Satoshis); err != nil {
		return fmt.Errorf("txbuilder: adding input %s:%d: %w", utxo.TxID, utxo.Vout, err)
	}

	return nil
}

// AddOutput pays satoshis to addr, rejecting dust-sized outputs.
func (b *Builder) AddOutput(addr string, satoshis uint64) error {
	if satoshis < dustLimit {
		return fmt.Errorf("txbuilder: output of %d satoshis is below the dust limit of %d", satoshis, dustLimit)
	}

	if err := b.tx.PayToAddress(addr, satoshis); err != nil {
		return fmt.Errorf("txbuilder: adding output to %s: %w", addr, err)
	}

	return nil
}

// Sign signs every accumulated input with SIGHASH_ALL|SIGHASH_FORKID and
// returns the finished transaction. P2PKH inputs are signed through
// go-bt's own unlocker; multisig inputs are signed manually, one ECDSA
// signature per required key, and assembled with the classic leading
// OP_0 CHECKMULTISIG placeholder.
func (b *Builder) Sign() (*bt.Tx, error) {
	ctx := context.Background()

	for _, in := range b.p2pkhInputs {
		u := &unlocker.Simple{PrivateKey: in.key}

		unlockingScript, err := u.UnlockingScript(ctx, b.tx, bt.UnlockerParams{
			InputIdx:     uint32(in.index), //nolint:gosec // input count bounded by selected UTXOs
			SigHashFlags: sighash.AllForkID,
		})
		if err != nil {
			return nil, fmt.Errorf("txbuilder: signing input %d: %w", in.index, err)
		}

		b.tx.Inputs[in.index].UnlockingScript = unlockingScript
	}

	for _, in := range b.multisigInputs {
		if err := b.signMultisigInput(in); err != nil {
			return nil, err
		}
	}

	return b.tx, nil
}

func (b *Builder) signMultisigInput(in multisigInput) error {
	redeemScript, err := multisigRedeemScript(in.spec)
	if err != nil {
		return fmt.Errorf("txbuilder: building redeem script for input %d: %w", in.index, err)
	}

	sigHash, err := b.tx.CalcInputSignatureHash(uint32(in.index), sighash.AllForkID) //nolint:gosec
	if err != nil {
		return fmt.Errorf("txbuilder: computing sighash for input %d: %w", in.index, err)
	}

	script := &bscript.Script{}
	if err := script.AppendOpcodes(bscript.OpFALSE); err != nil {
		return fmt.Errorf("txbuilder: assembling scriptSig for input %d: %w", in.index, err)
	}

	for _, key := range in.keys {
		sig, err := key.Sign(sigHash)
		if err != nil {
			return fmt.Errorf("txbuilder: signing multisig input %d: %w", in.index, err)
		}

		sigBytes := append(sig.Serialize(), byte(sighash.AllForkID))

		if err := script.AppendPushData(sigBytes); err != nil {
			return fmt.Errorf("txbuilder: appending signature for input %d: %w", in.index, err)
		}
	}

	if err := script.AppendPushData(*redeemScript); err != nil {
		return fmt.Errorf("txbuilder: appending redeem script for input %d: %w", in.index, err)
	}

	b.tx.Inputs[in.index].UnlockingScript = script

	return nil
}

// multisigRedeemScript builds the bare CHECKMULTISIG redeem script
// <M> <pubkey1> ... <pubkeyN> <N> OP_CHECKMULTISIG for spec.
func multisigRedeemScript(spec MultisigSpec) (*bscript.Script, error) {
	script := &bscript.Script{}

	if err := script.AppendOpcodes(bscript.Op1 - 1 + byte(spec.M)); err != nil {
		return nil, err
	}

	for _, pub := range spec.PubKeys {
		if err := script.AppendPushData(pub.SerializeCompressed()); err != nil {
			return nil, err
		}
	}

	if err := script.AppendOpcodes(bscript.Op1 - 1 + byte(spec.N)); err != nil {
		return nil, err
	}

	if err := script.AppendOpcodes(bscript.OpCHECKMULTISIG); err != nil {
		return nil, err
	}

	return script, nil
}
