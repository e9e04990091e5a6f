package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/libsv/go-bk/bec"
	"github.com/libsv/go-bt/v2"
	"github.com/libsv/go-bt/v2/bscript"
	"github.com/spf13/cobra"

	"github.com/btcspv/spvwallet/addressbook"
	"github.com/btcspv/spvwallet/config"
	"github.com/btcspv/spvwallet/keychain"
	"github.com/btcspv/spvwallet/manager"
	"github.com/btcspv/spvwallet/store"
	"github.com/btcspv/spvwallet/txbuilder"
)

// maxAddressScan bounds how many external-chain indices send will derive
// while trying to match a UTXO's locking script to one of our own keys.
const maxAddressScan = 1000

var sendCmd = &cobra.Command{
	Use:   "send <address> <satoshis>",
	Short: "Build, sign, and broadcast a payment to a single address",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(flagPeer) == 0 {
			return fmt.Errorf("send requires at least one --peer to broadcast through")
		}

		destAddr := args[0]

		amount, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("parsing amount %q: %w", args[1], err)
		}

		net, kc, st, err := openWallet(flagDataDir, flagNetwork)
		if err != nil {
			return err
		}

		tx, err := buildPayment(net, kc, st, destAddr, amount)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), net.PeerDialTimeout*2)
		defer cancel()

		book := addressbook.New()
		for _, s := range st.Scripts() {
			book.Add(s)
		}

		mgr := manager.New(net, book, st)
		go mgr.Run(ctx)

		if err := mgr.Connect(ctx, flagPeer[0]); err != nil {
			return fmt.Errorf("connecting to %s: %w", flagPeer[0], err)
		}

		if err := mgr.Broadcast(tx); err != nil {
			return err
		}

		// Give the writer goroutine a moment to flush before the process
		// exits and closes the socket.
		time.Sleep(200 * time.Millisecond)

		fmt.Fprintf(cmd.OutOrStdout(), "broadcast %s\n", tx.TxID())

		return nil
	},
}

// walletKey pairs a private key with the external-chain derivation index
// that produced it, found by scanning indices for a locking-script match.
type walletKey struct {
	index uint32
	priv  *bec.PrivateKey
}

// findKeyFor scans the external chain up to maxAddressScan looking for the
// key that produces lockingScript, since the store records only the script
// a UTXO pays to, not the derivation index that produced it.
func findKeyFor(kc *keychain.Keychain, net *config.Params, lockingScript []byte) (*walletKey, error) {
	for i := uint32(0); i < maxAddressScan; i++ {
		key, err := kc.DeriveExternal(i)
		if err != nil {
			return nil, err
		}

		addr, err := key.Address(net)
		if err != nil {
			return nil, err
		}

		script, err := bscript.NewP2PKHFromAddress(addr)
		if err != nil {
			return nil, err
		}

		if string(*script) == string(lockingScript) {
			priv, err := key.PrivateKey()
			if err != nil {
				return nil, err
			}

			return &walletKey{index: i, priv: priv}, nil
		}
	}

	return nil, fmt.Errorf("no derived key matches locking script %x", lockingScript)
}

// buildPayment selects UTXOs until they cover amount, matches each to the
// external-chain key that can spend it, adds a change output if needed, and
// signs the resulting transaction. No fee is reserved: every selected
// satoshi beyond amount goes to the change output.
func buildPayment(net *config.Params, kc *keychain.Keychain, st *store.Store, destAddr string, amount uint64) (*bt.Tx, error) {
	builder := txbuilder.NewBuilder(net)

	var selected uint64

	for _, u := range st.UTXOs() {
		wk, err := findKeyFor(kc, net, u.LockingScript)
		if err != nil {
			continue
		}

		script := bscript.Script(u.LockingScript)

		if err := builder.AddP2PKHInput(txbuilder.UTXO{
			TxID:          u.TxID.String(),
			Vout:          u.Vout,
			LockingScript: &script,
			Satoshis:      u.Satoshis,
		}, wk.priv); err != nil {
			return nil, err
		}

		selected += u.Satoshis
		if selected >= amount {
			break
		}
	}

	if selected < amount {
		return nil, fmt.Errorf("insufficient funds: have %d satoshis, need %d", selected, amount)
	}

	if err := builder.AddOutput(destAddr, amount); err != nil {
		return nil, err
	}

	if change := selected - amount; change > 0 {
		changeIndex := uint32(len(st.Scripts())) //nolint:gosec // address count bounded by wallet lifetime

		changeKey, err := kc.DeriveChange(changeIndex)
		if err != nil {
			return nil, fmt.Errorf("deriving change address: %w", err)
		}

		changeAddr, err := changeKey.Address(net)
		if err != nil {
			return nil, err
		}

		if err := builder.AddOutput(changeAddr, change); err != nil {
			return nil, fmt.Errorf("adding change output: %w", err)
		}
	}

	return builder.Sign()
}
