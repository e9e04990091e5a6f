package main

import (
	"fmt"

	"github.com/libsv/go-bt/v2/bscript"
	"github.com/spf13/cobra"
)

var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Derive and print the next receive address, watching it for sync",
	RunE: func(cmd *cobra.Command, args []string) error {
		net, kc, st, err := openWallet(flagDataDir, flagNetwork)
		if err != nil {
			return err
		}

		index := uint32(len(st.Scripts())) //nolint:gosec // address count bounded by wallet lifetime

		key, err := kc.DeriveExternal(index)
		if err != nil {
			return fmt.Errorf("deriving address %d: %w", index, err)
		}

		addr, err := key.Address(net)
		if err != nil {
			return fmt.Errorf("rendering address: %w", err)
		}

		script, err := bscript.NewP2PKHFromAddress(addr)
		if err != nil {
			return fmt.Errorf("building locking script for %s: %w", addr, err)
		}

		st.AddScript(*script)

		if err := st.Save(); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), addr)

		return nil
	},
}
