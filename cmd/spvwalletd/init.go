package main

import (
	"crypto/rand"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/btcspv/spvwallet/config"
	"github.com/btcspv/spvwallet/store"
)

const seedBytes = 32

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a new wallet seed and store in the data directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := config.ByName(flagNetwork); err != nil {
			return err
		}

		if err := ensureDataDir(flagDataDir); err != nil {
			return err
		}

		path := seedPath(flagDataDir)
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("wallet already initialized at %s", flagDataDir)
		}

		seed := make([]byte, seedBytes)
		if _, err := rand.Read(seed); err != nil {
			return fmt.Errorf("generating seed: %w", err)
		}

		if err := os.WriteFile(path, seed, 0o600); err != nil {
			return fmt.Errorf("writing seed: %w", err)
		}

		st, err := store.Open(storePath(flagDataDir))
		if err != nil {
			return err
		}

		if err := st.Save(); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "initialized %s wallet in %s\n", flagNetwork, flagDataDir)

		return nil
	},
}
