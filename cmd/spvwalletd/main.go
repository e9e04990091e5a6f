// Command spvwalletd is the CLI entry point wiring config, store, keychain
// and manager together: generate a wallet, print addresses, build and
// broadcast a payment, or run the SPV sync loop against configured peers.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagNetwork string
	flagDataDir string
	flagPeer    []string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "spvwalletd",
	Short: "A lightweight SPV Bitcoin wallet",
	Long: `spvwalletd derives hierarchical deterministic keys, builds and signs
transactions, and synchronizes with the Bitcoin network over the
peer-to-peer wire protocol using a Bloom filter so only relevant
transactions are received.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagVerbose {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagNetwork, "network", "n", "testnet3", "network: mainnet, testnet3, or regtest")
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "datadir", "d", defaultDataDir(), "wallet data directory")
	rootCmd.PersistentFlags().StringSliceVarP(&flagPeer, "peer", "p", nil, "peer address to connect to (host:port), may be repeated")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(initCmd, addressCmd, sendCmd, syncCmd)
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".spvwallet"
	}

	return home + "/.spvwallet"
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
