package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcspv/spvwallet/config"
	"github.com/btcspv/spvwallet/keychain"
	"github.com/btcspv/spvwallet/store"
)

const seedFileName = "seed.dat"

// seedPath returns the path to the raw seed file inside dataDir.
func seedPath(dataDir string) string {
	return filepath.Join(dataDir, seedFileName)
}

// storePath returns the path to the gob wallet snapshot inside dataDir.
func storePath(dataDir string) string {
	return filepath.Join(dataDir, "wallet.gob")
}

// loadSeed reads the seed written by the init command, failing with a
// helpful message if the wallet hasn't been initialized yet.
func loadSeed(dataDir string) ([]byte, error) {
	seed, err := os.ReadFile(seedPath(dataDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no wallet found in %s, run \"spvwalletd init\" first", dataDir)
		}

		return nil, fmt.Errorf("reading seed: %w", err)
	}

	return seed, nil
}

// openWallet resolves the configured network, loads the seed and the
// on-disk store, and derives the account keychain — the common setup every
// subcommand but init needs.
func openWallet(dataDir, network string) (*config.Params, *keychain.Keychain, *store.Store, error) {
	net, err := config.ByName(network)
	if err != nil {
		return nil, nil, nil, err
	}

	seed, err := loadSeed(dataDir)
	if err != nil {
		return nil, nil, nil, err
	}

	kc, err := keychain.NewKeychain(seed, net)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("deriving account keychain: %w", err)
	}

	st, err := store.Open(storePath(dataDir))
	if err != nil {
		return nil, nil, nil, err
	}

	return net, kc, st, nil
}

func ensureDataDir(dataDir string) error {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return fmt.Errorf("creating data directory %s: %w", dataDir, err)
	}

	return nil
}
