package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedAndStorePaths(t *testing.T) {
	dir := t.TempDir()

	assert.Equal(t, filepath.Join(dir, "seed.dat"), seedPath(dir))
	assert.Equal(t, filepath.Join(dir, "wallet.gob"), storePath(dir))
}

func TestLoadSeedMissingWalletReturnsHelpfulError(t *testing.T) {
	dir := t.TempDir()

	_, err := loadSeed(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spvwalletd init")
}

func TestEnsureDataDirCreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	require.NoError(t, ensureDataDir(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
