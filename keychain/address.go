package keychain

import (
	"crypto/sha256"

	"github.com/libsv/go-bk/base58"
	"github.com/libsv/go-bk/bec"
	"github.com/libsv/go-bk/wif"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // RIPEMD160 is required by the P2PKH address format, not chosen for strength

	"github.com/btcspv/spvwallet/config"
)

// p2pkhAddress base58check-encodes the hash160 (RIPEMD160(SHA256(x))) of a
// compressed public key under the given address version byte.
func p2pkhAddress(pubKeyCompressed []byte, versionByte byte) string {
	sha := sha256.Sum256(pubKeyCompressed)

	ripe := ripemd160.New() //nolint:staticcheck
	ripe.Write(sha[:])
	hash := ripe.Sum(nil)

	return base58.CheckEncode(hash, versionByte)
}

// ExportWIF renders priv as a Wallet Import Format string for net.
func ExportWIF(priv *bec.PrivateKey, net *config.Params) (string, error) {
	w, err := wif.NewWIF(priv, net.PrivateKeyID, true)
	if err != nil {
		return "", err
	}

	return w.String(), nil
}

// ImportWIF parses a Wallet Import Format string back into a private key.
func ImportWIF(s string) (*bec.PrivateKey, error) {
	w, err := wif.DecodeWIF(s)
	if err != nil {
		return nil, err
	}

	return w.PrivKey, nil
}
