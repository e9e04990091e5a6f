// Package keychain derives per-address key pairs from a single BIP32 seed,
// following a fixed BIP44-style path m/44'/0'/0'/chain/index. The purpose,
// coin-type and account levels are hardened and fixed; chain (external or
// change) and address index are derived on demand.
package keychain

import (
	"fmt"

	"github.com/libsv/go-bk/bec"
	"github.com/libsv/go-bk/bip32"

	"github.com/btcspv/spvwallet/config"
)

const hardened = bip32.HardenedKeyStart

const (
	purposeBIP44 = 44
	coinTypeBTC  = 0
	account      = 0

	chainExternal = 0
	chainChange   = 1
)

// ExtendedKey is a single derived leaf node: the BIP32 key material plus
// the chain/index it was derived under.
type ExtendedKey struct {
	key   *bip32.ExtendedKey
	chain uint32
	index uint32
}

// Keychain derives addresses for a single wallet account from one seed.
type Keychain struct {
	account *bip32.ExtendedKey
	net     *config.Params
}

// NewKeychain derives the account node m/44'/0'/0' from seed and returns a
// Keychain scoped to net's address version bytes.
func NewKeychain(seed []byte, net *config.Params) (*Keychain, error) {
	master, err := bip32.NewMaster(seed)
	if err != nil {
		return nil, fmt.Errorf("keychain: deriving master key: %w", err)
	}

	node, err := master.Child(hardened + purposeBIP44)
	if err != nil {
		return nil, fmt.Errorf("keychain: deriving purpose node: %w", err)
	}

	node, err = node.Child(hardened + coinTypeBTC)
	if err != nil {
		return nil, fmt.Errorf("keychain: deriving coin-type node: %w", err)
	}

	node, err = node.Child(hardened + account)
	if err != nil {
		return nil, fmt.Errorf("keychain: deriving account node: %w", err)
	}

	return &Keychain{account: node, net: net}, nil
}

// DeriveExternal derives m/44'/0'/0'/0/index, the receive-address chain.
func (k *Keychain) DeriveExternal(index uint32) (*ExtendedKey, error) {
	return k.derive(chainExternal, index)
}

// DeriveChange derives m/44'/0'/0'/1/index, the change-address chain.
func (k *Keychain) DeriveChange(index uint32) (*ExtendedKey, error) {
	return k.derive(chainChange, index)
}

func (k *Keychain) derive(chain, index uint32) (*ExtendedKey, error) {
	chainNode, err := k.account.Child(chain)
	if err != nil {
		return nil, fmt.Errorf("keychain: deriving chain %d node: %w", chain, err)
	}

	addrNode, err := chainNode.Child(index)
	if err != nil {
		return nil, fmt.Errorf("keychain: deriving address index %d: %w", index, err)
	}

	return &ExtendedKey{key: addrNode, chain: chain, index: index}, nil
}

// PrivateKey returns the EC private key for this node.
func (k *ExtendedKey) PrivateKey() (*bec.PrivateKey, error) {
	priv, err := k.key.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("keychain: recovering private key: %w", err)
	}

	return priv, nil
}

// PublicKey returns the EC public key for this node.
func (k *ExtendedKey) PublicKey() (*bec.PublicKey, error) {
	pub, err := k.key.ECPubKey()
	if err != nil {
		return nil, fmt.Errorf("keychain: recovering public key: %w", err)
	}

	return pub, nil
}

// Address renders this node's public key as a base58check P2PKH address
// under net's version byte.
func (k *ExtendedKey) Address(net *config.Params) (string, error) {
	pub, err := k.PublicKey()
	if err != nil {
		return "", err
	}

	return p2pkhAddress(pub.SerializeCompressed(), net.PubKeyHashAddrID), nil
}
