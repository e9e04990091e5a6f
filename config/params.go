// Package config supplies the per-network parameters the rest of the
// module is built against: wire magic, default port, address version
// bytes, seed hosts, and the operating defaults that spec.md's core
// leaves to an external caller (dial timeouts, bloom false-positive
// rate, idle timeout, relay fee).
package config

import (
	"fmt"
	"time"

	"github.com/btcspv/spvwallet/wire"
)

// Params bundles everything that varies between mainnet, testnet3 and
// regtest.
type Params struct {
	Name string

	Net             wire.BitcoinNet
	DefaultPort     string
	SeedHosts       []string
	ProtocolVersion uint32

	PubKeyHashAddrID byte
	ScriptHashAddrID byte
	PrivateKeyID     byte

	BloomFalsePositiveRate float64

	PeerDialTimeout            time.Duration
	PeerIdleTimeout            time.Duration
	MaxOutstandingMerkleBlocks int

	RelayFeePerByte uint64
}

// MainNetParams are the production Bitcoin network parameters.
var MainNetParams = Params{
	Name:            "mainnet",
	Net:             wire.MainNet,
	DefaultPort:     "8333",
	SeedHosts: []string{
		"seed.bitcoin.sipa.be",
		"dnsseed.bluematt.me",
		"dnsseed.bitcoin.dashjr.org",
	},
	ProtocolVersion:            wire.ProtocolVersion,
	PubKeyHashAddrID:           0x00,
	ScriptHashAddrID:           0x05,
	PrivateKeyID:               0x80,
	BloomFalsePositiveRate:     0.0001,
	PeerDialTimeout:            10 * time.Second,
	PeerIdleTimeout:            5 * time.Minute,
	MaxOutstandingMerkleBlocks: 32,
	RelayFeePerByte:            1,
}

// TestNet3Params are the public Bitcoin test network parameters.
var TestNet3Params = Params{
	Name:            "testnet3",
	Net:             wire.TestNet3,
	DefaultPort:     "18333",
	SeedHosts: []string{
		"testnet-seed.bitcoin.jonasschnelli.ch",
		"seed.tbtc.petertodd.org",
	},
	ProtocolVersion:            wire.ProtocolVersion,
	PubKeyHashAddrID:           0x6f,
	ScriptHashAddrID:           0xc4,
	PrivateKeyID:               0xef,
	BloomFalsePositiveRate:     0.0001,
	PeerDialTimeout:            10 * time.Second,
	PeerIdleTimeout:            5 * time.Minute,
	MaxOutstandingMerkleBlocks: 32,
	RelayFeePerByte:            1,
}

// RegTestParams are the local regression-test network parameters: no seed
// hosts since regtest peers are reached by explicit address.
var RegTestParams = Params{
	Name:                       "regtest",
	Net:                        wire.RegTestNet,
	DefaultPort:                "18444",
	ProtocolVersion:            wire.ProtocolVersion,
	PubKeyHashAddrID:           0x6f,
	ScriptHashAddrID:           0xc4,
	PrivateKeyID:               0xef,
	BloomFalsePositiveRate:     0.0001,
	PeerDialTimeout:            5 * time.Second,
	PeerIdleTimeout:            5 * time.Minute,
	MaxOutstandingMerkleBlocks: 32,
	RelayFeePerByte:            1,
}

// ByName resolves "mainnet", "testnet3" or "regtest" to its Params, matching
// the network names cmd/spvwalletd accepts on its --network flag.
func ByName(name string) (*Params, error) {
	switch name {
	case "mainnet":
		return &MainNetParams, nil
	case "testnet3":
		return &TestNet3Params, nil
	case "regtest":
		return &RegTestParams, nil
	default:
		return nil, fmt.Errorf("config: unknown network %q", name)
	}
}
