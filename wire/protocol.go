// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "strconv"

// ProtocolVersion is the latest protocol version this package supports.
const ProtocolVersion uint32 = 70013

// MinProtocolVersion is the lowest protocol version a remote peer may
// advertise during the handshake before the session refuses it.
const MinProtocolVersion uint32 = 60001

// BIP0031Version is the last protocol version before the pong message and
// nonce-based ping handling: pong is only valid for versions above it.
const BIP0031Version uint32 = 60000

// BIP0037Version is the protocol version which added the bloom-filter
// messages (filterload, filteradd, filterclear) and the merkleblock
// message.
const BIP0037Version uint32 = 70001

// NetAddressTimeVersion is the protocol version which added the timestamp
// field to the network address structure.
const NetAddressTimeVersion uint32 = 31402

// ServiceFlag identifies the services supported by a peer, advertised in the
// version message and the network address structure.
type ServiceFlag uint64

const (
	// SFNodeNetwork indicates a peer can serve the complete block chain.
	SFNodeNetwork ServiceFlag = 1 << iota

	// SFNodeGetUTXO indicates a peer can respond to getutxo requests.
	SFNodeGetUTXO

	// SFNodeBloom indicates a peer supports bloom filtering.
	SFNodeBloom
)

var sfStrings = map[ServiceFlag]string{
	SFNodeNetwork: "SFNodeNetwork",
	SFNodeGetUTXO: "SFNodeGetUTXO",
	SFNodeBloom:   "SFNodeBloom",
}

// String returns the ServiceFlag in human-readable form.
func (f ServiceFlag) String() string {
	if s, ok := sfStrings[f]; ok {
		return s
	}

	var s string

	for flag := SFNodeNetwork; flag != 0; flag <<= 1 {
		if f&flag == flag {
			if name, ok := sfStrings[flag]; ok {
				if s != "" {
					s += "|"
				}

				s += name
				f -= flag
			}
		}
	}

	if f != 0 {
		if s != "" {
			s += "|"
		}

		s += "0x" + strconv.FormatUint(uint64(f), 16)
	}

	if s == "" {
		s = "0x0"
	}

	return s
}

// BitcoinNet identifies the network a message is meant for, carried as the
// magic value in every message header.
type BitcoinNet uint32

const (
	// MainNet is the main Bitcoin network.
	MainNet BitcoinNet = 0xd9b4bef9

	// TestNet3 is the test network (version 3).
	TestNet3 BitcoinNet = 0x0709110b

	// RegTestNet is the regression test network.
	RegTestNet BitcoinNet = 0xdab5bffa
)

var bnStrings = map[BitcoinNet]string{
	MainNet:    "MainNet",
	TestNet3:   "TestNet3",
	RegTestNet: "RegTest",
}

// String returns the BitcoinNet in human-readable form.
func (n BitcoinNet) String() string {
	if s, ok := bnStrings[n]; ok {
		return s
	}

	return "Unknown BitcoinNet (" + strconv.FormatUint(uint64(n), 10) + ")"
}
