// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "testing"

func TestServiceFlagStringer(t *testing.T) {
	tests := []struct {
		in   ServiceFlag
		want string
	}{
		{0, "0x0"},
		{SFNodeNetwork, "SFNodeNetwork"},
		{SFNodeGetUTXO, "SFNodeGetUTXO"},
		{SFNodeBloom, "SFNodeBloom"},
		{SFNodeNetwork | SFNodeBloom, "SFNodeNetwork|SFNodeBloom"},
		{0xfffffff8, "0xfffffff8"},
	}

	for i, test := range tests {
		if got := test.in.String(); got != test.want {
			t.Errorf("String #%d: got %q want %q", i, got, test.want)
		}
	}
}

func TestBitcoinNetStringer(t *testing.T) {
	tests := []struct {
		in   BitcoinNet
		want string
	}{
		{MainNet, "MainNet"},
		{TestNet3, "TestNet3"},
		{RegTestNet, "RegTest"},
		{0xffffffff, "Unknown BitcoinNet (4294967295)"},
	}

	for i, test := range tests {
		if got := test.in.String(); got != test.want {
			t.Errorf("String #%d: got %q want %q", i, got, test.want)
		}
	}
}
