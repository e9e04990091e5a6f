// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetAddressServices(t *testing.T) {
	na := NetAddress{}
	assert.False(t, na.HasService(SFNodeNetwork))

	na.AddService(SFNodeNetwork)
	assert.True(t, na.HasService(SFNodeNetwork))
	assert.False(t, na.HasService(SFNodeBloom))
}

func TestNewNetAddress(t *testing.T) {
	tcp := &net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 8333}

	na := NewNetAddress(tcp, SFNodeNetwork)
	assert.True(t, na.IP.Equal(tcp.IP))
	assert.EqualValues(t, 8333, na.Port)
	assert.True(t, na.HasService(SFNodeNetwork))
}

func TestNetAddressRoundTrip(t *testing.T) {
	na := NetAddress{
		Services: SFNodeNetwork | SFNodeBloom,
		IP:       net.ParseIP("192.168.1.1"),
		Port:     8333,
	}

	var buf bytes.Buffer
	require.NoError(t, writeNetAddress(&buf, 0, &na, false))

	var got NetAddress
	require.NoError(t, readNetAddress(&buf, 0, &got, false))

	assert.Equal(t, na.Services, got.Services)
	assert.True(t, na.IP.Equal(got.IP))
	assert.Equal(t, na.Port, got.Port)
}
