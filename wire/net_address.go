// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"io"
	"net"
	"time"
)

// maxNetAddressPayload returns the max number of bytes a net address can be
// for the given protocol version.
func maxNetAddressPayload(pver uint32) uint64 {
	plen := uint64(26)

	if pver >= NetAddressTimeVersion {
		plen += 4
	}

	return plen
}

// NetAddress describes a reachable peer endpoint as carried in the version
// message and (pre-BIP0155) addr relay.
type NetAddress struct {
	Timestamp time.Time
	Services  ServiceFlag
	IP        net.IP
	Port      uint16
}

// HasService reports whether na advertises the given service.
func (na *NetAddress) HasService(service ServiceFlag) bool {
	return na.Services&service == service
}

// AddService adds service to na's advertised services.
func (na *NetAddress) AddService(service ServiceFlag) {
	na.Services |= service
}

// NewNetAddress builds a NetAddress from a *net.TCPAddr and a service set,
// stamped with the current time.
func NewNetAddress(addr *net.TCPAddr, services ServiceFlag) *NetAddress {
	return &NetAddress{
		Timestamp: time.Now(),
		Services:  services,
		IP:        addr.IP,
		Port:      uint16(addr.Port), //nolint:gosec // TCP ports fit uint16
	}
}

func readNetAddress(r io.Reader, pver uint32, na *NetAddress, ts bool) error {
	var ip [16]byte

	if ts && pver >= NetAddressTimeVersion {
		var stamp uint32
		if err := readElement(r, &stamp); err != nil {
			return err
		}

		na.Timestamp = time.Unix(int64(stamp), 0)
	}

	if err := readElement(r, &na.Services); err != nil {
		return err
	}

	if _, err := io.ReadFull(r, ip[:]); err != nil {
		return err
	}

	var port [2]byte
	if _, err := io.ReadFull(r, port[:]); err != nil {
		return err
	}

	na.IP = net.IP(append([]byte(nil), ip[:]...))
	na.Port = binary.BigEndian.Uint16(port[:])

	return nil
}

func writeNetAddress(w io.Writer, pver uint32, na *NetAddress, ts bool) error {
	if ts && pver >= NetAddressTimeVersion {
		if err := writeElement(w, uint32(na.Timestamp.Unix())); err != nil { //nolint:gosec // unix time fits uint32 until 2106
			return err
		}
	}

	if err := writeElement(w, na.Services); err != nil {
		return err
	}

	var ip [16]byte
	if na.IP != nil {
		copy(ip[:], na.IP.To16())
	}

	if _, err := w.Write(ip[:]); err != nil {
		return err
	}

	var port [2]byte
	binary.BigEndian.PutUint16(port[:], na.Port)

	_, err := w.Write(port[:])

	return err
}
