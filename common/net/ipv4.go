package net

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/mindstorm38/netcrab/common/errors"
)

// IPv4Addr is a 32-bit IPv4 address, stored in network byte order (the
// same layout net.IP's 4-byte form uses).
type IPv4Addr [4]byte

// ParseIPv4 parses a dotted-quad string into an IPv4Addr.
func ParseIPv4(s string) (IPv4Addr, error) {
	var addr IPv4Addr
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return addr, errors.New("invalid IPv4 address: ", s)
	}
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 10, 8)
		if err != nil {
			return addr, errors.New("invalid IPv4 address: ", s).Base(err)
		}
		addr[i] = byte(v)
	}
	return addr, nil
}

// String renders the address in dotted-quad form.
func (a IPv4Addr) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", a[0], a[1], a[2], a[3])
}

// Uint32 returns the address as a big-endian 32-bit integer.
func (a IPv4Addr) Uint32() uint32 {
	return binary.BigEndian.Uint32(a[:])
}

// ipv4FromUint32 is the inverse of Uint32.
func ipv4FromUint32(v uint32) IPv4Addr {
	var a IPv4Addr
	binary.BigEndian.PutUint32(a[:], v)
	return a
}

// Mask returns the address masked to the given prefix length, implementing
// the Masker[IPv4Addr] constraint IPPrefix relies on.
func (a IPv4Addr) Mask(prefixLen int) IPv4Addr {
	if prefixLen <= 0 {
		return IPv4Addr{}
	}
	if prefixLen >= 32 {
		return a
	}
	m := ^uint32(0) << uint(32-prefixLen)
	return ipv4FromUint32(a.Uint32() & m)
}

// IsMulticast reports whether a is in 224.0.0.0/4.
func (a IPv4Addr) IsMulticast() bool {
	return a[0]&0xF0 == 0xE0
}

// IsBroadcast reports whether a is the limited broadcast address
// 255.255.255.255.
func (a IPv4Addr) IsBroadcast() bool {
	return a == IPv4Broadcast
}

// IPv4Broadcast is the limited broadcast address.
var IPv4Broadcast = IPv4Addr{255, 255, 255, 255}

// IPv4Zero is the unspecified address, 0.0.0.0.
var IPv4Zero = IPv4Addr{}
