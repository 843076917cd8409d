// Package net holds the address and frame value types shared by every
// layer of the simulator: MAC and IPv4 addresses, IP prefixes, and the
// Ethernet/ARP/IPv4 frame payloads links carry.
package net // import "github.com/mindstorm38/netcrab/common/net"

import (
	"fmt"
)

// MacAddr is a 6-byte Ethernet hardware address.
type MacAddr [6]byte

// ZERO is the all-zero MAC address, used as the placeholder target_mac of
// an ARP request.
var ZERO = MacAddr{}

// Broadcast is the all-ones MAC address.
var Broadcast = MacAddr{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}

// IsMulticast reports whether this address has the multicast/group bit
// (the LSB of the first octet) set. Broadcast qualifies: it is all ones.
func (m MacAddr) IsMulticast() bool {
	return m[0]&0x01 != 0
}

// IsUnicast is the complement of IsMulticast.
func (m MacAddr) IsUnicast() bool {
	return !m.IsMulticast()
}

// IsLocallyAdministered reports whether the locally-administered bit (the
// second LSB of the first octet) is set.
func (m MacAddr) IsLocallyAdministered() bool {
	return m[0]&0x02 != 0
}

// String renders the address in AA:BB:CC:DD:EE:FF form.
func (m MacAddr) String() string {
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X", m[0], m[1], m[2], m[3], m[4], m[5])
}

// MacFromMulticastIPv4 derives the Ethernet multicast address an IPv4
// multicast group maps to: 01:00:5E : (ip[1] & 0x7F) : ip[2] : ip[3].
func MacFromMulticastIPv4(ip IPv4Addr) MacAddr {
	return MacAddr{0x01, 0x00, 0x5E, ip[1] & 0x7F, ip[2], ip[3]}
}

// MacFromMulticastIPv6 derives the Ethernet multicast address an IPv6
// multicast group maps to: 33:33 : ip[12:16].
func MacFromMulticastIPv6(ip [16]byte) MacAddr {
	return MacAddr{0x33, 0x33, ip[12], ip[13], ip[14], ip[15]}
}
