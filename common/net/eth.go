package net

import "fmt"

// EthFrame is a single Ethernet II frame: source and destination MAC plus
// a tagged-union payload.
type EthFrame struct {
	Src     MacAddr
	Dst     MacAddr
	Payload EthPayload
}

func (f EthFrame) String() string {
	return fmt.Sprintf("EthFrame{src: %s, dst: %s, payload: %v}", f.Src, f.Dst, f.Payload)
}

// Clone returns a value copy of the frame, deep enough that mutating the
// copy's payload slice (for the Raw/Vlan variants) does not alias the
// original — used by the switch when flooding one received frame to
// several outbound interfaces.
func (f EthFrame) Clone() EthFrame {
	f.Payload = f.Payload.clone()
	return f
}

// EthPayload is the tagged union an EthFrame carries: raw bytes, a VLAN-
// tagged inner payload, an ARP-over-IPv4 packet, or an IPv4 packet.
type EthPayload interface {
	isEthPayload()
	clone() EthPayload
}

// RawPayload is an opaque byte payload, used by test topologies and any
// traffic this module doesn't otherwise model.
type RawPayload []byte

func (RawPayload) isEthPayload() {}
func (p RawPayload) clone() EthPayload {
	cp := make(RawPayload, len(p))
	copy(cp, p)
	return cp
}

func (p RawPayload) String() string {
	return fmt.Sprintf("Raw(%v)", []byte(p))
}

// VlanPayload carries an IEEE 802.1Q tag and an inner payload. No driver
// in this module unwraps the inner payload; the variant exists so a switch
// or sink still learns/floods correctly on tagged traffic (VLAN tag
// parsing itself is out of scope).
type VlanPayload struct {
	VlanID uint16
	Inner  EthPayload
}

func (VlanPayload) isEthPayload() {}
func (p VlanPayload) clone() EthPayload {
	return VlanPayload{VlanID: p.VlanID, Inner: p.Inner.clone()}
}

func (p VlanPayload) String() string {
	return fmt.Sprintf("Vlan{id: %d, inner: %v}", p.VlanID, p.Inner)
}

// ArpPayload wraps an ArpIpv4Packet as an EthPayload variant.
type ArpPayload struct {
	Packet ArpIpv4Packet
}

func (ArpPayload) isEthPayload() {}
func (p ArpPayload) clone() EthPayload { return p }
func (p ArpPayload) String() string    { return p.Packet.String() }

// Ipv4Payload wraps an Ipv4Packet as an EthPayload variant.
type Ipv4Payload struct {
	Packet Ipv4Packet
}

func (Ipv4Payload) isEthPayload() {}
func (p Ipv4Payload) clone() EthPayload { return p }
func (p Ipv4Payload) String() string    { return p.Packet.String() }
