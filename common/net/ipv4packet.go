package net

import "fmt"

// Ipv4Packet is a simulated IPv4 datagram. TTL decrement and fragment
// reassembly are not performed by this module (see Non-goals); the fields
// below exist so a future driver has somewhere to read and write them.
type Ipv4Packet struct {
	Src  IPv4Addr
	Dst  IPv4Addr
	TTL  uint8

	// AllowFragmentation is the inverse of the IPv4 "don't fragment" bit:
	// when false, a router that cannot forward the packet whole must drop
	// it rather than fragment it.
	AllowFragmentation bool
	// IsFragment marks this packet as one segment of a fragmented bundle.
	IsFragment bool
	// FragmentIdentifier groups the fragments of one original datagram.
	FragmentIdentifier uint16
	// FragmentOffset is this fragment's position, in the bundle, from the
	// first one.
	FragmentOffset uint16

	Payload Ipv4PayloadBody
}

// NewIpv4Packet returns a packet with the original's defaults: fragmentation
// allowed, not itself a fragment, TTL 32.
func NewIpv4Packet(src, dst IPv4Addr, payload Ipv4PayloadBody) Ipv4Packet {
	return Ipv4Packet{
		Src:                src,
		Dst:                dst,
		TTL:                32,
		AllowFragmentation: true,
		Payload:            payload,
	}
}

func (p Ipv4Packet) String() string {
	return fmt.Sprintf("Ipv4{src: %s, dst: %s, ttl: %d, payload: %v}", p.Src, p.Dst, p.TTL, p.Payload)
}

// Ipv4PayloadBody is the tagged union an Ipv4Packet carries: raw bytes or
// a UDP datagram. UDP payload parsing is out of scope: the datagram's Data
// is left opaque.
type Ipv4PayloadBody interface {
	isIpv4Payload()
}

// RawIpv4Payload is an opaque byte payload.
type RawIpv4Payload []byte

func (RawIpv4Payload) isIpv4Payload() {}
func (p RawIpv4Payload) String() string {
	return fmt.Sprintf("Raw(%v)", []byte(p))
}

// UdpDatagram is an unparsed UDP datagram: ports plus opaque data.
type UdpDatagram struct {
	SrcPort uint16
	DstPort uint16
	Data    []byte
}

func (UdpDatagram) isIpv4Payload() {}
func (d UdpDatagram) String() string {
	return fmt.Sprintf("Udp{%d -> %d, %d bytes}", d.SrcPort, d.DstPort, len(d.Data))
}
