// Package server implements the simulator's general-purpose end host: a
// Server multiplexes one driver per interface, queues outgoing IPv4
// packets, and resolves them to a concrete interface and link address
// via an IpRoutes table before
// handing them to that interface's driver. The only driver shipped here
// is the Ethernet/ARP one (ethiface.go); ServerIface is the seam a future
// data-link driver (e.g. a point-to-point PPP-like link needing no ARP)
// would implement.
package server

import (
	"sort"

	"github.com/mindstorm38/netcrab/common/errors"
	"github.com/mindstorm38/netcrab/common/net"
	"github.com/mindstorm38/netcrab/link"
	"github.com/mindstorm38/netcrab/network"
)

// ServerIfaceIPv4 is the IPv4 configuration of one interface: its own
// address and subnet mask length.
type ServerIfaceIPv4 struct {
	IP   net.IPv4Addr
	Mask int
}

// ServerIfaceConf is the per-interface protocol configuration a Server
// hands to its drivers every tick. Only IPv4 is modeled; an IPv6 slot
// would live alongside it the same way.
type ServerIfaceConf struct {
	IPv4 *ServerIfaceIPv4
}

// ServerIface is implemented by a per-interface data-link driver, one per
// frame type T the interface carries. Tick is called once per network
// tick to let the driver poll incoming frames; SendIPv4 is called once
// per queued outgoing IPv4 packet that routed to this interface.
type ServerIface[T any] interface {
	Tick(ctx *network.Context, iface int, conf *ServerIfaceConf)
	SendIPv4(ctx *network.Context, iface int, conf *ServerIfaceConf, packet net.Ipv4Packet, linkAddr net.IPv4Addr)
}

// ifaceSlot is implemented by the generic wrapper below; it lets Server
// hold interfaces of differing frame types in one slice the same way
// link.RawLinkHandle erases a link's frame type.
type ifaceSlot interface {
	link(raw link.RawLinkHandle) error
	tick(ctx *network.Context, iface int)
	sendIPv4(ctx *network.Context, iface int, packet net.Ipv4Packet, linkAddr net.IPv4Addr)
	conf() *ServerIfaceConf
}

type typedIfaceSlot[T any] struct {
	driver ServerIface[T]
	c      ServerIfaceConf
}

func (s *typedIfaceSlot[T]) link(raw link.RawLinkHandle) error {
	if _, ok := link.Cast[T](raw); !ok {
		return errWrongType
	}
	return nil
}

func (s *typedIfaceSlot[T]) tick(ctx *network.Context, iface int) {
	s.driver.Tick(ctx, iface, &s.c)
}

func (s *typedIfaceSlot[T]) sendIPv4(ctx *network.Context, iface int, packet net.Ipv4Packet, linkAddr net.IPv4Addr) {
	s.driver.SendIPv4(ctx, iface, &s.c, packet, linkAddr)
}

func (s *typedIfaceSlot[T]) conf() *ServerIfaceConf {
	return &s.c
}

// Server is a general-purpose end host: a set of interfaces each driven
// by its own data-link driver, an IPv4 routing table, and an egress queue
// for packets awaiting routing.
type Server struct {
	ifaces     map[int]ifaceSlot
	ipv4Queue  []net.Ipv4Packet
	Ipv4Routes *IpRoutes[net.IPv4Addr]
}

// New returns a Server with no interfaces configured yet.
func New() *Server {
	return &Server{
		ifaces:     map[int]ifaceSlot{},
		Ipv4Routes: NewIpRoutes[net.IPv4Addr](),
	}
}

// AddIface registers driver as the handler for iface, carrying frames of
// type T. It panics if iface is already registered: a duplicate interface
// index is a setup bug, not a runtime condition a caller should recover
// from.
func AddIface[T any](s *Server, iface int, driver ServerIface[T]) {
	if _, exists := s.ifaces[iface]; exists {
		panic("server: interface already defined")
	}
	s.ifaces[iface] = &typedIfaceSlot[T]{driver: driver}
}

// ConfigureIPv4 sets the IPv4 address/mask of an already-registered
// interface.
func (s *Server) ConfigureIPv4(iface int, ip net.IPv4Addr, mask int) {
	slot, ok := s.ifaces[iface]
	if !ok {
		errors.LogError("server: configured IPv4 on undefined iface ", iface)
		return
	}
	slot.conf().IPv4 = &ServerIfaceIPv4{IP: ip, Mask: mask}
}

// SendIPv4 enqueues packet to be routed and handed to a driver on a
// future tick.
func (s *Server) SendIPv4(packet net.Ipv4Packet) {
	s.ipv4Queue = append(s.ipv4Queue, packet)
}

func (s *Server) Link(iface int, raw link.RawLinkHandle) error {
	slot, ok := s.ifaces[iface]
	if !ok {
		return errNoSuchIface
	}
	return slot.link(raw)
}

func (s *Server) Tick(ctx *network.Context) {
	ifaces := make([]int, 0, len(s.ifaces))
	for iface := range s.ifaces {
		ifaces = append(ifaces, iface)
	}
	sort.Ints(ifaces)
	for _, iface := range ifaces {
		s.ifaces[iface].tick(ctx, iface)
	}

	queue := s.ipv4Queue
	s.ipv4Queue = nil

	for _, packet := range queue {
		iface, linkAddr, ok := s.Ipv4Routes.Fetch(packet.Dst)
		if !ok {
			errors.LogWarning("server: no route for ", packet.Dst.String(), ", packet dropped")
			continue
		}
		slot, ok := s.ifaces[iface]
		if !ok {
			errors.LogWarning("server: route points at undefined iface ", iface, ", packet dropped")
			continue
		}
		if slot.conf().IPv4 == nil {
			// Packets routed to an interface with no IPv4 configuration
			// are discarded silently, matching the original driver.
			continue
		}
		slot.sendIPv4(ctx, iface, packet, linkAddr)
	}
}

type wrongTypeError struct{}

func (wrongTypeError) Error() string { return "server: link does not carry this interface's frame type" }

var errWrongType = wrongTypeError{}

type noSuchIfaceError struct{}

func (noSuchIfaceError) Error() string { return "server: no interface registered at that index" }

var errNoSuchIface = noSuchIfaceError{}
