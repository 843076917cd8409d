// Package ethswitch implements the simulator's MAC-learning Ethernet
// switch: it learns which interface last sent a given source MAC, floods
// multicast/broadcast/unknown-destination frames to every interface but
// the one they arrived on, and unicasts to a learned destination once
// seen. There is no aging: once learned, a MAC stays associated with its
// interface for the lifetime of the node.
package ethswitch

import (
	"github.com/mindstorm38/netcrab/common/net"
	"github.com/mindstorm38/netcrab/link"
	"github.com/mindstorm38/netcrab/network"
)

type floodEntry struct {
	frame net.EthFrame
	from  int
}

type unicastEntry struct {
	frame net.EthFrame
	to    int
}

// Switch is a MAC-learning bridge carrying net.EthFrame.
type Switch struct {
	ifaces    []int
	macToIface map[net.MacAddr]int

	flood    []floodEntry
	unicast  []unicastEntry
}

// New returns an empty switch with no learned addresses.
func New() *Switch {
	return &Switch{macToIface: map[net.MacAddr]int{}}
}

func (s *Switch) Link(iface int, raw link.RawLinkHandle) error {
	if _, ok := link.Cast[net.EthFrame](raw); !ok {
		return errWrongType
	}
	s.ifaces = append(s.ifaces, iface)
	return nil
}

// Tick drains every interface once, then floods and unicasts the frames
// collected during the drain. The two phases are kept separate (matching
// the drain-then-fan-out shape the original switch used) so that a frame
// arriving on interface 3 can be flooded to interface 1 even though
// interface 1 was already drained earlier in the same tick.
func (s *Switch) Tick(ctx *network.Context) {
	s.flood = s.flood[:0]
	s.unicast = s.unicast[:0]

	for _, iface := range s.ifaces {
		for {
			frame, ok := network.Recv[net.EthFrame](ctx, iface)
			if !ok {
				break
			}

			s.macToIface[frame.Src] = iface

			if frame.Dst.IsMulticast() {
				s.flood = append(s.flood, floodEntry{frame: frame, from: iface})
				continue
			}

			if dstIface, known := s.macToIface[frame.Dst]; known {
				s.unicast = append(s.unicast, unicastEntry{frame: frame, to: dstIface})
			} else {
				s.flood = append(s.flood, floodEntry{frame: frame, from: iface})
			}
		}
	}

	for _, iface := range s.ifaces {
		for _, entry := range s.flood {
			if iface == entry.from {
				continue
			}
			network.Send[net.EthFrame](ctx, iface, entry.frame.Clone())
		}
	}

	for _, entry := range s.unicast {
		network.Send[net.EthFrame](ctx, entry.to, entry.frame)
	}
}

type wrongTypeError struct{}

func (wrongTypeError) Error() string { return "ethswitch: link does not carry EthFrame" }

var errWrongType = wrongTypeError{}
