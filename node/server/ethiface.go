package server

import (
	"time"

	"github.com/mindstorm38/netcrab/common/net"
	"github.com/mindstorm38/netcrab/network"
)

// ArpTimeout is the duration a pending ARP request is given before it is
// considered stale and resent.
const ArpTimeout = 10 * time.Second

// arpState is the state of one entry in an Ethernet interface's ARP
// cache: Vacant is represented by the entry's absence from the map.
type arpState int

const (
	arpPending arpState = iota
	arpKnown
)

type arpEntry struct {
	state       arpState
	mac         net.MacAddr
	requestedAt time.Time
	queued      []net.Ipv4Packet
}

// EthIface is the Ethernet/ARP data-link driver for a Server interface:
// it filters incoming frames by destination MAC, answers and issues ARP
// requests, and resolves IPv4 link addresses to MAC addresses before
// handing packets to the link, coalescing any packets that arrive while
// a request is outstanding.
type EthIface struct {
	Mac   net.MacAddr
	cache map[net.IPv4Addr]*arpEntry
	now   func() time.Time
}

// NewEthIface returns an Ethernet driver for the given hardware address.
func NewEthIface(mac net.MacAddr) *EthIface {
	return &EthIface{Mac: mac, cache: map[net.IPv4Addr]*arpEntry{}, now: time.Now}
}

// SetClock overrides the driver's time source, used by tests to exercise
// ARP timeout/resend behavior without a real ten-second wait.
func (e *EthIface) SetClock(now func() time.Time) {
	e.now = now
}

func (e *EthIface) Tick(ctx *network.Context, iface int, conf *ServerIfaceConf) {
	for {
		frame, ok := network.Recv[net.EthFrame](ctx, iface)
		if !ok {
			break
		}

		if !frame.Dst.IsMulticast() && frame.Dst != e.Mac {
			// Not addressed to this interface: dropped silently at the
			// interface filter.
			continue
		}

		switch payload := frame.Payload.(type) {
		case net.ArpPayload:
			if conf.IPv4 != nil {
				e.recvArp(ctx, iface, payload.Packet, conf.IPv4.IP)
			}
		case net.Ipv4Payload:
			// IPv4 reception/forwarding beyond the Ethernet layer is out
			// of scope for this driver: the simulator observes delivery
			// via the frame listener, not via a further IP-layer queue.
			_ = payload
		}
	}
}

func (e *EthIface) recvArp(ctx *network.Context, iface int, arp net.ArpIpv4Packet, localIP net.IPv4Addr) {
	switch arp.Op {
	case net.ArpRequest:
		if arp.TargetIP == localIP {
			network.Send[net.EthFrame](ctx, iface, net.EthFrame{
				Src: e.Mac,
				Dst: arp.SenderMac,
				Payload: net.ArpPayload{Packet: net.ArpIpv4Packet{
					Op:        net.ArpReply,
					SenderMac: e.Mac,
					TargetMac: arp.SenderMac,
					SenderIP:  localIP,
					TargetIP:  arp.SenderIP,
				}},
			})
		}
		e.learn(ctx, iface, arp.SenderIP, arp.SenderMac)
	case net.ArpReply:
		e.learn(ctx, iface, arp.SenderIP, arp.SenderMac)
	}
}

// learn records ip -> mac in the cache and flushes any packets that were
// queued behind a pending request for ip, in the order they were
// enqueued.
func (e *EthIface) learn(ctx *network.Context, iface int, ip net.IPv4Addr, mac net.MacAddr) {
	entry, existed := e.cache[ip]
	if existed && entry.state == arpPending {
		for _, packet := range entry.queued {
			network.Send[net.EthFrame](ctx, iface, net.EthFrame{
				Src:     e.Mac,
				Dst:     mac,
				Payload: net.Ipv4Payload{Packet: packet},
			})
		}
	}
	e.cache[ip] = &arpEntry{state: arpKnown, mac: mac}
}

func (e *EthIface) SendIPv4(ctx *network.Context, iface int, conf *ServerIfaceConf, packet net.Ipv4Packet, linkAddr net.IPv4Addr) {
	var dstMac net.MacAddr

	switch {
	case linkAddr.IsMulticast():
		dstMac = net.MacFromMulticastIPv4(linkAddr)

	case linkAddr.IsBroadcast():
		dstMac = net.Broadcast

	default:
		entry, found := e.cache[linkAddr]

		switch {
		case found && entry.state == arpKnown:
			dstMac = entry.mac

		case found && entry.state == arpPending && e.now().Sub(entry.requestedAt) < ArpTimeout:
			entry.queued = append(entry.queued, packet)
			return

		default:
			// Either nothing cached yet, or a prior request timed out:
			// (re)send the request and (re)start the pending entry.
			e.cache[linkAddr] = &arpEntry{
				state:       arpPending,
				requestedAt: e.now(),
				queued:      []net.Ipv4Packet{packet},
			}
			network.Send[net.EthFrame](ctx, iface, net.EthFrame{
				Src: e.Mac,
				Dst: net.Broadcast,
				Payload: net.ArpPayload{Packet: net.ArpIpv4Packet{
					Op:        net.ArpRequest,
					SenderMac: e.Mac,
					TargetMac: net.ZERO,
					SenderIP:  conf.IPv4.IP,
					TargetIP:  linkAddr,
				}},
			})
			return
		}
	}

	network.Send[net.EthFrame](ctx, iface, net.EthFrame{
		Src:     e.Mac,
		Dst:     dstMac,
		Payload: net.Ipv4Payload{Packet: packet},
	})
}
