package ethswitch_test

import (
	"testing"

	netaddr "github.com/mindstorm38/netcrab/common/net"
	"github.com/mindstorm38/netcrab/link"
	"github.com/mindstorm38/netcrab/network"
	"github.com/mindstorm38/netcrab/node/ethswitch"
	"github.com/mindstorm38/netcrab/node/sink"
)

var (
	mac0 = netaddr.MacAddr{0x00, 0x00, 0x5E, 0x00, 0x53, 0xAF}
	mac1 = netaddr.MacAddr{0x00, 0x00, 0x5E, 0x00, 0x53, 0xB0}
	mac2 = netaddr.MacAddr{0x00, 0x00, 0x5E, 0x00, 0x53, 0x52}
)

func setupTriangle(t *testing.T) (*network.Network, *sink.Scripted[netaddr.EthFrame], *sink.Scripted[netaddr.EthFrame], *sink.Scripted[netaddr.EthFrame]) {
	t.Helper()
	n := network.New()
	sw := ethswitch.New()
	pc0 := sink.NewScripted[netaddr.EthFrame]()
	pc1 := sink.NewScripted[netaddr.EthFrame]()
	pc2 := sink.NewScripted[netaddr.EthFrame]()

	hsw := n.AddNode(sw)
	hpc0 := n.AddNode(pc0)
	hpc1 := n.AddNode(pc1)
	hpc2 := n.AddNode(pc2)

	network.Connect[netaddr.EthFrame](n, hpc0, 0, hsw, 0, link.LIFO)
	network.Connect[netaddr.EthFrame](n, hpc1, 0, hsw, 1, link.LIFO)
	network.Connect[netaddr.EthFrame](n, hpc2, 0, hsw, 2, link.LIFO)

	return n, pc0, pc1, pc2
}

// TestFloodOnUnknownDestination checks that a frame sent before the
// switch has learned anything is flooded to every other interface.
func TestFloodOnUnknownDestination(t *testing.T) {
	n, pc0, pc1, pc2 := setupTriangle(t)

	pc0.SendOnTick(1, netaddr.EthFrame{Src: mac0, Dst: mac1, Payload: netaddr.RawPayload{1}})

	for i := 0; i < 3; i++ {
		n.Tick()
	}

	if len(pc1.Received) != 1 {
		t.Fatalf("PC1 received %d frames, want 1", len(pc1.Received))
	}
	if len(pc2.Received) != 1 {
		t.Fatalf("PC2 received %d frames, want 1 (flood on unknown destination)", len(pc2.Received))
	}
	if len(pc0.Received) != 0 {
		t.Errorf("flood was echoed back to the sending interface")
	}
}

// TestUnicastAfterLearning checks that once PC0's frame has been seen,
// the switch has learned MAC0 -> iface 0, so PC1's reply is delivered
// only to PC0.
func TestUnicastAfterLearning(t *testing.T) {
	n, pc0, pc1, pc2 := setupTriangle(t)

	// The switch is ticked before the PCs, so PC0's tick-1 frame reaches
	// it on tick 2 and is flooded to PC1 and PC2 in that same tick.
	pc0.SendOnTick(1, netaddr.EthFrame{Src: mac0, Dst: mac1, Payload: netaddr.RawPayload{1}})
	for i := 0; i < 3; i++ {
		n.Tick()
	}
	if len(pc1.Received) != 1 {
		t.Fatalf("setup: PC1 did not receive the flooded frame")
	}
	pc2Before := len(pc2.Received)

	pc1.SendOnTick(n.CurrentTick(), netaddr.EthFrame{Src: mac1, Dst: mac0, Payload: netaddr.RawPayload{2}})
	for i := 0; i < 2; i++ {
		n.Tick()
	}

	if len(pc0.Received) != 1 {
		t.Fatalf("PC0 received %d frames, want exactly 1 (unicast reply)", len(pc0.Received))
	}
	if got := len(pc2.Received) - pc2Before; got != 0 {
		t.Errorf("PC2 received %d frames after setup, want 0 (reply should not be flooded once MAC1 is learned)", got)
	}
}
