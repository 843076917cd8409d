// Package network implements the simulator's driver loop: a Network owns
// a set of nodes and the typed links between them, advances them one
// discrete tick at a time in registration order, and fans out every
// frame that changes hands to registered listeners for observation
// (logging, test assertions, a future packet-capture sink).
package network

import (
	"reflect"

	"github.com/google/uuid"

	"github.com/mindstorm38/netcrab/common/errors"
	"github.com/mindstorm38/netcrab/common/log"
	"github.com/mindstorm38/netcrab/link"
)

// NodeHandle identifies a node registered with a Network. Handles are
// produced by Network.AddNode; the zero value equals the handle of the
// first node added.
type NodeHandle struct {
	index int
}

// Fallback renders a NodeHandle when no registered name is available.
func (h NodeHandle) Fallback() string {
	return "NodeHandle(" + itoa(h.index) + ")"
}

// namedHandle pairs a NodeHandle with whatever display name its Network
// has registered for it, implementing log.Named for the debug log sink.
type namedHandle struct {
	handle NodeHandle
	name   string
	ok     bool
}

func (n namedHandle) Name() (string, bool) { return n.name, n.ok }
func (n namedHandle) Fallback() string     { return n.handle.Fallback() }

func itoa(v int) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Node is implemented by every simulated device. Link is called once per
// interface at wiring time with the raw handle for that interface; it
// must Cast to the frame type the node expects and reject (return an
// error) any handle it cannot speak. Tick is called once per discrete
// time step, in the node's registration order, and is given a Context
// scoped to exactly this node's own interfaces.
type Node interface {
	Link(iface int, raw link.RawLinkHandle) error
	Tick(ctx *Context)
}

type linkEntry struct {
	typ      reflect.Type
	queues   interface{} // *link.Queues[T]
	nodeA    NodeHandle
	ifaceA   int
	nodeB    NodeHandle
	ifaceB   int
}

type listenerEntry struct {
	typ reflect.Type
	fn  func(src, dst NodeHandle, frame interface{})
}

type nodeEntry struct {
	index  int
	node   Node
	ifaces map[int]RawHandleInfo
}

// RawHandleInfo records the link-index and side a node's interface was
// wired to, so a Context can locate the right Queues at Tick time.
type RawHandleInfo struct {
	raw link.RawLinkHandle
}

// Network is the tick-driven simulated network: a closed set of nodes
// connected by typed point-to-point links.
type Network struct {
	RunID     uuid.UUID
	nodes     []*nodeEntry
	links     []*linkEntry
	listeners []listenerEntry
	names     map[int]string
	tick      uint64
}

// New returns an empty Network, ready for nodes and links to be added.
func New() *Network {
	return &Network{RunID: uuid.New()}
}

// AddNode registers a node with the network and returns its handle. Nodes
// are ticked in the order they are added.
func (n *Network) AddNode(node Node) NodeHandle {
	h := NodeHandle{index: len(n.nodes)}
	n.nodes = append(n.nodes, &nodeEntry{index: h.index, node: node, ifaces: map[int]RawHandleInfo{}})
	return h
}

// CurrentTick returns the current simulation tick, starting at 0 before the
// first call to Tick has completed.
func (n *Network) CurrentTick() uint64 {
	return n.tick
}

// Name registers a display name for h, used by the debug log sink
// (common/log.FrameMessage) in place of its "NodeHandle(<index>)"
// fallback.
func (n *Network) Name(h NodeHandle, name string) {
	if n.names == nil {
		n.names = map[int]string{}
	}
	n.names[h.index] = name
}

func (n *Network) namedHandle(h NodeHandle) namedHandle {
	name, ok := n.names[h.index]
	return namedHandle{handle: h, name: name, ok: ok}
}

// Connect creates a new point-to-point link of frame type T between the
// given node/interface pairs, in the given receive discipline, and wires
// both endpoints by calling Node.Link on each. A node rejecting its side
// of the link (returning a non-nil error) is an unrecoverable wiring
// mistake, not a runtime condition a caller can sensibly recover from, so
// it is reported via errors.LogError and then panics — mirroring how the
// original run-time treated a coherence violation on link construction.
func Connect[T any](n *Network, a NodeHandle, ifaceA int, b NodeHandle, ifaceB int, discipline link.Discipline) {
	index := len(n.links)
	rawA, rawB, queues := link.NewPair[T](index, discipline)

	n.links = append(n.links, &linkEntry{
		typ:    reflect.TypeOf((*T)(nil)).Elem(),
		queues: queues,
		nodeA:  a,
		ifaceA: ifaceA,
		nodeB:  b,
		ifaceB: ifaceB,
	})

	if err := n.nodes[a.index].node.Link(ifaceA, rawA); err != nil {
		errors.LogErrorInner(err, "node ", a.Fallback(), " rejected link at iface ", ifaceA)
		panic(err)
	}
	if err := n.nodes[b.index].node.Link(ifaceB, rawB); err != nil {
		errors.LogErrorInner(err, "node ", b.Fallback(), " rejected link at iface ", ifaceB)
		panic(err)
	}

	n.nodes[a.index].ifaces[ifaceA] = RawHandleInfo{raw: rawA}
	n.nodes[b.index].ifaces[ifaceB] = RawHandleInfo{raw: rawB}
}

// Subscribe registers fn to be called every time a frame of type T is
// successfully received on any link, from inside the receiving node's Recv
// call, before that call returns the frame to the node's Tick. Subscribers
// see every link indiscriminately; filtering by endpoint is the caller's
// job.
func Subscribe[T any](n *Network, fn func(src, dst NodeHandle, frame T)) {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	n.listeners = append(n.listeners, listenerEntry{
		typ: typ,
		fn: func(src, dst NodeHandle, frame interface{}) {
			fn(src, dst, frame.(T))
		},
	})
}

func (n *Network) notify(src, dst NodeHandle, frame interface{}) {
	typ := reflect.TypeOf(frame)
	for _, l := range n.listeners {
		if l.typ == typ {
			l.fn(src, dst, frame)
		}
	}
	log.Record(&log.FrameMessage{
		RunID: n.RunID,
		Src:   n.namedHandle(src),
		Dst:   n.namedHandle(dst),
		Frame: frame,
	})
}

// Tick advances the simulation by one discrete step: every registered
// node's Tick method is called exactly once, in registration order. A
// frame a node sends this tick becomes visible immediately to any node
// with a higher registration index whose Tick has not yet run this
// round, and only on the following tick to nodes at or below its own
// index — this is simply a property of the shared Queues being mutated
// in place as nodes run in order, not anything Tick enforces explicitly.
func (n *Network) Tick() {
	for _, ne := range n.nodes {
		ctx := &Context{net: n, self: ne}
		ne.node.Tick(ctx)
	}
	n.tick++
}
