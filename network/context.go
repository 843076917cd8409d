package network

import "github.com/mindstorm38/netcrab/link"

// Context is handed to a node's Tick method for exactly the duration of
// that call. It scopes link access to the node's own interfaces — a node
// can only Send/Recv through ifaces it was wired with at Connect time.
type Context struct {
	net  *Network
	self *nodeEntry
}

// Self returns the handle of the node this Context was issued to.
func (c *Context) Self() NodeHandle {
	return NodeHandle{index: c.self.index}
}

// CurrentTick returns the tick number of the Tick call this Context was
// issued for.
func (c *Context) CurrentTick() uint64 {
	return c.net.tick
}

func (c *Context) entryFor(iface int) (*linkEntry, link.RawLinkHandle) {
	info, ok := c.self.ifaces[iface]
	if !ok {
		panic("network: node has no link at that iface")
	}
	return c.net.links[info.raw.Index()], info.raw
}

// Recv dequeues the next frame of type T addressed to this node on the
// given interface, if any. A type mismatch between T and the interface's
// wired frame type is a bug in the node's own bookkeeping — it was handed
// a RawLinkHandle it already Cast successfully at Link time — so it
// panics rather than returning an error.
func Recv[T any](c *Context, iface int) (T, bool) {
	entry, raw := c.entryFor(iface)
	handle, ok := link.Cast[T](raw)
	if !ok {
		panic("network: incoherent link type at iface")
	}
	queues, ok := entry.queues.(*link.Queues[T])
	if !ok {
		panic("network: incoherent link type at iface")
	}

	self := c.Self()
	src, dst := entry.nodeA, entry.nodeB
	if entry.nodeA == self {
		src, dst = entry.nodeB, entry.nodeA
	}

	view := link.NewView[T](queues, handle, func(frame T) {
		c.net.notify(src, dst, frame)
	})
	return view.Recv()
}

// Send enqueues frame on the given interface, to be delivered to whatever
// node is wired to its other end.
func Send[T any](c *Context, iface int, frame T) {
	entry, raw := c.entryFor(iface)
	handle, ok := link.Cast[T](raw)
	if !ok {
		panic("network: incoherent link type at iface")
	}
	queues, ok := entry.queues.(*link.Queues[T])
	if !ok {
		panic("network: incoherent link type at iface")
	}
	view := link.NewView[T](queues, handle, nil)
	view.Send(frame)
}
