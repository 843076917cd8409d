// Package sink provides minimal test/fixture nodes: a pure no-op sink
// that accepts any link of one frame type and discards everything it
// receives, and a Scripted variant that can be told to emit a frame on a
// chosen tick and records everything it sees. Neither node is part of the
// simulated devices described by the network model itself — they exist
// to drive link- and network-level tests without a full Server or switch.
package sink

import (
	"github.com/mindstorm38/netcrab/link"
	"github.com/mindstorm38/netcrab/network"
)

// Sink accepts any number of links carrying frames of type T and drains
// them every tick without reacting.
type Sink[T any] struct {
	ifaces []int
}

// New returns an empty Sink.
func New[T any]() *Sink[T] {
	return &Sink[T]{}
}

func (s *Sink[T]) Link(iface int, raw link.RawLinkHandle) error {
	if _, ok := link.Cast[T](raw); !ok {
		return errWrongType
	}
	s.ifaces = append(s.ifaces, iface)
	return nil
}

func (s *Sink[T]) Tick(ctx *network.Context) {
	for _, iface := range s.ifaces {
		for {
			if _, ok := network.Recv[T](ctx, iface); !ok {
				break
			}
		}
	}
}

// Received is one frame a Scripted node observed, tagged with the tick it
// arrived on and the interface it arrived at.
type Received[T any] struct {
	Tick  uint64
	Iface int
	Frame T
}

// Scripted is a Sink that can also be told to broadcast a frame on a
// single chosen tick, and that records every frame it receives across its
// whole lifetime instead of discarding them.
type Scripted[T any] struct {
	ifaces   []int
	sendTick uint64
	sendIt   bool
	frame    T

	Received []Received[T]
}

// NewScripted returns a Scripted node with nothing queued to send.
func NewScripted[T any]() *Scripted[T] {
	return &Scripted[T]{}
}

// SendOnTick arranges for frame to be broadcast on every wired interface
// during the given tick, once.
func (s *Scripted[T]) SendOnTick(tick uint64, frame T) {
	s.sendTick = tick
	s.sendIt = true
	s.frame = frame
}

func (s *Scripted[T]) Link(iface int, raw link.RawLinkHandle) error {
	if _, ok := link.Cast[T](raw); !ok {
		return errWrongType
	}
	s.ifaces = append(s.ifaces, iface)
	return nil
}

func (s *Scripted[T]) Tick(ctx *network.Context) {
	if s.sendIt && ctx.CurrentTick() == s.sendTick {
		for _, iface := range s.ifaces {
			network.Send[T](ctx, iface, s.frame)
		}
		s.sendIt = false
	}

	for _, iface := range s.ifaces {
		for {
			frame, ok := network.Recv[T](ctx, iface)
			if !ok {
				break
			}
			s.Received = append(s.Received, Received[T]{
				Tick:  ctx.CurrentTick(),
				Iface: iface,
				Frame: frame,
			})
		}
	}
}

type wrongTypeError struct{}

func (wrongTypeError) Error() string { return "sink: link carries a different frame type" }

var errWrongType = wrongTypeError{}
