package link_test

import (
	"testing"

	"github.com/mindstorm38/netcrab/link"
)

type frameA struct{ v int }
type frameB struct{ v int }

func TestCastSucceedsForMatchingType(t *testing.T) {
	raw, _, _ := link.NewPair[frameA](0, link.LIFO)

	h, ok := link.Cast[frameA](raw)
	if !ok {
		t.Fatal("Cast[frameA] on a frameA link failed")
	}
	if h.Index() != 0 {
		t.Errorf("Index() = %d, want 0", h.Index())
	}
}

func TestCastFailsForMismatchedType(t *testing.T) {
	raw, _, _ := link.NewPair[frameA](0, link.LIFO)

	if _, ok := link.Cast[frameB](raw); ok {
		t.Fatal("Cast[frameB] on a frameA link unexpectedly succeeded")
	}
}

func TestLIFORecvOrder(t *testing.T) {
	rawA, rawB, queues := link.NewPair[int](0, link.LIFO)
	a, _ := link.Cast[int](rawA)
	b, _ := link.Cast[int](rawB)

	viewA := link.NewView[int](queues, a, nil)
	viewB := link.NewView[int](queues, b, nil)

	viewA.Send(1)
	viewA.Send(2)
	viewA.Send(3)

	got, ok := viewB.Recv()
	if !ok || got != 3 {
		t.Fatalf("Recv() = %v, %v, want 3, true", got, ok)
	}
	got, ok = viewB.Recv()
	if !ok || got != 2 {
		t.Fatalf("Recv() = %v, %v, want 2, true", got, ok)
	}
}

func TestFIFORecvOrder(t *testing.T) {
	rawA, rawB, queues := link.NewPair[int](0, link.FIFO)
	a, _ := link.Cast[int](rawA)
	b, _ := link.Cast[int](rawB)

	viewA := link.NewView[int](queues, a, nil)
	viewB := link.NewView[int](queues, b, nil)

	viewA.Send(1)
	viewA.Send(2)

	got, ok := viewB.Recv()
	if !ok || got != 1 {
		t.Fatalf("Recv() = %v, %v, want 1, true", got, ok)
	}
}

func TestRecvEmptyQueueReturnsFalse(t *testing.T) {
	_, rawB, queues := link.NewPair[int](0, link.LIFO)
	b, _ := link.Cast[int](rawB)
	viewB := link.NewView[int](queues, b, nil)

	if _, ok := viewB.Recv(); ok {
		t.Fatal("Recv() on empty queue returned ok=true")
	}
}

func TestNotifyFiresOnSuccessfulRecv(t *testing.T) {
	rawA, rawB, queues := link.NewPair[int](0, link.FIFO)
	a, _ := link.Cast[int](rawA)
	b, _ := link.Cast[int](rawB)

	var notified []int
	viewA := link.NewView[int](queues, a, nil)
	viewB := link.NewView[int](queues, b, func(frame int) {
		notified = append(notified, frame)
	})

	viewA.Send(42)
	viewB.Recv()
	viewB.Recv() // empty, must not notify again

	if len(notified) != 1 || notified[0] != 42 {
		t.Errorf("notified = %v, want [42]", notified)
	}
}
