package link

// Side reports which endpoint this handle identifies (0 for side A, 1 for
// side B). View does its own routing from the handle it is built with.
func (h LinkHandle[T]) Side() int {
	return int(h.side)
}

// View grants a node temporary, per-tick access to one side of a typed
// link: Send enqueues a frame for the other side, Recv dequeues the next
// frame addressed to this side. A View is only ever handed out for the
// duration of a single Tick call by the owning network.
type View[T any] struct {
	queues *Queues[T]
	at     side
	notify func(frame T)
}

// NewView builds a View over queues for the given handle. notify, if
// non-nil, is invoked with every frame successfully dequeued by Recv —
// the network package uses this to dispatch FrameMessage listeners
// without the link package needing to know what a listener is.
func NewView[T any](queues *Queues[T], handle LinkHandle[T], notify func(frame T)) View[T] {
	return View[T]{queues: queues, at: handle.side, notify: notify}
}

// Send enqueues frame towards the opposite endpoint of this link.
func (v View[T]) Send(frame T) {
	v.queues.Send(v.at, frame)
}

// Recv dequeues the next frame addressed to this endpoint, if any.
func (v View[T]) Recv() (T, bool) {
	frame, ok := v.queues.Recv(v.at)
	if ok && v.notify != nil {
		v.notify(frame)
	}
	return frame, ok
}
