// Package log is netcrab's ambient logging package: a severity-gated,
// handler-based event sink used by common/errors and by the simulator's
// observer mechanism (see FrameMessage).
package log // import "github.com/mindstorm38/netcrab/common/log"

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Severity indicates how important a log message is. Lower values are more
// severe, mirroring syslog-style ordering.
type Severity int32

const (
	SeverityUnknown Severity = iota
	SeverityError
	SeverityWarning
	SeverityInfo
	SeverityDebug
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "Error"
	case SeverityWarning:
		return "Warning"
	case SeverityInfo:
		return "Info"
	case SeverityDebug:
		return "Debug"
	default:
		return "Unknown"
	}
}

// Message is anything that can be recorded by a Handler.
type Message interface {
	String() string
}

// GeneralMessage wraps an arbitrary error/value at a given severity. It is
// what common/errors records when an *Error is logged explicitly.
type GeneralMessage struct {
	Severity Severity
	Content  interface{}
}

func (m *GeneralMessage) String() string {
	return fmt.Sprint(m.Content)
}

// Handler receives every recorded Message, regardless of severity; it is
// responsible for its own filtering.
type Handler interface {
	Handle(msg Message)
}

var (
	handlersMu sync.RWMutex
	handlers   []Handler
)

// RegisterHandler adds a Handler to the process-global registry. Handlers
// are never unregistered; the simulator runs for the life of the process
// that embeds it.
func RegisterHandler(h Handler) {
	handlersMu.Lock()
	defer handlersMu.Unlock()
	handlers = append(handlers, h)
}

// Record dispatches msg to every registered Handler.
func Record(msg Message) {
	handlersMu.RLock()
	defer handlersMu.RUnlock()
	for _, h := range handlers {
		h.Handle(msg)
	}
}

// consoleHandler writes every message it receives at or below Level to w,
// one line per message.
type consoleHandler struct {
	w     io.Writer
	mu    sync.Mutex
	level Severity
}

// NewConsoleHandler returns a Handler that writes messages at severity
// level or more severe to w, one per line. Messages without a declared
// severity (plain Message values, e.g. FrameMessage) are always written.
func NewConsoleHandler(w io.Writer, level Severity) Handler {
	return &consoleHandler{w: w, level: level}
}

// NewStdoutHandler is the console handler wired to os.Stdout at
// SeverityInfo, the default used when a caller asks for console logging
// without tuning the level.
func NewStdoutHandler() Handler {
	return NewConsoleHandler(os.Stdout, SeverityInfo)
}

func (h *consoleHandler) Handle(msg Message) {
	if gm, ok := msg.(*GeneralMessage); ok && gm.Severity > h.level {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	fmt.Fprintln(h.w, msg.String())
}
