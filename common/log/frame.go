package log

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Named is anything the debug listener can resolve a human name for before
// falling back to a numeric identity, e.g. network.NodeHandle.
type Named interface {
	// Name returns the registered display name, and whether one is set.
	Name() (string, bool)
	// Fallback returns the "NodeHandle(<index>)" form used when no name is
	// registered.
	Fallback() string
}

// FrameMessage is this module's single kind of observable event: a frame
// successfully received over a link, rendered as "[src -> dst] frame".
// RunID is optional: it correlates log lines back to a specific
// network.Network instance once more than one is running in the same
// process (e.g. parallel test cases), and is omitted from String() when
// left as the zero uuid.UUID.
type FrameMessage struct {
	RunID uuid.UUID
	Src   Named
	Dst   Named
	Frame interface{}
}

func (m *FrameMessage) String() string {
	b := strings.Builder{}
	if m.RunID != uuid.Nil {
		b.WriteByte('[')
		b.WriteString(m.RunID.String())
		b.WriteString("] ")
	}
	b.WriteByte('[')
	b.WriteString(displayName(m.Src))
	b.WriteString(" -> ")
	b.WriteString(displayName(m.Dst))
	b.WriteString("] ")
	b.WriteString(formatFrame(m.Frame))
	return b.String()
}

func displayName(n Named) string {
	if n == nil {
		return "?"
	}
	if name, ok := n.Name(); ok {
		return name
	}
	return n.Fallback()
}

func formatFrame(frame interface{}) string {
	if s, ok := frame.(interface{ String() string }); ok {
		return s.String()
	}
	return fmt.Sprint(frame)
}
