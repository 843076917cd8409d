package log_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mindstorm38/netcrab/common/log"
)

type testHandler struct {
	value string
}

func (h *testHandler) Handle(msg log.Message) {
	h.value = msg.String()
}

func TestRecordDispatchesToAllHandlers(t *testing.T) {
	var a, b testHandler
	log.RegisterHandler(&a)
	log.RegisterHandler(&b)

	log.Record(&log.GeneralMessage{
		Severity: log.SeverityError,
		Content:  "disk on fire",
	})

	if diff := cmp.Diff("disk on fire", a.value); diff != "" {
		t.Error(diff)
	}
	if diff := cmp.Diff("disk on fire", b.value); diff != "" {
		t.Error(diff)
	}
}

type fakeNamed struct {
	name string
	has  bool
	idx  int
}

func (n fakeNamed) Name() (string, bool) { return n.name, n.has }
func (n fakeNamed) Fallback() string     { return "NodeHandle(0)" }

func TestFrameMessageFormat(t *testing.T) {
	msg := &log.FrameMessage{
		Src:   fakeNamed{name: "pc0", has: true},
		Dst:   fakeNamed{has: false},
		Frame: "hello",
	}

	want := "[pc0 -> NodeHandle(0)] hello"
	if diff := cmp.Diff(want, msg.String()); diff != "" {
		t.Error(diff)
	}
}
