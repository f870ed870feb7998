package core

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/encodeous/dvnode/state"
	"github.com/google/go-cmp/cmp"
)

type HarnessEvent struct {
	Message string
	Args    []any
}

func MakeEvent(msg string, args ...any) HarnessEvent {
	return HarnessEvent{
		Message: msg,
		Args:    args,
	}
}

// RouterHarness records everything the algorithm asks of its router
type RouterHarness struct {
	actions []HarnessEvent
	ports   []state.Port
}

func (h *RouterHarness) SendAdvertisement(port state.Port, vec state.Vector) {
	h.actions = append(h.actions, MakeEvent("ADVERTISE", port, vec))
}

func (h *RouterHarness) Forward(port state.Port, pkt *state.Packet) {
	h.actions = append(h.actions, MakeEvent("FORWARD", port, pkt.Dst))
}

func (h *RouterHarness) Links() []state.Port {
	return h.ports
}

func (h *RouterHarness) Log(event RouterEvent, desc string, args ...any) {
	x := make([]any, 0)
	x = append(x, event)
	x = append(x, desc)
	x = append(x, args...)
	h.actions = append(h.actions, MakeEvent("LOG", x...))
}

// Up marks port as having a link, the way the substrate would before HandleLinkUp
func (h *RouterHarness) Up(ports ...state.Port) {
	for _, p := range ports {
		if !slices.Contains(h.ports, p) {
			h.ports = append(h.ports, p)
		}
	}
}

func (h *RouterHarness) Down(port state.Port) {
	h.ports = slices.DeleteFunc(h.ports, func(p state.Port) bool {
		return p == port
	})
}

type HarnessEvents []HarnessEvent

func (h HarnessEvents) String() string {
	out := make([]string, 0)
	for _, action := range h {
		cur := action.Message
		for _, arg := range action.Args {
			cur += " " + fmt.Sprint(arg)
		}
		out = append(out, cur)
	}
	slices.Sort(out)
	return strings.Join(out, "\n")
}

// GetActions returns and clears every non-log action
func (h *RouterHarness) GetActions() HarnessEvents {
	x := make([]HarnessEvent, 0)
	for _, action := range h.actions {
		if action.Message != "LOG" {
			x = append(x, action)
		}
	}

	h.actions = make([]HarnessEvent, 0)
	return x
}

// GetLogs returns and clears the logged router events
func (h *RouterHarness) GetLogs() []RouterEvent {
	x := make([]RouterEvent, 0)
	for _, action := range h.actions {
		if action.Message == "LOG" {
			x = append(x, action.Args[0].(RouterEvent))
		}
	}
	h.actions = make([]HarnessEvent, 0)
	return x
}

func (e HarnessEvents) contains(msg string, args ...any) bool {
	for _, event := range e {
		if event.Message == msg {
			if len(event.Args) >= len(args) {
				match := true
				for i, arg := range args {
					if !cmp.Equal(event.Args[i], arg) {
						match = false
						break
					}
				}
				if match {
					return true
				}
			}
		}
	}
	return false
}

func (e HarnessEvents) AssertContains(t *testing.T, msg string, args ...any) {
	t.Helper()
	if e.contains(msg, args...) {
		return
	}
	t.Fatal("Expected event not found: ", msg, " with args: ", args, " in ", e)
}

func (e HarnessEvents) AssertNotContains(t *testing.T, msg string, args ...any) {
	t.Helper()
	if e.contains(msg, args...) {
		t.Fatal("Unexpected event found: ", msg, " with args: ", args, " in ", e)
	}
}

// Advertised returns the vector sent out of port, if any
func (e HarnessEvents) Advertised(port state.Port) (state.Vector, bool) {
	for _, event := range e {
		if event.Message == "ADVERTISE" && event.Args[0] == port {
			return event.Args[1].(state.Vector), true
		}
	}
	return nil, false
}

func (h *RouterHarness) LinkUp(rs *state.RouterState, port state.Port, neigh state.Addr, cost uint32) {
	h.Up(port)
	HandleLinkUp(rs, h, port, neigh, cost)
}

func (h *RouterHarness) LinkDown(rs *state.RouterState, port state.Port) {
	h.Down(port)
	HandleLinkDown(rs, h, port)
}
