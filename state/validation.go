package state

import (
	"fmt"
	"regexp"
	"slices"
)

var namePattern, _ = regexp.Compile("^[0-9A-Za-z._-]+$")

func NameValidator(s string) error {
	if !namePattern.MatchString(s) {
		return fmt.Errorf("%s is not a valid name, must match pattern %s", s, namePattern.String())
	}
	if len(s) > 100 {
		return fmt.Errorf("len(\"%s\") = %d > 100 is too long", s, len(s))
	}
	return nil
}

func linkValidator(cfg *NetworkCfg, l LinkCfg) error {
	nodes := cfg.GetNodes()
	for _, end := range []Addr{l.A, l.B} {
		if !slices.Contains(nodes, end) {
			return fmt.Errorf("link %s: node %s not defined", l, end)
		}
	}
	if l.A == l.B {
		return fmt.Errorf("link %s: a node cannot link to itself", l)
	}
	if !l.PortA.Valid() || !l.PortB.Valid() {
		return fmt.Errorf("link %s: ports must not be negative", l)
	}
	if l.CostAB == 0 || l.CostBA == 0 {
		return fmt.Errorf("link %s: costs must be positive", l)
	}
	if l.CostAB > MaxLinkCost || l.CostBA > MaxLinkCost {
		return fmt.Errorf("link %s: costs must not exceed %d", l, MaxLinkCost)
	}
	return nil
}

// NetworkConfigValidator checks a network configuration after ExpandNetworkConfig
func NetworkConfigValidator(cfg *NetworkCfg) error {
	if cfg.TimeUnitMs <= 0 || cfg.EndTime <= 0 || cfg.Heartbeat <= 0 || cfg.Tick <= 0 || cfg.ClientSendRate <= 0 {
		return fmt.Errorf("time_unit_ms, end_time, heartbeat, tick and client_send_rate must be positive")
	}
	seen := make(map[Addr]struct{})
	for _, node := range cfg.GetNodes() {
		err := NameValidator(string(node))
		if err != nil {
			return err
		}
		if _, ok := seen[node]; ok {
			return fmt.Errorf("duplicate node found: %s", node)
		}
		seen[node] = struct{}{}
	}

	ports := make(map[Pair[Addr, Port]]LinkCfg)
	clientLinks := make(map[Addr]int)
	for _, l := range cfg.Links {
		err := linkValidator(cfg, l)
		if err != nil {
			return err
		}
		for _, end := range []Pair[Addr, Port]{{l.A, l.PortA}, {l.B, l.PortB}} {
			if other, ok := ports[end]; ok {
				return fmt.Errorf("link %s: port %d on %s is already used by link %s", l, end.V2, end.V1, other)
			}
			ports[end] = l
			if cfg.IsClient(end.V1) {
				clientLinks[end.V1]++
			}
		}
	}
	for client, n := range clientLinks {
		if n > 1 {
			return fmt.Errorf("client %s has %d links, clients may only have one", client, n)
		}
	}

	for _, ch := range cfg.Changes {
		switch ch.Op {
		case LinkUp:
			err := linkValidator(cfg, ch.LinkCfg)
			if err != nil {
				return fmt.Errorf("change at %d: %w", ch.At, err)
			}
		case LinkDown:
			if !slices.Contains(cfg.GetNodes(), ch.A) || !slices.Contains(cfg.GetNodes(), ch.B) {
				return fmt.Errorf("change at %d: link %s-%s references an undefined node", ch.At, ch.A, ch.B)
			}
		default:
			return fmt.Errorf("change at %d: unknown op %q", ch.At, ch.Op)
		}
		if ch.At < 0 {
			return fmt.Errorf("change at %d: time must not be negative", ch.At)
		}
	}

	for _, route := range cfg.CorrectRoutes {
		if len(route) < 2 {
			return fmt.Errorf("correct route %s must have at least a source and a destination", FormatRoute(route))
		}
		for _, hop := range route {
			if !slices.Contains(cfg.GetNodes(), hop) {
				return fmt.Errorf("correct route %s: node %s not defined", FormatRoute(route), hop)
			}
		}
	}
	return nil
}
