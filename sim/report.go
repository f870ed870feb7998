package sim

import (
	"fmt"
	"strings"

	"github.com/encodeous/dvnode/state"
)

type RouteReport struct {
	Src     state.Addr
	Dst     state.Addr
	Route   []state.Addr
	Correct bool
}

func (r RouteReport) String() string {
	s := fmt.Sprintf("%s -> %s: %s", r.Src, r.Dst, state.FormatRoute(r.Route))
	if !r.Correct {
		s += " Incorrect Route"
	}
	return s
}

// Report lists the latest route observed between every pair of clients
type Report struct {
	Routes []RouteReport
	// AllCorrect is true if at least one route was observed and all of them are correct
	AllCorrect bool
}

func (r *Report) String() string {
	sb := strings.Builder{}
	for _, route := range r.Routes {
		sb.WriteString(route.String())
		sb.WriteString("\n")
	}
	if r.AllCorrect {
		sb.WriteString("\nSUCCESS: All Routes correct!\n")
	} else {
		sb.WriteString("\nFAILURE: Not all routes are correct\n")
	}
	return sb.String()
}

// Report builds a report from the current observations
func (n *Network) Report() *Report {
	n.Observations.DeleteExpired()
	keys := n.Observations.Keys()
	state.SortPairs(keys)

	rep := &Report{AllCorrect: len(keys) > 0}
	for _, key := range keys {
		item := n.Observations.Get(key)
		if item == nil {
			continue
		}
		route := item.Value()
		correct := n.Cfg.IsCorrectRoute(route)
		rep.Routes = append(rep.Routes, RouteReport{
			Src:     key.V1,
			Dst:     key.V2,
			Route:   route,
			Correct: correct,
		})
		if !correct {
			rep.AllCorrect = false
		}
	}
	return rep
}
