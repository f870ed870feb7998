package state

// SampleNetwork builds a small network:
//
//	A --1-- 1 --1-- 2 --1-- 3 --1-- B
//	        |               |
//	        +-------5-------+
//
// With failure set, the 1-2 link goes down at t=30 and the routes move onto the 1-3 link.
func SampleNetwork(failure bool) NetworkCfg {
	cfg := NetworkCfg{
		Routers: []Addr{"1", "2", "3"},
		Clients: []Addr{"A", "B"},
		Links: []LinkCfg{
			{A: "A", B: "1", PortA: 0, PortB: 0, CostAB: 1, CostBA: 1},
			{A: "1", B: "2", PortA: 1, PortB: 0, CostAB: 1, CostBA: 1},
			{A: "2", B: "3", PortA: 1, PortB: 1, CostAB: 1, CostBA: 1},
			{A: "1", B: "3", PortA: 2, PortB: 2, CostAB: 5, CostBA: 5},
			{A: "3", B: "B", PortA: 0, PortB: 0, CostAB: 1, CostBA: 1},
		},
		CorrectRoutes: [][]Addr{
			{"A", "1", "2", "3", "B"},
			{"B", "3", "2", "1", "A"},
		},
	}
	if failure {
		cfg.Changes = []ChangeCfg{
			{At: 30, Op: LinkDown, LinkCfg: LinkCfg{A: "1", B: "2"}},
		}
		cfg.CorrectRoutes = [][]Addr{
			{"A", "1", "3", "B"},
			{"B", "3", "1", "A"},
		}
	}
	ExpandNetworkConfig(&cfg)
	return cfg
}
