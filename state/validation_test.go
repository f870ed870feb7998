package state

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameValidator_Valid(t *testing.T) {
	assert.NoError(t, NameValidator("1"))
	assert.NoError(t, NameValidator("A"))
	assert.NoError(t, NameValidator("ab_cd"))
	assert.NoError(t, NameValidator("abcd-a.com"))
}

func TestNameValidator_Invalid(t *testing.T) {
	assert.Error(t, NameValidator("node name"))
	assert.Error(t, NameValidator(""))
	assert.Error(t, NameValidator("\t"))
	assert.Error(t, NameValidator("abcd-a.com\\hi"))
	assert.Error(t, NameValidator(strings.Repeat("a", 200)))
}

func TestNetworkConfigValidator_Sample(t *testing.T) {
	cfg := SampleNetwork(false)
	assert.NoError(t, NetworkConfigValidator(&cfg))
	cfg = SampleNetwork(true)
	assert.NoError(t, NetworkConfigValidator(&cfg))
}

func TestNetworkConfigValidator_DuplicatePort(t *testing.T) {
	cfg := SampleNetwork(false)
	cfg.Links = append(cfg.Links, LinkCfg{A: "2", B: "B", PortA: 0, PortB: 1, CostAB: 1, CostBA: 1})
	assert.ErrorContains(t, NetworkConfigValidator(&cfg), "port 0 on 2 is already used")
}

func TestNetworkConfigValidator_UnknownNode(t *testing.T) {
	cfg := SampleNetwork(false)
	cfg.Links = append(cfg.Links, LinkCfg{A: "2", B: "9", PortA: 5, PortB: 0, CostAB: 1, CostBA: 1})
	assert.ErrorContains(t, NetworkConfigValidator(&cfg), "node 9 not defined")
}

func TestNetworkConfigValidator_ClientLinks(t *testing.T) {
	cfg := SampleNetwork(false)
	cfg.Links = append(cfg.Links, LinkCfg{A: "2", B: "A", PortA: 5, PortB: 1, CostAB: 1, CostBA: 1})
	assert.ErrorContains(t, NetworkConfigValidator(&cfg), "clients may only have one")
}

func TestNetworkConfigValidator_ZeroCost(t *testing.T) {
	cfg := SampleNetwork(false)
	cfg.Links[1].CostAB = 0
	assert.ErrorContains(t, NetworkConfigValidator(&cfg), "costs must be positive")
}

func TestNetworkConfigValidator_DuplicateNode(t *testing.T) {
	cfg := SampleNetwork(false)
	cfg.Clients = append(cfg.Clients, "1")
	assert.ErrorContains(t, NetworkConfigValidator(&cfg), "duplicate node found: 1")
}

func TestNetworkConfigValidator_BadChange(t *testing.T) {
	cfg := SampleNetwork(false)
	cfg.Changes = []ChangeCfg{{At: 5, Op: "sideways", LinkCfg: LinkCfg{A: "1", B: "2"}}}
	assert.ErrorContains(t, NetworkConfigValidator(&cfg), `unknown op "sideways"`)
}

func TestNetworkConfigValidator_BadCorrectRoute(t *testing.T) {
	cfg := SampleNetwork(false)
	cfg.CorrectRoutes = append(cfg.CorrectRoutes, []Addr{"A"})
	assert.ErrorContains(t, NetworkConfigValidator(&cfg), "at least a source and a destination")
}

func TestNetworkConfigValidator_CostCeiling(t *testing.T) {
	cfg := SampleNetwork(false)
	cfg.Links[1].CostAB = math.MaxUint32 - 5
	assert.ErrorContains(t, NetworkConfigValidator(&cfg), "costs must not exceed 4294967279")

	cfg = SampleNetwork(false)
	cfg.Links[1].CostBA = MaxLinkCost
	assert.NoError(t, NetworkConfigValidator(&cfg))

	cfg = SampleNetwork(false)
	cfg.Changes = append(cfg.Changes, ChangeCfg{At: 5, Op: LinkUp, LinkCfg: LinkCfg{A: "2", B: "3", PortA: 1, PortB: 1, CostAB: 1, CostBA: math.MaxUint32}})
	assert.ErrorContains(t, NetworkConfigValidator(&cfg), "change at 5")
}
