package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExpandNetworkConfig_Defaults(t *testing.T) {
	cfg := NetworkCfg{
		Changes: []ChangeCfg{
			{At: 50, Op: LinkUp},
			{At: 10, Op: LinkDown},
		},
	}
	ExpandNetworkConfig(&cfg)
	assert.Equal(t, 100, cfg.TimeUnitMs)
	assert.Equal(t, DefaultEndTime, cfg.EndTime)
	assert.Equal(t, DefaultHeartbeat, cfg.Heartbeat)
	assert.Equal(t, DefaultTick, cfg.Tick)
	assert.Equal(t, DefaultClientSendRate, cfg.ClientSendRate)
	assert.Equal(t, 10, cfg.Changes[0].At)
	assert.Equal(t, 50, cfg.Changes[1].At)
}

func TestUnits(t *testing.T) {
	cfg := NetworkCfg{TimeUnitMs: 100}
	assert.Equal(t, 1500*time.Millisecond, cfg.Units(15))
}

func TestIsCorrectRoute(t *testing.T) {
	cfg := SampleNetwork(false)
	assert.True(t, cfg.IsCorrectRoute([]Addr{"A", "1", "2", "3", "B"}))
	assert.False(t, cfg.IsCorrectRoute([]Addr{"A", "1", "3", "B"}))
	assert.Equal(t, "[A, 1, 3, B]", FormatRoute([]Addr{"A", "1", "3", "B"}))
}

func TestLinkConnects(t *testing.T) {
	l := LinkCfg{A: "1", B: "2"}
	assert.True(t, l.Connects("1", "2"))
	assert.True(t, l.Connects("2", "1"))
	assert.False(t, l.Connects("1", "3"))
}
