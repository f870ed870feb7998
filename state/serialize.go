package state

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// ReadNetworkConfig loads, expands and validates a network description
func ReadNetworkConfig(path string) (*NetworkCfg, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := ParseNetworkConfig(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func ParseNetworkConfig(data []byte) (*NetworkCfg, error) {
	var cfg NetworkCfg
	err := yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, err
	}
	ExpandNetworkConfig(&cfg)
	err = NetworkConfigValidator(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func WriteNetworkConfig(path string, cfg *NetworkCfg) error {
	bytes, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, bytes, 0644)
}
