// Package config loads optional YAML-defined extra constants to register
// alongside the standard set (§4.1's AddConstant extension point).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/symcalc/symcalc/pkg/registry"
)

// Config is the on-disk shape of an extra-constants file:
//
//	constants:
//	  golden: 1.6180339887
//	  avogadro: 6.02214076e23
type Config struct {
	Constants map[string]float64 `yaml:"constants"`
}

// Load reads and parses a YAML config file from path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &c, nil
}

// Apply registers every constant in c against r. First-registration-wins
// (§4.1) means a name already known to r — e, pi, or one applied by an
// earlier config — is left untouched.
func (c *Config) Apply(r *registry.Registry) {
	for name, value := range c.Constants {
		r.AddConstant(name, value)
	}
}
