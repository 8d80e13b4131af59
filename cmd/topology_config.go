package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/aneeshdurg/toposim/sim"
)

// TopologyConfig is the on-disk description of a shape. Racks list node ids
// in position order; switches list the two rack indices they join, in the
// order their states appear in a configuration.
type TopologyConfig struct {
	Racks    [][]int `yaml:"racks" toml:"racks"`
	Switches [][]int `yaml:"switches" toml:"switches"`
}

// Shape validates the description and builds the shape.
func (c *TopologyConfig) Shape() (*sim.Shape, error) {
	racks := make([]sim.Rack, len(c.Racks))
	for i, r := range c.Racks {
		if len(r) != 2 {
			return nil, fmt.Errorf("rack %d: want 2 nodes, got %d", i, len(r))
		}
		racks[i] = sim.Rack{sim.Node(r[0]), sim.Node(r[1])}
	}
	switches := make([]sim.SwitchSpec, len(c.Switches))
	for i, s := range c.Switches {
		if len(s) != 2 {
			return nil, fmt.Errorf("switch %d: want 2 racks, got %d", i, len(s))
		}
		switches[i] = sim.SwitchSpec{A: s[0], B: s[1]}
	}
	return sim.NewShape(racks, switches)
}

// LoadTopology reads a YAML (.yaml/.yml) or TOML (.toml) shape file. Unknown
// fields are rejected so typos fail loudly. An empty path selects the
// built-in 3-rack SlimFly shape.
func LoadTopology(path string) (*sim.Shape, error) {
	if path == "" {
		return sim.SlimFly3(), nil
	}
	var cfg TopologyConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading topology file: %w", err)
		}
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parsing topology YAML: %w", err)
		}
	case ".toml":
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return nil, fmt.Errorf("parsing topology TOML: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("parsing topology TOML: unknown keys %v", undecoded)
		}
	default:
		return nil, fmt.Errorf("topology file %s: unsupported extension (want .yaml, .yml or .toml)", path)
	}
	shape, err := cfg.Shape()
	if err != nil {
		return nil, fmt.Errorf("topology file %s: %w", path, err)
	}
	return shape, nil
}
