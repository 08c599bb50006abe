// Package config loads manetsim's run configuration from a YAML file,
// MANETSIM_-prefixed environment variables and (applied last, by the
// caller) CLI flags, merged on top of core.DefaultConfig().
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"manetsim/core"
)

// envPrefix is the environment variable prefix for manetsim configuration.
// Variables are named MANETSIM_<KEY>, e.g. MANETSIM_NUMNODES.
const envPrefix = "MANETSIM_"

// Load reads 'path' (if non-empty) as YAML on top of core.DefaultConfig(),
// and overlays MANETSIM_ environment variables. The result is not
// validated here; the caller applies CLI flags and then calls Validate.
// A missing file at a caller-supplied default path is not an error; an
// explicitly requested path that can't be read is.
func Load(path string, required bool) (*core.Config, error) {
	k := koanf.New(".")

	defaults := core.DefaultConfig()
	if err := k.Load(structProvider(defaults), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if required {
				return nil, fmt.Errorf("config: load %s: %w", path, err)
			}
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKeyMapper), nil); err != nil {
		return nil, fmt.Errorf("config: load env overrides: %w", err)
	}

	cfg := &core.Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}

// envKeyMapper transforms MANETSIM_NUMNODES -> numnodes (koanf matches
// struct tags case-insensitively).
func envKeyMapper(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	return strings.ToLower(s)
}

// structProvider is a trivial koanf.Provider over a already-populated
// struct, used to seed the defaults layer before the file/env overlays.
type provider struct{ v *core.Config }

func structProvider(v *core.Config) *provider { return &provider{v} }

func (p *provider) Read() (map[string]interface{}, error) {
	return map[string]interface{}{
		"numnodes":    p.v.NumNodes,
		"areasize":    p.v.AreaSize,
		"protocol":    string(p.v.Protocol),
		"simtime":     p.v.SimTime,
		"trafficload": p.v.TrafficLoad,
		"nodespeed":   p.v.NodeSpeed,
		"txrange":     p.v.TxRange,
		"pausetime":   p.v.PauseTime,
	}, nil
}

func (p *provider) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("config: ReadBytes unsupported for struct provider")
}
