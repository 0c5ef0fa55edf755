//go:build !rp2040 && !rp2350

package config

import (
	"os"

	"sigs.k8s.io/yaml"

	"clockgen-go/errcode"
	"clockgen-go/types"
)

// ParseYAML decodes a board configuration, fills defaults and validates it.
func ParseYAML(b []byte) (types.ClockConfig, error) {
	const op = "config.ParseYAML"
	var c types.ClockConfig
	if err := yaml.UnmarshalStrict(b, &c); err != nil {
		return types.ClockConfig{}, errcode.Wrap(errcode.InvalidParams, op, err)
	}
	c = WithDefaults(c)
	if err := Validate(c); err != nil {
		return types.ClockConfig{}, err
	}
	return c, nil
}

// LoadYAML reads and parses a configuration file.
func LoadYAML(path string) (types.ClockConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return types.ClockConfig{}, errcode.Wrap(errcode.IOError, "config.LoadYAML", err)
	}
	return ParseYAML(b)
}

// MarshalYAML renders a configuration for the simulator's "config" output.
func MarshalYAML(c types.ClockConfig) ([]byte, error) {
	return yaml.Marshal(c)
}
